package eligibility

import "errors"

var (
	ErrIneligible    = errors.New("player not eligible for competition")
	ErrRosterFull    = errors.New("roster size limit reached")
	ErrU18NotAllowed = errors.New("U18 players are not allowed for this competition")
	ErrU18CapReached = errors.New("U18 roster cap reached")
)

// Rules stores the numeric eligibility policy parameters. They are fixed
// by federation regulation but kept configurable per deployment.
type Rules struct {
	// U18Cap is the number of under-18 players a club may field per
	// qualifying group of a senior competition.
	U18Cap int
	// SeniorAgeThreshold marks a competition as senior when the age
	// derived from its legacy cutoff date exceeds it.
	SeniorAgeThreshold int
	// U18AgeLimit is the age at or below which a player counts as U18.
	U18AgeLimit int
}

func DefaultRules() Rules {
	return Rules{
		U18Cap:             3,
		SeniorAgeThreshold: 30,
		U18AgeLimit:        18,
	}
}
