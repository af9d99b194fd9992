package eligibility

import (
	"fmt"
	"strings"
	"time"

	"github.com/sportorg/competition-api/internal/domain/competition"
	"github.com/sportorg/competition-api/internal/domain/group"
	"github.com/sportorg/competition-api/internal/domain/player"
)

// Status classifies an eligibility decision. Unknown means no date-based
// constraint could be evaluated (missing or malformed date of birth); the
// policy is permissive, so Unknown players may be rostered, but callers can
// warn instead of silently allowing.
type Status string

const (
	StatusEligible   Status = "ELIGIBLE"
	StatusIneligible Status = "INELIGIBLE"
	StatusUnknown    Status = "UNKNOWN"
)

// Result of resolving one player against one competition.
type Result struct {
	Status           Status
	Reason           string
	QualifyingGroups []competition.Group
}

// Allowed reports whether the player may be rostered. Unknown counts as
// allowed by the permissive policy.
func (r Result) Allowed() bool {
	return r.Status != StatusIneligible
}

// IsSenior reports whether the competition counts as senior: its legacy
// cutoff date exists and the age derived from it exceeds the threshold.
func IsSenior(c competition.Competition, now time.Time, rules Rules) bool {
	age, ok := AgeAt(c.AgeEligibilityDate, now)
	return ok && age > rules.SeniorAgeThreshold
}

// AllowU18Extras reports whether a senior competition grants extra U18
// roster slots, which requires a "men" or "women" group to be attached.
func AllowU18Extras(c competition.Competition, now time.Time, rules Rules) bool {
	return IsSenior(c, now, rules) && c.HasOpenSeniorGroup()
}

// Resolve determines which competition groups a player qualifies for.
//
// Group membership is necessary but not sufficient: the player must belong
// to the group institutionally and pass its cutoff comparison. A group
// with no parseable cutoff is open and qualifies any member. When the
// competition defines no groups, the legacy single cutoff applies.
func Resolve(p player.Player, c competition.Competition, now time.Time, rules Rules) Result {
	born, hasBirthDate := ParseDate(p.DateOfBirth)
	if !hasBirthDate {
		// No constraint can be evaluated without a date of birth.
		return Result{Status: StatusUnknown, Reason: "date of birth is missing or invalid"}
	}

	if len(c.Groups) > 0 {
		result := resolveGroups(p, c, born)
		if result.Status == StatusIneligible {
			return result
		}
		return applySeniorOverride(result, p, c, now, rules)
	}

	if cutoff, ok := ParseDate(c.AgeEligibilityDate); ok {
		if born.Before(cutoff) {
			return Result{
				Status: StatusIneligible,
				Reason: fmt.Sprintf("Born before %s", cutoff.Format(DateLayout)),
			}
		}
	}

	return applySeniorOverride(Result{Status: StatusEligible}, p, c, now, rules)
}

func resolveGroups(p player.Player, c competition.Competition, born time.Time) Result {
	var (
		candidates []competition.Group
		qualifying []competition.Group
	)

	for _, g := range c.Groups {
		if !p.BelongsToGroup(g.GroupID) {
			continue
		}
		candidates = append(candidates, g)
		if cutoffQualifies(g, born) {
			qualifying = append(qualifying, g)
		}
	}

	if len(qualifying) > 0 {
		return Result{Status: StatusEligible, QualifyingGroups: qualifying}
	}

	if len(candidates) == 0 {
		names := make([]string, 0, len(c.Groups))
		for _, g := range c.Groups {
			names = append(names, g.Name)
		}
		return Result{
			Status: StatusIneligible,
			Reason: "Player does not belong to any of the competition groups. Required: " + strings.Join(names, ", "),
		}
	}

	return Result{
		Status: StatusIneligible,
		Reason: "Born before eligibility date for all qualifying groups",
	}
}

// cutoffQualifies applies the boundary-inclusive cutoff comparison. A
// missing or unparseable cutoff means the group is open.
func cutoffQualifies(g competition.Group, born time.Time) bool {
	cutoff, ok := ParseDate(g.AgeEligibilityDate)
	if !ok {
		return true
	}

	if g.AgeType.Normalize() == group.AgeTypeAbove {
		// Old enough: born on or before the cutoff.
		return !born.After(cutoff)
	}

	// Young enough: born on or after the cutoff.
	return !born.Before(cutoff)
}

// applySeniorOverride forces ineligibility for U18 players in senior
// competitions that carry no "men"/"women" group. It runs only on players
// eligible so far and overrides any group-level qualification.
func applySeniorOverride(r Result, p player.Player, c competition.Competition, now time.Time, rules Rules) Result {
	if r.Status == StatusIneligible {
		return r
	}

	age, ok := AgeAt(p.DateOfBirth, now)
	if !ok {
		return r
	}

	if IsSenior(c, now, rules) && age <= rules.U18AgeLimit && !AllowU18Extras(c, now, rules) {
		return Result{
			Status: StatusIneligible,
			Reason: "U18 players not allowed in Senior competition",
		}
	}

	return r
}
