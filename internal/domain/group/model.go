package group

import (
	"fmt"
	"strings"
)

// AgeType controls which side of a cutoff date qualifies.
type AgeType string

const (
	// AgeTypeUnder qualifies players born on or after the cutoff date.
	AgeTypeUnder AgeType = "UNDER"
	// AgeTypeAbove qualifies players born on or before the cutoff date.
	AgeTypeAbove AgeType = "ABOVE"
)

// Normalize maps an absent or unknown value to the UNDER default.
func (t AgeType) Normalize() AgeType {
	if t == AgeTypeAbove {
		return AgeTypeAbove
	}
	return AgeTypeUnder
}

// Group is an institutional age bracket players are registered under.
type Group struct {
	ID      string
	Name    string
	AgeType AgeType
}

// openSeniorNames are the reserved group names that unlock extra U18
// roster slots in senior competitions.
var openSeniorNames = map[string]struct{}{
	"men":   {},
	"women": {},
}

// IsOpenSeniorName reports whether a group name is one of the reserved
// open senior categories, matched case-insensitively.
func IsOpenSeniorName(name string) bool {
	_, ok := openSeniorNames[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func (g Group) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("group id is required")
	}
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("group name is required")
	}

	return nil
}
