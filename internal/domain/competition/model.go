package competition

import (
	"fmt"
	"time"

	"github.com/sportorg/competition-api/internal/domain/group"
)

const (
	MinRosterSize = 10
	MaxRosterSize = 14
)

// Group is a (competition, group) association carrying its own age cutoff.
// The same institutional group may appear in several competitions with
// different cutoff dates.
type Group struct {
	GroupID string
	Name    string
	AgeType group.AgeType
	// AgeEligibilityDate is the raw cutoff date string ("2006-01-02").
	// An empty or unparseable value means the group is open (no age
	// restriction).
	AgeEligibilityDate string
}

// Competition is a tournament clubs register rosters for.
type Competition struct {
	ID   string
	Name string
	// MaxPlayers caps the roster size per club per group, 10..14.
	MaxPlayers int
	// AgeEligibilityDate is the legacy single cutoff, consulted only when
	// Groups is empty. It also drives the senior-competition derivation.
	AgeEligibilityDate string
	Groups             []Group
	FromDate           time.Time
	ToDate             time.Time
}

// FindGroup returns the competition group with the given group id.
func (c Competition) FindGroup(groupID string) (Group, bool) {
	for _, g := range c.Groups {
		if g.GroupID == groupID {
			return g, true
		}
	}
	return Group{}, false
}

// HasOpenSeniorGroup reports whether any attached group carries one of the
// reserved "men"/"women" names.
func (c Competition) HasOpenSeniorGroup() bool {
	for _, g := range c.Groups {
		if group.IsOpenSeniorName(g.Name) {
			return true
		}
	}
	return false
}

func (c Competition) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("competition id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("competition name is required")
	}
	if c.MaxPlayers < MinRosterSize || c.MaxPlayers > MaxRosterSize {
		return fmt.Errorf("max players must be between %d and %d, got %d", MinRosterSize, MaxRosterSize, c.MaxPlayers)
	}
	if !c.FromDate.IsZero() && !c.ToDate.IsZero() && c.ToDate.Before(c.FromDate) {
		return fmt.Errorf("competition end date precedes start date")
	}
	for _, g := range c.Groups {
		if g.GroupID == "" {
			return fmt.Errorf("competition group id is required")
		}
	}

	return nil
}
