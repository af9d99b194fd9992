package registration

import (
	"fmt"
	"time"
)

// Status of a roster registration.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusWithdrawn Status = "WITHDRAWN"
)

// Registration links a player to a competition group roster for a club.
//
// Invariant: at most one registration may carry Captain=true within the
// same (competition, club, group) scope.
type Registration struct {
	ID            string
	CompetitionID string
	GroupID       string
	ClubID        string
	PlayerID      string
	Captain       bool
	Status        Status
	RegisteredAt  time.Time
}

func (r Registration) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("registration id is required")
	}
	if r.CompetitionID == "" {
		return fmt.Errorf("registration competition id is required")
	}
	if r.ClubID == "" {
		return fmt.Errorf("registration club id is required")
	}
	if r.PlayerID == "" {
		return fmt.Errorf("registration player id is required")
	}

	return nil
}
