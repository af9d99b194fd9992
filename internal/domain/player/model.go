package player

import "fmt"

// Position represents the field position a player is registered for.
// It is informational only; roster rules do not constrain by position.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Player is a club member selectable for competition rosters.
//
// DateOfBirth is kept as the raw "2006-01-02" string received from
// registration forms. It may be malformed; a malformed date does not fail
// Validate, it makes the player age-unknown for eligibility purposes.
type Player struct {
	ID          string
	ClubID      string
	FirstName   string
	LastName    string
	DateOfBirth string
	GroupIDs    []string
	Position    Position
}

func (p Player) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// BelongsToGroup reports institutional membership in a group.
func (p Player) BelongsToGroup(groupID string) bool {
	for _, id := range p.GroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.ClubID == "" {
		return fmt.Errorf("player club id is required")
	}
	if p.FirstName == "" && p.LastName == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Position != "" {
		if _, ok := AllPositions[p.Position]; !ok {
			return fmt.Errorf("invalid player position: %s", p.Position)
		}
	}

	return nil
}
