package eligibility

import (
	"fmt"
	"time"

	"github.com/sportorg/competition-api/internal/domain/competition"
	"github.com/sportorg/competition-api/internal/domain/player"
)

// U18Policy evaluates the senior-competition under-18 cap for one
// (competition, club, group) roster scope.
type U18Policy struct {
	rules       Rules
	senior      bool
	allowExtras bool
	// existingU18 counts already-registered players in scope whose
	// current age is at or below the U18 limit.
	existingU18 int
}

func NewU18Policy(c competition.Competition, now time.Time, rules Rules, existingU18 int) U18Policy {
	return U18Policy{
		rules:       rules,
		senior:      IsSenior(c, now, rules),
		allowExtras: AllowU18Extras(c, now, rules),
		existingU18: existingU18,
	}
}

// RemainingU18Slots reports how many more U18 players may be selected,
// given the number already selected in the pending choice. Zero when the
// competition grants no U18 extras.
func (p U18Policy) RemainingU18Slots(selectedU18 int) int {
	if !p.allowExtras {
		return 0
	}

	remaining := p.rules.U18Cap - p.existingU18 - selectedU18
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Selection tracks a pending roster choice while players are added one by
// one, mirroring how a roster form accumulates picks before saving.
type Selection struct {
	policy      U18Policy
	maxPlayers  int
	now         time.Time
	rules       Rules
	comp        competition.Competition
	selected    map[string]struct{}
	selectedU18 int
}

func NewSelection(c competition.Competition, now time.Time, rules Rules, existingU18 int) *Selection {
	return &Selection{
		policy:     NewU18Policy(c, now, rules, existingU18),
		maxPlayers: c.MaxPlayers,
		now:        now,
		rules:      rules,
		comp:       c,
		selected:   make(map[string]struct{}),
	}
}

func (s *Selection) Size() int { return len(s.selected) }

// Contains reports whether the player is already part of the selection.
func (s *Selection) Contains(playerID string) bool {
	_, ok := s.selected[playerID]
	return ok
}

// Add admits a candidate into the selection after checking eligibility,
// the roster size limit, and the U18 cap. The returned error wraps one of
// the package sentinels and carries a user-facing message.
func (s *Selection) Add(candidate player.Player) error {
	if s.Contains(candidate.ID) {
		return nil
	}

	result := Resolve(candidate, s.comp, s.now, s.rules)
	if !result.Allowed() {
		return fmt.Errorf("%w: %s", ErrIneligible, result.Reason)
	}

	if s.maxPlayers > 0 && len(s.selected) >= s.maxPlayers {
		return fmt.Errorf("%w: maximum %d players", ErrRosterFull, s.maxPlayers)
	}

	age, known := AgeAt(candidate.DateOfBirth, s.now)
	isU18 := known && age <= s.rules.U18AgeLimit

	if isU18 && s.policy.senior {
		if !s.policy.allowExtras {
			return ErrU18NotAllowed
		}
		remaining := s.policy.RemainingU18Slots(s.selectedU18)
		if remaining <= 0 {
			return fmt.Errorf("%w: maximum %d already selected or registered", ErrU18CapReached, s.rules.U18Cap)
		}
	}

	s.selected[candidate.ID] = struct{}{}
	if isU18 && s.policy.senior {
		s.selectedU18++
	}

	return nil
}

// CountU18 returns how many of the given players are currently at or
// below the U18 age limit at the reference date. Players with unknown
// birth dates are not counted.
func CountU18(players []player.Player, now time.Time, rules Rules) int {
	count := 0
	for _, p := range players {
		if age, ok := AgeAt(p.DateOfBirth, now); ok && age <= rules.U18AgeLimit {
			count++
		}
	}
	return count
}
