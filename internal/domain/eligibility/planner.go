package eligibility

import "github.com/sportorg/competition-api/internal/domain/registration"

// Plan is the add/remove delta that converges a roster scope to a desired
// player set. ToAdd and ToRemove are disjoint by construction; applying
// both in either order yields exactly the desired set.
type Plan struct {
	ToAdd    []string
	ToRemove []string
}

// IsNoop reports that the roster already matches the desired selection,
// letting callers skip persistence entirely.
func (p Plan) IsNoop() bool {
	return len(p.ToAdd) == 0 && len(p.ToRemove) == 0
}

// PlanRosterChange computes the reconciliation delta between the currently
// registered players of one scope and the desired selection. It is a pure
// function: no I/O, no state. ToAdd preserves the order of the desired
// selection; ToRemove preserves registration order.
func PlanRosterChange(current []registration.Registration, desiredPlayerIDs []string) Plan {
	registered := make(map[string]struct{}, len(current))
	for _, r := range current {
		registered[r.PlayerID] = struct{}{}
	}

	desired := make(map[string]struct{}, len(desiredPlayerIDs))
	var toAdd []string
	for _, id := range desiredPlayerIDs {
		if _, seen := desired[id]; seen {
			continue
		}
		desired[id] = struct{}{}
		if _, ok := registered[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}

	var toRemove []string
	for _, r := range current {
		if _, ok := desired[r.PlayerID]; !ok {
			toRemove = append(toRemove, r.PlayerID)
		}
	}

	return Plan{ToAdd: toAdd, ToRemove: toRemove}
}
