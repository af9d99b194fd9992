package eligibility

import (
	"reflect"
	"testing"

	"github.com/sportorg/competition-api/internal/domain/registration"
)

func regs(playerIDs ...string) []registration.Registration {
	out := make([]registration.Registration, 0, len(playerIDs))
	for _, id := range playerIDs {
		out = append(out, registration.Registration{ID: "reg-" + id, PlayerID: id})
	}
	return out
}

func TestPlanRosterChange(t *testing.T) {
	tests := []struct {
		name       string
		current    []registration.Registration
		desired    []string
		wantAdd    []string
		wantRemove []string
	}{
		{
			name:       "shift window",
			current:    regs("p1", "p2", "p3"),
			desired:    []string{"p2", "p3", "p4"},
			wantAdd:    []string{"p4"},
			wantRemove: []string{"p1"},
		},
		{
			name:    "no change",
			current: regs("p1", "p2"),
			desired: []string{"p1", "p2"},
		},
		{
			name:    "order does not matter",
			current: regs("p1", "p2"),
			desired: []string{"p2", "p1"},
		},
		{
			name:    "fresh roster",
			current: nil,
			desired: []string{"p1", "p2"},
			wantAdd: []string{"p1", "p2"},
		},
		{
			name:       "clear roster",
			current:    regs("p1", "p2"),
			desired:    nil,
			wantRemove: []string{"p1", "p2"},
		},
		{
			name:    "duplicate desired ids collapse",
			current: regs("p1"),
			desired: []string{"p1", "p2", "p2"},
			wantAdd: []string{"p2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanRosterChange(tt.current, tt.desired)
			if !reflect.DeepEqual(got.ToAdd, tt.wantAdd) {
				t.Errorf("ToAdd = %v, want %v", got.ToAdd, tt.wantAdd)
			}
			if !reflect.DeepEqual(got.ToRemove, tt.wantRemove) {
				t.Errorf("ToRemove = %v, want %v", got.ToRemove, tt.wantRemove)
			}
		})
	}
}

func TestPlanIsNoop(t *testing.T) {
	if !PlanRosterChange(regs("p1"), []string{"p1"}).IsNoop() {
		t.Error("identical sets should be a noop")
	}
	if PlanRosterChange(regs("p1"), []string{"p2"}).IsNoop() {
		t.Error("differing sets should not be a noop")
	}
}

func TestPlanDisjoint(t *testing.T) {
	plan := PlanRosterChange(regs("p1", "p2", "p3"), []string{"p3", "p4", "p5"})

	seen := make(map[string]struct{})
	for _, id := range plan.ToAdd {
		seen[id] = struct{}{}
	}
	for _, id := range plan.ToRemove {
		if _, ok := seen[id]; ok {
			t.Errorf("player %s appears in both ToAdd and ToRemove", id)
		}
	}
}
