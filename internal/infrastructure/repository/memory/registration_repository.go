package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sportorg/competition-api/internal/domain/registration"
)

type RegistrationRepository struct {
	mu   sync.RWMutex
	regs []registration.Registration
}

func NewRegistrationRepository(regs []registration.Registration) *RegistrationRepository {
	return &RegistrationRepository{regs: regs}
}

func (r *RegistrationRepository) ListByScope(_ context.Context, scope registration.Scope) ([]registration.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]registration.Registration, 0)
	for _, reg := range r.regs {
		if matchesScope(reg, scope) {
			out = append(out, reg)
		}
	}

	return out, nil
}

func (r *RegistrationRepository) Add(_ context.Context, reg registration.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.regs {
		if existing.CompetitionID == reg.CompetitionID &&
			existing.GroupID == reg.GroupID &&
			existing.PlayerID == reg.PlayerID {
			return fmt.Errorf("player %s already registered", reg.PlayerID)
		}
	}
	r.regs = append(r.regs, reg)

	return nil
}

func (r *RegistrationRepository) Remove(_ context.Context, competitionID, groupID, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, reg := range r.regs {
		if reg.CompetitionID == competitionID && reg.GroupID == groupID && reg.PlayerID == playerID {
			r.regs = append(r.regs[:i], r.regs[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("registration for player %s not found", playerID)
}

func (r *RegistrationRepository) GetByID(_ context.Context, registrationID string) (registration.Registration, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, reg := range r.regs {
		if reg.ID == registrationID {
			return reg, true, nil
		}
	}

	return registration.Registration{}, false, nil
}

func (r *RegistrationRepository) SetCaptain(_ context.Context, scope registration.Scope, registrationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for i := range r.regs {
		if !matchesScope(r.regs[i], scope) {
			continue
		}
		if r.regs[i].ID == registrationID {
			r.regs[i].Captain = true
			found = true
		} else {
			r.regs[i].Captain = false
		}
	}
	if !found {
		return fmt.Errorf("registration %s not found in scope", registrationID)
	}

	return nil
}

func matchesScope(reg registration.Registration, scope registration.Scope) bool {
	if scope.CompetitionID != "" && reg.CompetitionID != scope.CompetitionID {
		return false
	}
	if scope.ClubID != "" && reg.ClubID != scope.ClubID {
		return false
	}
	if scope.GroupID != "" && reg.GroupID != scope.GroupID {
		return false
	}
	return true
}
