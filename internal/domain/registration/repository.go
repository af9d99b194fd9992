package registration

import "context"

// Scope narrows registrations by competition, club and competition group.
// Empty fields are wildcards.
type Scope struct {
	CompetitionID string
	ClubID        string
	GroupID       string
}

// Repository describes registration persistence needs from use cases.
// Add and Remove are single-row operations so a roster sync can apply its
// plan best-effort and report per-player outcomes.
type Repository interface {
	ListByScope(ctx context.Context, scope Scope) ([]Registration, error)
	Add(ctx context.Context, r Registration) error
	Remove(ctx context.Context, competitionID, groupID, playerID string) error
	GetByID(ctx context.Context, registrationID string) (Registration, bool, error)
	SetCaptain(ctx context.Context, scope Scope, registrationID string) error
}
