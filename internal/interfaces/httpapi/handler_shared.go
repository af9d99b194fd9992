package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/sportorg/competition-api/internal/domain/club"
	"github.com/sportorg/competition-api/internal/domain/competition"
	"github.com/sportorg/competition-api/internal/domain/group"
	"github.com/sportorg/competition-api/internal/domain/place"
	"github.com/sportorg/competition-api/internal/domain/player"
	"github.com/sportorg/competition-api/internal/domain/registration"
	"github.com/sportorg/competition-api/internal/usecase"
)

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type upsertPlayerRequest struct {
	ClubID      string   `json:"club_id" validate:"required"`
	FirstName   string   `json:"first_name" validate:"required,max=100"`
	LastName    string   `json:"last_name" validate:"required,max=100"`
	DateOfBirth string   `json:"date_of_birth" validate:"omitempty,max=10"`
	Position    string   `json:"position" validate:"omitempty,oneof=GK DEF MID FWD"`
	GroupIDs    []string `json:"group_ids" validate:"omitempty,dive,required"`
}

type updatePlayerRequest struct {
	ClubID      string   `json:"club_id" validate:"omitempty"`
	FirstName   string   `json:"first_name" validate:"required,max=100"`
	LastName    string   `json:"last_name" validate:"required,max=100"`
	DateOfBirth string   `json:"date_of_birth" validate:"omitempty,max=10"`
	Position    string   `json:"position" validate:"omitempty,oneof=GK DEF MID FWD"`
	GroupIDs    []string `json:"group_ids" validate:"omitempty,dive,required"`
}

type competitionGroupRequest struct {
	GroupID            string `json:"group_id" validate:"required"`
	AgeType            string `json:"age_type" validate:"omitempty,oneof=UNDER ABOVE"`
	AgeEligibilityDate string `json:"age_eligibility_date" validate:"omitempty,max=10"`
}

type upsertCompetitionRequest struct {
	Name               string                    `json:"name" validate:"required,max=150"`
	MaxPlayers         int                       `json:"max_players" validate:"required,min=10,max=14"`
	AgeEligibilityDate string                    `json:"age_eligibility_date" validate:"omitempty,max=10"`
	FromDate           *time.Time                `json:"from_date" validate:"omitempty"`
	ToDate             *time.Time                `json:"to_date" validate:"omitempty"`
	Groups             []competitionGroupRequest `json:"groups" validate:"omitempty,dive"`
}

type syncRosterRequest struct {
	GroupID         string   `json:"group_id" validate:"omitempty"`
	ClubID          string   `json:"club_id" validate:"required"`
	PlayerIDs       []string `json:"player_ids" validate:"omitempty,dive,required"`
	CaptainPlayerID string   `json:"captain_player_id" validate:"omitempty"`
}

type eligibilityAuditRequest struct {
	CompetitionIDs []string `json:"competition_ids" validate:"omitempty,dive,required"`
	MaxWorkers     int      `json:"max_workers" validate:"omitempty,min=1,max=32"`
}

type placeDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

type clubDTO struct {
	ID        string `json:"id"`
	PlaceID   string `json:"place_id,omitempty"`
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`
}

type groupDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	AgeType string `json:"age_type"`
}

type playerDTO struct {
	ID          string   `json:"id"`
	ClubID      string   `json:"club_id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	FullName    string   `json:"full_name"`
	DateOfBirth string   `json:"date_of_birth,omitempty"`
	Position    string   `json:"position,omitempty"`
	GroupIDs    []string `json:"group_ids,omitempty"`
}

type competitionGroupDTO struct {
	GroupID            string `json:"group_id"`
	Name               string `json:"name"`
	AgeType            string `json:"age_type"`
	AgeEligibilityDate string `json:"age_eligibility_date,omitempty"`
}

type competitionDTO struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	MaxPlayers         int                   `json:"max_players"`
	AgeEligibilityDate string                `json:"age_eligibility_date,omitempty"`
	Groups             []competitionGroupDTO `json:"groups,omitempty"`
	FromDate           *time.Time            `json:"from_date,omitempty"`
	ToDate             *time.Time            `json:"to_date,omitempty"`
}

type playerEligibilityDTO struct {
	Player           playerDTO             `json:"player"`
	Age              *int                  `json:"age,omitempty"`
	Status           string                `json:"status"`
	Reason           string                `json:"reason,omitempty"`
	QualifyingGroups []competitionGroupDTO `json:"qualifying_groups,omitempty"`
}

type registrationDTO struct {
	ID            string     `json:"id"`
	CompetitionID string     `json:"competition_id"`
	GroupID       string     `json:"group_id,omitempty"`
	ClubID        string     `json:"club_id"`
	PlayerID      string     `json:"player_id"`
	Captain       bool       `json:"captain"`
	Status        string     `json:"status"`
	RegisteredAt  *time.Time `json:"registered_at,omitempty"`
}

type registeredPlayerDTO struct {
	Registration registrationDTO `json:"registration"`
	Player       playerDTO       `json:"player"`
}

type rosterChangeDTO struct {
	PlayerID string `json:"player_id"`
	Action   string `json:"action"`
	Reason   string `json:"reason,omitempty"`
}

type reconciliationResultDTO struct {
	Applied []rosterChangeDTO `json:"applied"`
	Failed  []rosterChangeDTO `json:"failed"`
	Skipped []string          `json:"skipped"`
}

type dashboardDTO struct {
	Role               string            `json:"role"`
	ClubCount          int               `json:"club_count"`
	PlaceCount         int               `json:"place_count"`
	GroupCount         int               `json:"group_count"`
	CompetitionCount   int               `json:"competition_count"`
	ActiveCompetitions []competitionDTO  `json:"active_competitions"`
	Club               *clubDashboardDTO `json:"club,omitempty"`
}

type clubDashboardDTO struct {
	ClubID                  string `json:"club_id"`
	PlayerCount             int    `json:"player_count"`
	ActiveRegistrationCount int    `json:"active_registration_count"`
}

type auditFindingDTO struct {
	CompetitionID string `json:"competition_id"`
	ClubID        string `json:"club_id"`
	GroupID       string `json:"group_id,omitempty"`
	PlayerID      string `json:"player_id"`
	Status        string `json:"status"`
	Reason        string `json:"reason"`
}

type auditResultDTO struct {
	CompetitionCount int               `json:"competition_count"`
	CheckedCount     int               `json:"checked_count"`
	UnknownCount     int               `json:"unknown_count"`
	FailedCount      int               `json:"failed_count"`
	Findings         []auditFindingDTO `json:"findings"`
}

func placeToDTO(p place.Place) placeDTO {
	return placeDTO{ID: p.ID, Name: p.Name, Region: p.Region}
}

func clubToDTO(c club.Club) clubDTO {
	return clubDTO{ID: c.ID, PlaceID: c.PlaceID, Name: c.Name, ShortName: c.ShortName}
}

func groupToDTO(g group.Group) groupDTO {
	return groupDTO{ID: g.ID, Name: g.Name, AgeType: string(g.AgeType.Normalize())}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:          p.ID,
		ClubID:      p.ClubID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		FullName:    p.FullName(),
		DateOfBirth: p.DateOfBirth,
		Position:    string(p.Position),
		GroupIDs:    p.GroupIDs,
	}
}

func competitionGroupToDTO(g competition.Group) competitionGroupDTO {
	return competitionGroupDTO{
		GroupID:            g.GroupID,
		Name:               g.Name,
		AgeType:            string(g.AgeType.Normalize()),
		AgeEligibilityDate: g.AgeEligibilityDate,
	}
}

func competitionToDTO(c competition.Competition) competitionDTO {
	groups := make([]competitionGroupDTO, 0, len(c.Groups))
	for _, g := range c.Groups {
		groups = append(groups, competitionGroupToDTO(g))
	}

	dto := competitionDTO{
		ID:                 c.ID,
		Name:               c.Name,
		MaxPlayers:         c.MaxPlayers,
		AgeEligibilityDate: c.AgeEligibilityDate,
		Groups:             groups,
	}
	if !c.FromDate.IsZero() {
		from := c.FromDate
		dto.FromDate = &from
	}
	if !c.ToDate.IsZero() {
		to := c.ToDate
		dto.ToDate = &to
	}

	return dto
}

func playerEligibilityToDTO(v usecase.PlayerEligibility) playerEligibilityDTO {
	dto := playerEligibilityDTO{
		Player: playerToDTO(v.Player),
		Status: string(v.Status),
		Reason: v.Reason,
	}
	if v.AgeKnown {
		age := v.Age
		dto.Age = &age
	}
	for _, g := range v.QualifyingGroups {
		dto.QualifyingGroups = append(dto.QualifyingGroups, competitionGroupToDTO(g))
	}

	return dto
}

func registrationToDTO(r registration.Registration) registrationDTO {
	dto := registrationDTO{
		ID:            r.ID,
		CompetitionID: r.CompetitionID,
		GroupID:       r.GroupID,
		ClubID:        r.ClubID,
		PlayerID:      r.PlayerID,
		Captain:       r.Captain,
		Status:        string(r.Status),
	}
	if !r.RegisteredAt.IsZero() {
		at := r.RegisteredAt
		dto.RegisteredAt = &at
	}

	return dto
}

func reconciliationToDTO(result usecase.ReconciliationResult) reconciliationResultDTO {
	dto := reconciliationResultDTO{
		Applied: make([]rosterChangeDTO, 0, len(result.Applied)),
		Failed:  make([]rosterChangeDTO, 0, len(result.Failed)),
		Skipped: result.Skipped,
	}
	if dto.Skipped == nil {
		dto.Skipped = []string{}
	}
	for _, c := range result.Applied {
		dto.Applied = append(dto.Applied, rosterChangeDTO{PlayerID: c.PlayerID, Action: c.Action})
	}
	for _, c := range result.Failed {
		dto.Failed = append(dto.Failed, rosterChangeDTO{PlayerID: c.PlayerID, Action: c.Action, Reason: c.Reason})
	}

	return dto
}

func dashboardToDTO(d usecase.Dashboard) dashboardDTO {
	active := make([]competitionDTO, 0, len(d.ActiveCompetitions))
	for _, c := range d.ActiveCompetitions {
		active = append(active, competitionToDTO(c))
	}

	dto := dashboardDTO{
		Role:               string(d.Role),
		ClubCount:          d.ClubCount,
		PlaceCount:         d.PlaceCount,
		GroupCount:         d.GroupCount,
		CompetitionCount:   d.CompetitionCount,
		ActiveCompetitions: active,
	}
	if d.Club != nil {
		dto.Club = &clubDashboardDTO{
			ClubID:                  d.Club.ClubID,
			PlayerCount:             d.Club.PlayerCount,
			ActiveRegistrationCount: d.Club.ActiveRegistrationCount,
		}
	}

	return dto
}

func auditResultToDTO(result usecase.AuditResult) auditResultDTO {
	findings := make([]auditFindingDTO, 0, len(result.Findings))
	for _, f := range result.Findings {
		findings = append(findings, auditFindingDTO{
			CompetitionID: f.CompetitionID,
			ClubID:        f.ClubID,
			GroupID:       f.GroupID,
			PlayerID:      f.PlayerID,
			Status:        string(f.Status),
			Reason:        f.Reason,
		})
	}

	return auditResultDTO{
		CompetitionCount: result.CompetitionCount,
		CheckedCount:     result.CheckedCount,
		UnknownCount:     result.UnknownCount,
		FailedCount:      result.FailedCount,
		Findings:         findings,
	}
}
