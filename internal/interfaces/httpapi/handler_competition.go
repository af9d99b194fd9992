package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/sportorg/competition-api/internal/usecase"
)

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	competitions, err := h.competitionService.ListCompetitions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]competitionDTO, 0, len(competitions))
	for _, c := range competitions {
		items = append(items, competitionToDTO(c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetition")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	c, err := h.competitionService.GetCompetition(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get competition failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionToDTO(c))
}

func (h *Handler) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCompetition")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req upsertCompetitionRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.competitionService.CreateCompetition(ctx, principal, competitionInputFromRequest(req))
	if err != nil {
		h.logger.WarnContext(ctx, "create competition failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, competitionToDTO(created))
}

func (h *Handler) UpdateCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateCompetition")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	competitionID := r.PathValue("competitionID")

	var req upsertCompetitionRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.competitionService.UpdateCompetition(ctx, principal, competitionID, competitionInputFromRequest(req))
	if err != nil {
		h.logger.WarnContext(ctx, "update competition failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionToDTO(updated))
}

func (h *Handler) ListEligiblePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEligiblePlayers")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	clubID := r.PathValue("clubID")
	groupID := r.URL.Query().Get("group_id")

	verdicts, err := h.competitionService.ListEligiblePlayers(ctx, competitionID, clubID, groupID)
	if err != nil {
		h.logger.WarnContext(ctx, "list eligible players failed",
			"competition_id", competitionID,
			"club_id", clubID,
			"group_id", groupID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerEligibilityDTO, 0, len(verdicts))
	for _, v := range verdicts {
		items = append(items, playerEligibilityToDTO(v))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func competitionInputFromRequest(req upsertCompetitionRequest) usecase.UpsertCompetitionInput {
	groups := make([]usecase.CompetitionGroupInput, 0, len(req.Groups))
	for _, g := range req.Groups {
		groups = append(groups, usecase.CompetitionGroupInput{
			GroupID:            g.GroupID,
			AgeType:            g.AgeType,
			AgeEligibilityDate: g.AgeEligibilityDate,
		})
	}

	input := usecase.UpsertCompetitionInput{
		Name:               req.Name,
		MaxPlayers:         req.MaxPlayers,
		AgeEligibilityDate: req.AgeEligibilityDate,
		Groups:             groups,
	}
	if req.FromDate != nil {
		input.FromDate = req.FromDate.UTC()
	}
	if req.ToDate != nil {
		input.ToDate = req.ToDate.UTC()
	}

	return input
}
