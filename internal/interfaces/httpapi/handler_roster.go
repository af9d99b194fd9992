package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/sportorg/competition-api/internal/usecase"
)

func (h *Handler) SyncRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncRoster")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	competitionID := r.PathValue("competitionID")

	var req syncRosterRequest
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

	result, err := h.rosterService.SyncRoster(ctx, principal, usecase.SyncRosterInput{
		CompetitionID:   competitionID,
		GroupID:         req.GroupID,
		ClubID:          req.ClubID,
		PlayerIDs:       req.PlayerIDs,
		CaptainPlayerID: req.CaptainPlayerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "sync roster failed",
			"competition_id", competitionID,
			"club_id", req.ClubID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reconciliationToDTO(result))
}

func (h *Handler) ListRegisteredPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRegisteredPlayers")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	clubID := strings.TrimSpace(r.URL.Query().Get("club_id"))
	groupID := strings.TrimSpace(r.URL.Query().Get("group_id"))

	roster, err := h.rosterService.ListRegisteredPlayers(ctx, competitionID, clubID, groupID)
	if err != nil {
		h.logger.WarnContext(ctx, "list registered players failed",
			"competition_id", competitionID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	items := make([]registeredPlayerDTO, 0, len(roster))
	for _, rp := range roster {
		items = append(items, registeredPlayerDTO{
			Registration: registrationToDTO(rp.Registration),
			Player:       playerToDTO(rp.Player),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RemoveRosterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveRosterPlayer")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	competitionID := r.PathValue("competitionID")
	playerID := r.PathValue("playerID")
	groupID := strings.TrimSpace(r.URL.Query().Get("group_id"))

	if err := h.rosterService.RemovePlayer(ctx, principal, competitionID, groupID, playerID); err != nil {
		h.logger.WarnContext(ctx, "remove roster player failed",
			"competition_id", competitionID,
			"player_id", playerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) SetCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetCaptain")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	competitionID := r.PathValue("competitionID")
	clubID := r.PathValue("clubID")
	registrationID := r.PathValue("registrationID")

	if err := h.rosterService.SetCaptain(ctx, principal, competitionID, clubID, registrationID); err != nil {
		h.logger.WarnContext(ctx, "set captain failed",
			"competition_id", competitionID,
			"club_id", clubID,
			"registration_id", registrationID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "captain assigned"})
}
