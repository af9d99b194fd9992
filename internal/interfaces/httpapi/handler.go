package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sportorg/competition-api/internal/usecase"
)

type Handler struct {
	clubService        *usecase.ClubService
	playerService      *usecase.PlayerService
	competitionService *usecase.CompetitionService
	rosterService      *usecase.RosterService
	dashboardService   *usecase.DashboardService
	auditService       *usecase.EligibilityAuditService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	clubService *usecase.ClubService,
	playerService *usecase.PlayerService,
	competitionService *usecase.CompetitionService,
	rosterService *usecase.RosterService,
	dashboardService *usecase.DashboardService,
	auditService *usecase.EligibilityAuditService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		clubService:        clubService,
		playerService:      playerService,
		competitionService: competitionService,
		rosterService:      rosterService,
		dashboardService:   dashboardService,
		auditService:       auditService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	dashboard, err := h.dashboardService.Get(ctx, principal)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}
