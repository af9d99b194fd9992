package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/sportorg/competition-api/internal/usecase"
)

// RunEligibilityAuditJob re-checks every active registration against the
// current rules. Invoked by the scheduler, not by end users.
func (h *Handler) RunEligibilityAuditJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunEligibilityAuditJob")
	defer span.End()

	var req eligibilityAuditRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.auditService.Run(ctx, usecase.EligibilityAuditInput{
		CompetitionIDs: req.CompetitionIDs,
		MaxWorkers:     req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "eligibility audit job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auditResultToDTO(result))
}
