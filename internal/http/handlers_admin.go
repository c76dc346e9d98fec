package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/target/gradebook/internal/domain/roster"
	apperrors "github.com/target/gradebook/internal/errors"
	"github.com/target/gradebook/internal/service"
)

// DiagnosticsRunner produces the privileged backend report.
type DiagnosticsRunner interface {
	Run(ctx context.Context) (*roster.Diagnostics, error)
}

var _ DiagnosticsRunner = (*service.DiagnosticsService)(nil)

// AdminHandlers serves administrative API endpoints.
type AdminHandlers struct {
	Diagnostics DiagnosticsRunner
	Logger      *slog.Logger
}

type diagnosticsResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    *roster.Diagnostics `json:"data,omitempty"`
}

type diagnosticsFailure struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RunDiagnostics verifies backend connectivity with the privileged client.
// GET /api/admin/diagnostics.
func (h *AdminHandlers) RunDiagnostics(w http.ResponseWriter, r *http.Request) {
	report, err := h.Diagnostics.Run(r.Context())
	if err != nil {
		logger := h.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.ErrorContext(r.Context(), "diagnostics failed",
			slog.String("code", string(apperrors.GetCode(err))),
			slog.Any("error", err))
		WriteJSON(w, http.StatusInternalServerError, diagnosticsFailure{
			Error:   diagnosticsErrorMessage(err),
			Details: err.Error(),
		})
		return
	}

	WriteJSON(w, http.StatusOK, diagnosticsResponse{
		Success: true,
		Message: "Database connection verified",
		Data:    report,
	})
}

func diagnosticsErrorMessage(err error) string {
	if apperrors.IsConfiguration(err) {
		return "Backend is not configured"
	}
	return "Database query failed"
}
