package handler

import (
	"context"
	"net/http"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/usecase"
)

// DashboardService is the part of the dashboard use case the handler needs.
type DashboardService interface {
	Get(ctx context.Context, userID string) (*usecase.Dashboard, error)
}

// DashboardHandler handles the aggregated overview endpoint.
type DashboardHandler struct {
	dashboardUC DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardUC DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC}
}

// Get returns the caller's dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	dashboard, err := h.dashboardUC.Get(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DashboardFromUseCase(dashboard))
}
