package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// GoldService is the part of the gold use case the handler needs.
type GoldService interface {
	Buy(ctx context.Context, userID string, amount decimal.Decimal) (*usecase.BuyGoldResult, error)
	GetHoldings(ctx context.Context, userID string) (*domain.GoldHolding, error)
}

// GoldHandler handles digital gold HTTP requests.
type GoldHandler struct {
	goldUC GoldService
}

// NewGoldHandler creates a new GoldHandler.
func NewGoldHandler(goldUC GoldService) *GoldHandler {
	return &GoldHandler{goldUC: goldUC}
}

// Holdings returns the caller's gold holding.
func (h *GoldHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	holding, err := h.goldUC.GetHoldings(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GoldHoldingFromDomain(holding))
}

// Buy initiates a gold purchase from the caller's primary account.
func (h *GoldHandler) Buy(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.BuyGoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.goldUC.Buy(r.Context(), userID, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.BuyGoldFromResult(result))
}
