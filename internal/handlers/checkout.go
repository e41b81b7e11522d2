// internal/handlers/checkout.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
	"github.com/sntracker/backend/internal/pkg/logger"
)

// CheckoutHandler converts carts into sales
type CheckoutHandler struct {
	checkout ports.CheckoutService
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout ports.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger.With(slog.String("handler", "checkout")),
	}
}

// CheckoutRequest is the cart payload. Each line is the client's snapshot of
// the unit at the moment it was scanned into the cart.
type CheckoutRequest struct {
	Lines []domain.CartLine `json:"lines"`
}

// Checkout handles POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	actor := logger.ActorFrom(ctx)

	trx, err := h.checkout.Checkout(ctx, actor, req.Lines)
	if err != nil {
		h.logger.ErrorContext(ctx, "checkout failed",
			slog.String("actor", actor),
			slog.Int("lines", len(req.Lines)),
			slog.Any("error", err))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "checkout completed",
		slog.String("transaction_id", trx.TransactionID),
		slog.String("actor", actor),
		slog.Int("items_count", trx.ItemsCount),
		slog.Int64("total_bill", trx.TotalBill))

	respondJSON(w, http.StatusCreated, trx)
}
