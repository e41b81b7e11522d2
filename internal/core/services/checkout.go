// internal/core/services/checkout.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
)

// CheckoutService converts a cart into a Sold-status flip plus exactly one
// ledger entry. The two writes commit as a single unit; a partially applied
// checkout is never observable.
type CheckoutService struct {
	ledger      ports.LedgerRepository
	invalidator ports.Invalidator
	logger      *slog.Logger
}

// Statically assert that *CheckoutService implements the CheckoutService interface.
var _ ports.CheckoutService = (*CheckoutService)(nil)

// NewCheckoutService creates a new checkout service
func NewCheckoutService(ledger ports.LedgerRepository, invalidator ports.Invalidator, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		ledger:      ledger,
		invalidator: orNoopInvalidator(invalidator),
		logger:      logger.With(slog.String("service", "checkout")),
	}
}

// Checkout marks every cart line Sold and appends one transaction. Units
// that raced away (already Sold by another cashier) reject the whole
// checkout with a domain.ConflictError rather than silently reselling.
func (s *CheckoutService) Checkout(ctx context.Context, actor string, lines []domain.CartLine) (*domain.Transaction, error) {
	if actor == "" {
		return nil, domain.NewValidationError("actor", "actor is required")
	}
	if len(lines) == 0 {
		return nil, domain.NewValidationError("cart", "cart is empty")
	}

	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if line.SerialNumber == "" {
			return nil, domain.NewValidationError("cart", "cart line without serial number")
		}
		if seen[line.SerialNumber] {
			return nil, domain.NewValidationError("cart",
				fmt.Sprintf("serial %s appears twice in the cart", line.SerialNumber))
		}
		seen[line.SerialNumber] = true
	}

	trx := domain.NewTransaction(actor, lines)
	if err := trx.Validate(); err != nil {
		return nil, err
	}

	if err := s.ledger.CommitSale(ctx, trx); err != nil {
		return nil, fmt.Errorf("failed to commit sale: %w", err)
	}

	s.invalidator.InvalidateInventory(ctx)
	s.invalidator.InvalidateTransactions(ctx)

	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("transaction_id", trx.TransactionID),
		slog.String("actor", actor),
		slog.Int("items", trx.ItemsCount),
		slog.Int64("total_bill", trx.TotalBill))

	return trx, nil
}
