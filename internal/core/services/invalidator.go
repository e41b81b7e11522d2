// internal/core/services/invalidator.go
package services

import (
	"context"

	"github.com/sntracker/backend/internal/core/ports"
)

// noopInvalidator satisfies ports.Invalidator when no cache is wired,
// keeping the write paths free of nil checks.
type noopInvalidator struct{}

func (noopInvalidator) InvalidateInventory(context.Context)    {}
func (noopInvalidator) InvalidateTransactions(context.Context) {}
func (noopInvalidator) InvalidateImportLogs(context.Context)   {}

func orNoopInvalidator(inv ports.Invalidator) ports.Invalidator {
	if inv == nil {
		return noopInvalidator{}
	}
	return inv
}
