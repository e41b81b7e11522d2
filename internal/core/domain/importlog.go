// internal/core/domain/importlog.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportMethod identifies how a batch of stock entered the system
type ImportMethod string

const (
	MethodManualInput       ImportMethod = "manual_input"
	MethodSpreadsheetImport ImportMethod = "spreadsheet_import"
)

// ImportLogEntry records one bulk stock-ingestion event for the audit trail.
// Entries are immutable; only the administrative wipe removes them.
type ImportLogEntry struct {
	ID          uuid.UUID    `json:"id"`
	Timestamp   time.Time    `json:"timestamp"`
	Actor       string       `json:"actor"`
	Method      ImportMethod `json:"method"`
	TotalItems  int          `json:"total_items"`
	ItemsDetail []StockItem  `json:"items_detail,omitempty"`
}

// NewImportLogEntry builds a log entry for a completed ingestion
func NewImportLogEntry(actor string, method ImportMethod, items []StockItem) *ImportLogEntry {
	return &ImportLogEntry{
		ID:          uuid.New(),
		Timestamp:   time.Now(),
		Actor:       actor,
		Method:      method,
		TotalItems:  len(items),
		ItemsDetail: items,
	}
}
