// internal/core/domain/stock.go
package domain

import (
	"fmt"
	"strings"
	"time"
)

// StockStatus represents the sale status of a serialized unit
type StockStatus string

// Status constants
const (
	StatusReady StockStatus = "Ready"
	StatusSold  StockStatus = "Sold"
)

// StockItem represents a single physical unit, keyed by its serial number.
// The serial number is unique across the whole inventory and never changes;
// re-ingesting an existing serial fully replaces the record.
type StockItem struct {
	SerialNumber string      `json:"serial_number"`
	Brand        string      `json:"brand"`
	SKU          string      `json:"sku"`
	Price        int64       `json:"price"`
	Status       StockStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	SoldAt       *time.Time  `json:"sold_at,omitempty"`
}

// Validate performs domain validation on the stock item
func (s *StockItem) Validate() error {
	if s.SerialNumber == "" {
		return NewValidationError("serial_number", "serial_number is required")
	}
	if s.Brand == "" {
		return NewValidationError("brand", "brand is required")
	}
	if s.SKU == "" {
		return NewValidationError("sku", "sku is required")
	}
	if s.Price < 0 {
		return NewValidationError("price", fmt.Sprintf("price cannot be negative for %s", s.SerialNumber))
	}
	if s.Status == "" {
		s.Status = StatusReady
	}
	return nil
}

// PrepareForStorage normalizes the item before it is written
func (s *StockItem) PrepareForStorage() {
	s.SerialNumber = strings.TrimSpace(s.SerialNumber)
	if s.Status == "" {
		s.Status = StatusReady
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
}

// IsReady reports whether the unit is still available for sale
func (s *StockItem) IsReady() bool {
	return s.Status == StatusReady
}

// CartLine is a snapshot of a stock item at the moment it was added to a
// cart. It is never persisted; the checkout service receives a list of these
// and denormalizes them into the transaction ledger.
type CartLine struct {
	SerialNumber string `json:"serial_number"`
	Brand        string `json:"brand"`
	SKU          string `json:"sku"`
	Price        int64  `json:"price"`
}

// Snapshot converts a cart line back into the stock item shape used for
// ledger denormalization.
func (l CartLine) Snapshot() StockItem {
	return StockItem{
		SerialNumber: l.SerialNumber,
		Brand:        l.Brand,
		SKU:          l.SKU,
		Price:        l.Price,
	}
}
