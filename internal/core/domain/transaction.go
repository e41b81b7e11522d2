// internal/core/domain/transaction.go
package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Transaction is one completed checkout. Entries are append-only: once a
// transaction is written it is never updated, and the item snapshots keep the
// price/brand/sku exactly as they were at the moment of sale even if the
// inventory record is edited or deleted afterwards.
type Transaction struct {
	TransactionID     string      `json:"transaction_id"`
	Timestamp         time.Time   `json:"timestamp"`
	Actor             string      `json:"actor"`
	ItemSerialNumbers []string    `json:"item_serial_numbers"`
	ItemDetails       []StockItem `json:"item_details"`
	TotalBill         int64       `json:"total_bill"`
	ItemsCount        int         `json:"items_count"`
}

// NewTransaction builds a transaction from a cart. The total and the item
// snapshots are derived from the cart lines so that the receipt the caller
// renders never disagrees with what was persisted.
func NewTransaction(actor string, lines []CartLine) *Transaction {
	now := time.Now()
	trx := &Transaction{
		TransactionID:     NewTransactionID(now),
		Timestamp:         now,
		Actor:             actor,
		ItemSerialNumbers: make([]string, 0, len(lines)),
		ItemDetails:       make([]StockItem, 0, len(lines)),
	}

	for _, line := range lines {
		snap := line.Snapshot()
		snap.Status = StatusSold
		snap.SoldAt = &now

		trx.ItemSerialNumbers = append(trx.ItemSerialNumbers, line.SerialNumber)
		trx.ItemDetails = append(trx.ItemDetails, snap)
		trx.TotalBill += line.Price
	}

	trx.ItemsCount = len(trx.ItemSerialNumbers)
	return trx
}

// NewTransactionID generates a short, human-copyable transaction token.
// Time-derived with a random suffix so two checkouts in the same second
// cannot collide.
func NewTransactionID(at time.Time) string {
	suffix := make([]byte, 2)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("TRX-%d%s", at.Unix(), hex.EncodeToString(suffix))
}

// Validate checks the ledger arithmetic invariants
func (t *Transaction) Validate() error {
	if t.TransactionID == "" {
		return NewValidationError("transaction_id", "transaction_id is required")
	}
	if t.Actor == "" {
		return NewValidationError("actor", "actor is required")
	}
	if len(t.ItemSerialNumbers) == 0 {
		return NewValidationError("items", "transaction must contain at least one item")
	}
	if len(t.ItemSerialNumbers) != len(t.ItemDetails) {
		return NewValidationError("items", "serial numbers and item details are out of sync")
	}
	if t.ItemsCount != len(t.ItemSerialNumbers) {
		return NewValidationError("items_count", "items_count does not match item list")
	}

	var sum int64
	for _, item := range t.ItemDetails {
		sum += item.Price
	}
	if sum != t.TotalBill {
		return NewValidationError("total_bill",
			fmt.Sprintf("total_bill %d does not equal item price sum %d", t.TotalBill, sum))
	}
	return nil
}
