// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by lookups, updates and deletes that target a
// serial number (or transaction id) that does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError marks input that was rejected before any write was
// attempted. Field names the offending input so callers can render an
// actionable message.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConflictError is returned when a checkout races for units that are no
// longer Ready. The whole checkout is rejected; Serials lists the stale
// units so the cashier can remove them from the cart.
type ConflictError struct {
	Serials []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("units no longer available for sale: %s", strings.Join(e.Serials, ", "))
}

// IsConflict reports whether err is (or wraps) a ConflictError
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// StoreError wraps a backend/network failure so callers can distinguish
// "the store said no" from "the input was bad".
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store operation %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// AuditLogError reports an import whose stock writes all landed but whose
// audit-log entry could not be recorded. Committed carries the count of units
// actually written so the caller can still report it.
type AuditLogError struct {
	Committed int
	Err       error
}

func (e *AuditLogError) Error() string {
	return fmt.Sprintf("%d items committed but import log write failed: %v", e.Committed, e.Err)
}

func (e *AuditLogError) Unwrap() error { return e.Err }

// PartialBatchError reports a chunked write that failed mid-stream. Earlier
// chunks were already committed; Committed carries the true count so the
// caller never loses track of what actually landed.
type PartialBatchError struct {
	Committed int
	Chunk     int
	Err       error
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("batch failed at chunk %d after %d items committed: %v", e.Chunk, e.Committed, e.Err)
}

func (e *PartialBatchError) Unwrap() error { return e.Err }
