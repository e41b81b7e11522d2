// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sntracker/backend/internal/core/domain"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps the domain error taxonomy onto HTTP status codes.
// Unknown errors become an opaque 500; the caller is expected to have logged
// the original.
func respondDomainError(w http.ResponseWriter, err error) {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		respondJSON(w, http.StatusConflict, map[string]interface{}{
			"error":         "some units are no longer available for sale",
			"stale_serials": conflict.Serials,
		})
		return
	}

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": validation.Error(),
			"field": validation.Field,
		})
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		respondError(w, http.StatusNotFound, "record not found")
		return
	}

	var partial *domain.PartialBatchError
	if errors.As(err, &partial) {
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":     "import failed part-way through",
			"committed": partial.Committed,
		})
		return
	}

	var audit *domain.AuditLogError
	if errors.As(err, &audit) {
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":     "units saved but the import log entry was not recorded",
			"committed": audit.Committed,
		})
		return
	}

	respondError(w, http.StatusInternalServerError, "internal server error")
}

// splitLines breaks a textarea-style payload into lines; the ingest service
// trims each one and drops blanks.
func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
