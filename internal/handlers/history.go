// internal/handlers/history.go
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	redis_a "github.com/sntracker/backend/internal/adapters/redis_adapter"
	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
)

// HistoryHandler serves the transaction ledger and the import audit log
type HistoryHandler struct {
	read         ports.InventoryReadService
	cache        ports.CacheRepository
	defaultLimit int
	logger       *slog.Logger
}

// NewHistoryHandler creates a new history handler. defaultLimit caps the
// import log listing when the client does not ask for a specific size.
func NewHistoryHandler(read ports.InventoryReadService, cache ports.CacheRepository, defaultLimit int, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		read:         read,
		cache:        cache,
		defaultLimit: defaultLimit,
		logger:       logger.With(slog.String("handler", "history")),
	}
}

// ListTransactions handles GET /api/v1/transactions. Optional from/to query
// parameters (RFC 3339 or YYYY-MM-DD) bound the range on the transaction
// timestamp.
func (h *HistoryHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from, err := parseTimeParam(r.URL.Query().Get("from"), false)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid from parameter: "+err.Error())
		return
	}
	to, err := parseTimeParam(r.URL.Query().Get("to"), true)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid to parameter: "+err.Error())
		return
	}

	cacheKey := redis_a.BuildKey(redis_a.PrefixTransactions, "list",
		fmt.Sprintf("%s|%s", r.URL.Query().Get("from"), r.URL.Query().Get("to")))

	var transactions []domain.Transaction
	err = h.cache.GetOrSet(ctx, cacheKey, &transactions, func() (interface{}, error) {
		return h.read.ListTransactions(ctx, from, to)
	}, 2*time.Minute)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list transactions", slog.Any("error", err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// ListImportLogs handles GET /api/v1/import-logs
func (h *HistoryHandler) ListImportLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := h.defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if _, err := fmt.Sscanf(l, "%d", &limit); err != nil || limit < 1 {
			respondError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
	}

	cacheKey := redis_a.BuildKey(redis_a.PrefixImportLogs, "recent", fmt.Sprintf("%d", limit))

	var entries []domain.ImportLogEntry
	err := h.cache.GetOrSet(ctx, cacheKey, &entries, func() (interface{}, error) {
		return h.read.ListImportLogs(ctx, limit)
	}, 2*time.Minute)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list import logs", slog.Any("error", err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"import_logs": entries,
		"count":       len(entries),
	})
}

// parseTimeParam accepts RFC 3339 timestamps or bare dates. A bare "to" date
// is pushed to the end of that day so the range is inclusive.
func parseTimeParam(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("expected RFC 3339 or YYYY-MM-DD")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
