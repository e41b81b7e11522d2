// internal/handlers/inventory.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	redis_a "github.com/sntracker/backend/internal/adapters/redis_adapter"
	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
	"github.com/sntracker/backend/internal/pkg/logger"
)

// InventoryHandler handles stock read and maintenance HTTP requests
type InventoryHandler struct {
	read        ports.InventoryReadService
	maintenance ports.MaintenanceService
	cache       ports.CacheRepository
	logger      *slog.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	read ports.InventoryReadService,
	maintenance ports.MaintenanceService,
	cache ports.CacheRepository,
	logger *slog.Logger,
) *InventoryHandler {
	return &InventoryHandler{
		read:        read,
		maintenance: maintenance,
		cache:       cache,
		logger:      logger.With(slog.String("handler", "inventory")),
	}
}

// GetItem handles GET /api/v1/inventory/{serial}
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serial := r.PathValue("serial")

	item, err := h.read.GetItem(ctx, serial)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get stock item",
			slog.String("serial_number", serial),
			slog.Any("error", err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// ScanInventory handles GET /api/v1/inventory
func (h *InventoryHandler) ScanInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := ports.ScanFilter{
		Brand:  r.URL.Query().Get("brand"),
		SKU:    r.URL.Query().Get("sku"),
		Status: domain.StockStatus(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
	}

	cacheKey := redis_a.BuildKey(redis_a.PrefixInventory, "scan",
		fmt.Sprintf("%s|%s|%s|%s", filter.Brand, filter.SKU, filter.Status, filter.Search))

	var items []domain.StockItem
	err := h.cache.GetOrSet(ctx, cacheKey, &items, func() (interface{}, error) {
		return h.read.ScanInventory(ctx, filter)
	}, 2*time.Minute)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to scan inventory",
			slog.Any("error", err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// UpdatePriceRequest is the body for a single-item price correction
type UpdatePriceRequest struct {
	Price int64 `json:"price"`
}

// UpdatePrice handles PATCH /api/v1/inventory/{serial}/price
func (h *InventoryHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serial := r.PathValue("serial")

	var req UpdatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.maintenance.UpdatePrice(ctx, serial, req.Price); err != nil {
		h.logger.ErrorContext(ctx, "failed to update price",
			slog.String("serial_number", serial),
			slog.Int64("price", req.Price),
			slog.Any("error", err))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "price updated",
		slog.String("serial_number", serial),
		slog.Int64("price", req.Price),
		slog.String("actor", logger.ActorFrom(ctx)))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"serial_number": serial,
		"price":         req.Price,
	})
}

// DeleteItem handles DELETE /api/v1/inventory/{serial}
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serial := r.PathValue("serial")

	if err := h.maintenance.DeleteItem(ctx, serial); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete stock item",
			slog.String("serial_number", serial),
			slog.Any("error", err))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "stock item deleted",
		slog.String("serial_number", serial),
		slog.String("actor", logger.ActorFrom(ctx)))

	respondJSON(w, http.StatusOK, map[string]string{
		"message":       "Stock item deleted",
		"serial_number": serial,
	})
}
