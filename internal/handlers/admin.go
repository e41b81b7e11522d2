// internal/handlers/admin.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sntracker/backend/internal/core/ports"
	"github.com/sntracker/backend/internal/pkg/logger"
)

// AdminHandler owns the destructive reset surface. Routing must mount it
// behind the admin role and PIN middleware.
type AdminHandler struct {
	admin  ports.AdminService
	logger *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin ports.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:  admin,
		logger: logger.With(slog.String("handler", "admin")),
	}
}

// WipeCollection handles DELETE /api/v1/admin/collections/{name}
func (h *AdminHandler) WipeCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("name")

	deleted, err := h.admin.WipeCollection(ctx, name)
	if err != nil {
		h.logger.ErrorContext(ctx, "collection wipe failed",
			slog.String("collection", name),
			slog.Int64("deleted", deleted),
			slog.Any("error", err))
		respondDomainError(w, err)
		return
	}

	h.logger.WarnContext(ctx, "collection wiped via API",
		slog.String("collection", name),
		slog.Int64("deleted", deleted),
		slog.String("actor", logger.ActorFrom(ctx)))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"collection": name,
		"deleted":    deleted,
	})
}
