package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/akount/akount/internal/money"
	"github.com/akount/akount/internal/platform/httpx"
)

// Loader is the contract the handler depends on.
type Loader interface {
	Load(ctx context.Context, entityID uuid.UUID, q Query) (Dashboard, error)
}

// Handler serves the entity dashboard.
type Handler struct {
	logger  *slog.Logger
	service Loader
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service Loader) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the dashboard below an /entities/{entityID} route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.show)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	entityID, ok := httpx.UUIDParam(w, r, "entityID")
	if !ok {
		return
	}
	var q Query
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		asOf, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "as_of must be YYYY-MM-DD")
			return
		}
		q.AsOf = asOf
	}
	if raw := r.URL.Query().Get("currency"); raw != "" {
		cur, ok := money.ParseCurrency(raw)
		if !ok {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "unsupported currency "+raw)
			return
		}
		q.Currency = cur
	}
	dash, err := h.service.Load(r.Context(), entityID, q)
	if err != nil {
		h.logger.Error("load dashboard", slog.Any("error", err), slog.String("entity", entityID.String()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dash)
}
