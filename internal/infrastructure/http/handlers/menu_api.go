package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/zaikabox/v1/pkg/errors"

	"github.com/zaikabox/v1/internal/domain/menu"
)

// MenuAPIHandlers serves the food catalog.
type MenuAPIHandlers struct {
	catalog *menu.Catalog
	logger  *zap.Logger
}

// NewMenuAPIHandlers creates a new menu API handlers instance.
func NewMenuAPIHandlers(catalog *menu.Catalog, logger *zap.Logger) *MenuAPIHandlers {
	return &MenuAPIHandlers{
		catalog: catalog,
		logger:  logger,
	}
}

// ListItems handles GET /api/v1/menu
func (h *MenuAPIHandlers) ListItems(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("category")
	if raw == "" {
		writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: h.catalog.Items()})
		return
	}

	category := menu.ParseCategory(raw)
	if !category.IsValid() {
		writeError(h.logger, w, r, apperrors.NewBadRequestError("Unknown category: "+raw))
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: h.catalog.ByCategory(category)})
}

// ListCategories handles GET /api/v1/menu/categories
func (h *MenuAPIHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: menu.AllCategories})
}

// GetItem handles GET /api/v1/menu/{id}
func (h *MenuAPIHandlers) GetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.catalog.FindByID(id)
	if err != nil {
		writeError(h.logger, w, r, apperrors.NewItemNotFoundError(id))
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: item})
}
