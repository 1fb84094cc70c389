package handler

import (
	"net/http"
	"time"

	"github.com/vitrine-app/vitrine-server/internal/api/response"
	"github.com/vitrine-app/vitrine-server/internal/domain"
)

// CatalogHandler serves the published catalog and active promotions
type CatalogHandler struct {
	catalog    domain.CatalogRepository
	promotions domain.PromotionRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog domain.CatalogRepository, promotions domain.PromotionRepository) *CatalogHandler {
	return &CatalogHandler{
		catalog:    catalog,
		promotions: promotions,
	}
}

// ListItems returns published catalog items
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListPublished(r.Context())
	if err != nil {
		response.InternalError(w, "failed to list catalog items")
		return
	}
	response.OK(w, items)
}

// ListActivePromotions returns promotions whose validity window holds now
func (h *CatalogHandler) ListActivePromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotions.ListActive(r.Context(), time.Now())
	if err != nil {
		response.InternalError(w, "failed to list promotions")
		return
	}
	response.OK(w, promotions)
}
