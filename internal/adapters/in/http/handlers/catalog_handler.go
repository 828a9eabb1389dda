// internal/adapters/in/http/handlers/catalog_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	usecase "github.com/Alanove07/designbynexa/internal/application/usecase"
	catalogdom "github.com/Alanove07/designbynexa/internal/domain/catalog"
)

// CatalogHandler は公開サイト向けの読み取り API です（書き込みはしない）。
type CatalogHandler struct {
	loader *usecase.CatalogLoader
}

func NewCatalogHandler(loader *usecase.CatalogLoader) *CatalogHandler {
	return &CatalogHandler{loader: loader}
}

func (h *CatalogHandler) Register(r chi.Router) {
	r.Get("/services", h.services)
	r.Get("/portfolio", h.portfolio)
	r.Get("/portfolio/categories", h.categories)
	r.Get("/site", h.site)
}

// GET /api/services
func (h *CatalogHandler) services(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.loader.Services(r.Context()))
}

// GET /api/portfolio?category=Posters
func (h *CatalogHandler) portfolio(w http.ResponseWriter, r *http.Request) {
	selected := catalogdom.Category(strings.TrimSpace(r.URL.Query().Get("category")))
	if selected == "" {
		selected = catalogdom.CategoryAll
	}
	writeJSON(w, http.StatusOK, h.loader.FilteredPortfolio(r.Context(), selected))
}

// GET /api/portfolio/categories
func (h *CatalogHandler) categories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalogdom.FilterTabs())
}

// GET /api/site
func (h *CatalogHandler) site(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.loader.Site(r.Context()))
}
