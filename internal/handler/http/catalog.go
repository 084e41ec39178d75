package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teddyboy999/ecommerce-with-stripe/pkg/httputil"
	"github.com/teddyboy999/ecommerce-with-stripe/pkg/pagination"

	"github.com/teddyboy999/ecommerce-with-stripe/internal/catalog"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/domain"
)

// CatalogHandler handles HTTP requests for product catalog endpoints.
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(cat *catalog.Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: cat,
		logger:  logger,
	}
}

// ProductResponse is the JSON shape of a catalog product.
type ProductResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url"`
	ImageAlt string `json:"image_alt"`
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Slug:     p.Slug,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		ImageAlt: p.ImageAlt,
	}
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	all := h.catalog.List()
	start := params.Offset
	if start > len(all) {
		start = len(all)
	}
	end := start + params.PerPage
	if end > len(all) {
		end = len(all)
	}

	page := make([]ProductResponse, 0, end-start)
	for _, p := range all[start:end] {
		page = append(page, toProductResponse(p))
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: pagination.NewResult(page, len(all), params),
	})
}

// GetProduct handles GET /api/v1/products/{slug}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "slug is required"},
		})
		return
	}

	product, err := h.catalog.GetBySlug(slug)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toProductResponse(product)})
}
