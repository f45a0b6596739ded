package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/search"
	myErr "storefront/internal/types/errors"
)

type CatalogHandler struct {
	Logger   *zap.SugaredLogger
	Catalog  catalog.Catalog
	Searcher search.Searcher
}

func NewCatalogHandler(l *zap.SugaredLogger, c catalog.Catalog, s search.Searcher) *CatalogHandler {
	return &CatalogHandler{
		Logger:   l,
		Catalog:  c,
		Searcher: s,
	}
}

func (h *CatalogHandler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Warnw("error writing response", "err", err)
	}
}

func (h *CatalogHandler) sendRemoteError(w http.ResponseWriter, err error) {
	if errors.Is(err, myErr.ErrNotFound) {
		myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
		return
	}
	myErr.SendErrorTo(w, err, http.StatusBadGateway, h.Logger)
}

// ListProducts - GET /api/products?category_id=
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category_id")

	products, err := h.Catalog.ListProducts(r.Context(), categoryID)
	if err != nil {
		h.sendRemoteError(w, err)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"products": products,
	})
}

// ListCategories - GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.ListCategories(r.Context())
	if err != nil {
		h.sendRemoteError(w, err)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"categories": categories,
	})
}

// Search - GET /api/products/search?q=&limit=
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	if h.Searcher == nil {
		myErr.SendErrorTo(w, myErr.ErrSearch, http.StatusServiceUnavailable, h.Logger)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		myErr.SendErrorTo(w, errors.New("query is required"), http.StatusBadRequest, h.Logger)
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	docs, err := h.Searcher.SearchByName(r.Context(), query, limit)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadGateway, h.Logger)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"products": docs,
	})
}
