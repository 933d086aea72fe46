package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"ignisplay/services/catalog"
)

// CatalogHandler exposes the metadata provider's browse and search
// endpoints.
type CatalogHandler struct {
	catalog *catalog.Client
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(client *catalog.Client) *CatalogHandler {
	return &CatalogHandler{catalog: client}
}

// RegisterRoutes mounts the catalog endpoints on the router.
func (h *CatalogHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/catalog/home", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/api/catalog/{category}", h.Category).Methods(http.MethodGet)
	r.HandleFunc("/api/search", h.Search).Methods(http.MethodGet)
}

// Home returns every home-screen section, fetched concurrently.
// GET /api/catalog/home
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	sections, err := h.catalog.Home(r.Context())
	if err != nil {
		jsonError(w, "Failed to load catalog: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sections": sections})
}

// Category returns one page of the named catalog category.
// GET /api/catalog/{category}?page=N
func (h *CatalogHandler) Category(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	items, err := h.catalog.FetchCatalog(r.Context(), category, pageParam(r))
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownCategory) {
			jsonError(w, "Unknown category: "+category, http.StatusNotFound)
			return
		}
		jsonError(w, "Failed to load catalog: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// Search queries movies and series matching the q parameter.
// GET /api/search?q=...&page=N
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Search(r.Context(), r.URL.Query().Get("q"), pageParam(r))
	if err != nil {
		jsonError(w, "Search failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
