package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"ignisplay/models"
	"ignisplay/services/lists"
	"ignisplay/services/session"
)

// ListsHandler exposes viewing history, favorites and watchlist for the
// session account. Anonymous sessions get the list service's safe
// defaults: empty lists, false probes, no mutations.
type ListsHandler struct {
	session *session.Session
	lists   *lists.Service
}

// NewListsHandler creates a new lists handler.
func NewListsHandler(sess *session.Session, listsSvc *lists.Service) *ListsHandler {
	return &ListsHandler{session: sess, lists: listsSvc}
}

// RegisterRoutes mounts the list endpoints on the router.
func (h *ListsHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/history", h.History).Methods(http.MethodGet)
	r.HandleFunc("/api/favorites", h.Favorites).Methods(http.MethodGet)
	r.HandleFunc("/api/favorites/toggle", h.ToggleFavorite).Methods(http.MethodPost)
	r.HandleFunc("/api/favorites/{mediaId}", h.IsFavorite).Methods(http.MethodGet)
	r.HandleFunc("/api/watchlist", h.Watchlist).Methods(http.MethodGet)
	r.HandleFunc("/api/watchlist/toggle", h.ToggleWatchlist).Methods(http.MethodPost)
	r.HandleFunc("/api/watchlist/{mediaId}", h.IsInWatchlist).Methods(http.MethodGet)
}

func (h *ListsHandler) accountID() int64 {
	if account := h.session.Current(); account != nil {
		return account.ID
	}
	return 0
}

// History returns the session account's viewing history, most recent first.
// GET /api/history
func (h *ListsHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.lists.History(h.accountID())
	if err != nil {
		jsonError(w, "Failed to load history: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// Favorites returns the session account's favorites.
// GET /api/favorites
func (h *ListsHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	entries, err := h.lists.Favorites(h.accountID())
	if err != nil {
		jsonError(w, "Failed to load favorites: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// ToggleFavorite flips favorite membership and returns the new state.
// POST /api/favorites/toggle
func (h *ListsHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.lists.ToggleFavorite)
}

// IsFavorite probes favorite membership for one media id.
// GET /api/favorites/{mediaId}
func (h *ListsHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	h.probe(w, r, h.lists.IsFavorite)
}

// Watchlist returns the session account's watchlist.
// GET /api/watchlist
func (h *ListsHandler) Watchlist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.lists.Watchlist(h.accountID())
	if err != nil {
		jsonError(w, "Failed to load watchlist: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// ToggleWatchlist flips watchlist membership and returns the new state.
// POST /api/watchlist/toggle
func (h *ListsHandler) ToggleWatchlist(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.lists.ToggleWatchlist)
}

// IsInWatchlist probes watchlist membership for one media id.
// GET /api/watchlist/{mediaId}
func (h *ListsHandler) IsInWatchlist(w http.ResponseWriter, r *http.Request) {
	h.probe(w, r, h.lists.IsInWatchlist)
}

func (h *ListsHandler) toggle(w http.ResponseWriter, r *http.Request, op func(int64, models.MediaRef) (bool, error)) {
	var media models.MediaRef
	if err := json.NewDecoder(r.Body).Decode(&media); err != nil {
		jsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	active, err := op(h.accountID(), media)
	if err != nil {
		jsonError(w, "Toggle failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"active": active})
}

func (h *ListsHandler) probe(w http.ResponseWriter, r *http.Request, op func(int64, string) (bool, error)) {
	active, err := op(h.accountID(), mux.Vars(r)["mediaId"])
	if err != nil {
		jsonError(w, "Lookup failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"active": active})
}
