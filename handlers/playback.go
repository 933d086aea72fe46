package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"ignisplay/models"
	"ignisplay/services/playback"
	"ignisplay/services/session"
)

// PlaybackHandler resolves media items to embed URLs for the playback
// surface and records playback starts.
type PlaybackHandler struct {
	session  *session.Session
	playback *playback.Service
}

// NewPlaybackHandler creates a new playback handler.
func NewPlaybackHandler(sess *session.Session, playbackSvc *playback.Service) *PlaybackHandler {
	return &PlaybackHandler{session: sess, playback: playbackSvc}
}

// RegisterRoutes mounts the playback endpoints on the router.
func (h *PlaybackHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/playback/start", h.Start).Methods(http.MethodPost)
}

// Start resolves the posted media to an embed URL and records it in the
// session account's history. Anonymous sessions still get a resolution
// but no history entry.
// POST /api/playback/start
func (h *PlaybackHandler) Start(w http.ResponseWriter, r *http.Request) {
	var media models.MediaRef
	if err := json.NewDecoder(r.Body).Decode(&media); err != nil {
		jsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if media.ID == "" {
		jsonError(w, "Media id is required", http.StatusBadRequest)
		return
	}

	var accountID int64
	if account := h.session.Current(); account != nil {
		accountID = account.ID
	}

	resolution, err := h.playback.Start(accountID, media)
	if err != nil {
		jsonError(w, "Failed to start playback: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resolution)
}
