package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"ignisplay/services/accounts"
	"ignisplay/services/session"
)

// AuthHandler exposes account registration, login and session state over
// HTTP.
type AuthHandler struct {
	session *session.Session
}

// NewAuthHandler creates a new auth handler bound to the process session.
func NewAuthHandler(sess *session.Session) *AuthHandler {
	return &AuthHandler{session: sess}
}

// RegisterRoutes mounts the auth endpoints on the router.
func (h *AuthHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", h.Logout).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/me", h.Me).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/premium", h.SetPremium).Methods(http.MethodPost)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account. It does not log the account in; clients
// follow up with a login call.
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	account, err := h.session.Register(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrUsernameTaken):
			jsonError(w, "Username already taken", http.StatusConflict)
		case errors.Is(err, accounts.ErrInvalidCredentials):
			jsonError(w, "Username and password are required", http.StatusBadRequest)
		default:
			jsonError(w, "Failed to register: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

// Login authenticates the credentials and transitions the session.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	account, err := h.session.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			jsonError(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}
		jsonError(w, "Failed to log in: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// Logout drops the authenticated session, if any.
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the current session account, or null when anonymous.
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"account": h.session.Current(),
	})
}

// SetPremium flips the premium flag on the authenticated account.
// POST /api/auth/premium
func (h *AuthHandler) SetPremium(w http.ResponseWriter, r *http.Request) {
	account := h.session.Current()
	if account == nil {
		jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		IsPremium bool `json:"isPremium"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.session.SetPremium(account.ID, req.IsPremium); err != nil {
		jsonError(w, "Failed to update premium flag: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, h.session.Current())
}
