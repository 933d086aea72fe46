package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ignisplay/handlers"
	"ignisplay/internal/database"
	"ignisplay/models"
	"ignisplay/services/accounts"
	"ignisplay/services/lists"
	"ignisplay/services/playback"
	"ignisplay/services/session"
	"ignisplay/utils"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.NewDB(database.Config{
		DatabasePath: filepath.Join(t.TempDir(), "state.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	accountsSvc := accounts.NewService(db)
	listsSvc := lists.NewService(db)
	sess := session.New(accountsSvc)
	playbackSvc := playback.NewService(listsSvc)

	router := utils.NewRouter()
	handlers.NewAuthHandler(sess).RegisterRoutes(router)
	handlers.NewListsHandler(sess, listsSvc).RegisterRoutes(router)
	handlers.NewPlaybackHandler(sess, playbackSvc).RegisterRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, url string, out interface{}) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func credentials(username, password string) map[string]string {
	return map[string]string{"username": username, "password": password}
}

func TestAuthFlow(t *testing.T) {
	server := setupServer(t)

	// Anonymous at first.
	var me struct {
		Account *models.Account `json:"account"`
	}
	getJSON(t, server.URL+"/api/auth/me", &me)
	require.Nil(t, me.Account)

	resp := postJSON(t, server.URL+"/api/auth/register", credentials("alice", "pw"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Registering does not authenticate.
	getJSON(t, server.URL+"/api/auth/me", &me)
	require.Nil(t, me.Account)

	// A duplicate registration conflicts.
	resp = postJSON(t, server.URL+"/api/auth/register", credentials("alice", "other"))
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = postJSON(t, server.URL+"/api/auth/login", credentials("alice", "wrong"))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, server.URL+"/api/auth/login", credentials("alice", "pw"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	getJSON(t, server.URL+"/api/auth/me", &me)
	require.NotNil(t, me.Account)
	require.Equal(t, "alice", me.Account.Username)
	require.False(t, me.Account.IsPremium)

	// Premium flag round-trips through the session snapshot.
	resp = postJSON(t, server.URL+"/api/auth/premium", map[string]bool{"isPremium": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	getJSON(t, server.URL+"/api/auth/me", &me)
	require.NotNil(t, me.Account)
	require.True(t, me.Account.IsPremium)

	resp = postJSON(t, server.URL+"/api/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	getJSON(t, server.URL+"/api/auth/me", &me)
	require.Nil(t, me.Account)
}

func TestListAndPlaybackFlow(t *testing.T) {
	server := setupServer(t)

	resp := postJSON(t, server.URL+"/api/auth/register", credentials("alice", "pw"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = postJSON(t, server.URL+"/api/auth/login", credentials("alice", "pw"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	media := models.MediaRef{ID: "550", Title: "Fight Club", MediaType: models.MediaTypeMovie}

	var toggled struct {
		Active bool `json:"active"`
	}
	resp = postJSON(t, server.URL+"/api/favorites/toggle", media)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&toggled))
	require.True(t, toggled.Active)

	var probe struct {
		Active bool `json:"active"`
	}
	getJSON(t, server.URL+"/api/favorites/550", &probe)
	require.True(t, probe.Active)
	getJSON(t, server.URL+"/api/watchlist/550", &probe)
	require.False(t, probe.Active, "favorites must not leak into the watchlist")

	// Playback start lands the item in history.
	var resolution models.PlaybackResolution
	resp = postJSON(t, server.URL+"/api/playback/start", media)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&resolution))
	require.Contains(t, resolution.EmbedURL, "/embed/movie/550")

	var history struct {
		Entries []models.HistoryEntry `json:"entries"`
	}
	getJSON(t, server.URL+"/api/history", &history)
	require.Len(t, history.Entries, 1)
	require.Equal(t, "550", history.Entries[0].MediaID)

	// After logout the same endpoints degrade to safe defaults.
	resp = postJSON(t, server.URL+"/api/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	getJSON(t, server.URL+"/api/history", &history)
	require.Empty(t, history.Entries)
	getJSON(t, server.URL+"/api/favorites/550", &probe)
	require.False(t, probe.Active)
}
