package groupboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func apiRequest(t *testing.T, router http.Handler, method, path string) (int, map[string]any) {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	require.NoError(t, err)
	return rec.Code, body
}

func newTestRouter(t *testing.T) (http.Handler, *Session) {
	session, _ := newTestSession(t)
	_, err := session.Refresh(context.Background())
	require.NoError(t, err)
	return NewRouter(session), session
}

func TestHandleStatus(t *testing.T) {
	router, session := newTestRouter(t)

	code, body := apiRequest(t, router, http.MethodGet, "/api/v1/status")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, session.GroupURL(), body["group_url"])
	require.Equal(t, float64(2), body["records"])
}

func TestHandleAlbums(t *testing.T) {
	router, _ := newTestRouter(t)

	code, body := apiRequest(t, router, http.MethodGet, "/api/v1/albums")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, float64(2), body["count"])

	code, body = apiRequest(t, router, http.MethodGet, "/api/v1/albums?min_rating=4.5")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, float64(1), body["count"])

	rows := body["rows"].([]any)
	first := rows[0].(map[string]any)
	require.Equal(t, "Blue", first["album"])
}

func TestHandleAlbumsSorted(t *testing.T) {
	router, _ := newTestRouter(t)

	code, body := apiRequest(t, router, http.MethodGet, "/api/v1/albums?sort=rating&order=desc")
	require.Equal(t, http.StatusOK, code)

	rows := body["rows"].([]any)
	require.Len(t, rows, 2)
	require.Equal(t, "Blue", rows[0].(map[string]any)["album"])
	require.Equal(t, "OK Computer", rows[1].(map[string]any)["album"])

	code, _ = apiRequest(t, router, http.MethodGet, "/api/v1/albums?sort=listens")
	require.Equal(t, http.StatusBadRequest, code)
}

func TestHandleStats(t *testing.T) {
	router, _ := newTestRouter(t)

	code, body := apiRequest(t, router, http.MethodGet, "/api/v1/stats")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, float64(2), body["count"])
	require.Equal(t, float64(17), body["total_votes"])

	top := body["top"].(map[string]any)
	require.Equal(t, "Blue", top["album"])
}

func TestHandleArtists(t *testing.T) {
	router, _ := newTestRouter(t)

	code, body := apiRequest(t, router, http.MethodGet, "/api/v1/artists")
	require.Equal(t, http.StatusOK, code)

	artists := body["artists"].([]any)
	require.Len(t, artists, 2)
}

func TestHandleSearch(t *testing.T) {
	router, _ := newTestRouter(t)

	code, body := apiRequest(t, router, http.MethodGet, "/api/v1/search?q=radiohead")
	require.Equal(t, http.StatusOK, code)

	matches := body["matches"].([]any)
	require.NotEmpty(t, matches)

	code, _ = apiRequest(t, router, http.MethodGet, "/api/v1/search")
	require.Equal(t, http.StatusBadRequest, code)
}

func TestHandleRefresh(t *testing.T) {
	session, failing := newTestSession(t)
	router := NewRouter(session)

	code, body := apiRequest(t, router, http.MethodPost, "/api/v1/refresh")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, float64(2), body["records"])

	failing.Store(true)
	code, body = apiRequest(t, router, http.MethodPost, "/api/v1/refresh")
	require.Equal(t, http.StatusBadGateway, code)
	require.Contains(t, body["error"], "status 500")

	// the loaded table survives the failed refresh
	code, body = apiRequest(t, router, http.MethodGet, "/api/v1/albums")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, float64(2), body["count"])
}
