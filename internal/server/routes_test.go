package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"euchre-game/internal/database"
	"euchre-game/internal/shared"
)

func newRoutesServer(t *testing.T, results ...database.HandResult) *httptest.Server {
	t.Helper()
	db, err := database.New("sqlite3", filepath.Join(t.TempDir(), "routes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	for _, r := range results {
		require.NoError(t, db.Insert(r))
	}

	mux := http.NewServeMux()
	HandleRoutes(mux, db)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func handResult(id, code string, number int) database.HandResult {
	return database.HandResult{
		ID:             id,
		GameID:         "g-" + code,
		GameCode:       code,
		HandNumber:     number,
		CreatedAt:      "2026-03-04T10:00:00Z",
		Bidder:         2,
		Trump:          shared.Hearts,
		WinningTeam:    shared.TeamZero,
		Points:         2,
		TeamZeroTricks: 5,
		Player1:        "ana",
		Player2:        "Bot 2",
		Player3:        "cy",
		Player4:        "Bot 4",
	}
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestHandsRoutes(t *testing.T) {
	srv := newRoutesServer(t,
		handResult("h2", "ABCDE", 2),
		handResult("h1", "ABCDE", 1),
		handResult("h9", "QQQQQ", 1),
	)

	var all []database.HandResult
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/hands", &all))
	assert.Len(t, all, 3)

	var one database.HandResult
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/hands/h9", &one))
	assert.Equal(t, "QQQQQ", one.GameCode)
	assert.Equal(t, shared.Hearts, one.Trump)

	var byGame []database.HandResult
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/games/ABCDE/hands", &byGame))
	require.Len(t, byGame, 2)
	assert.Equal(t, 1, byGame[0].HandNumber)
	assert.Equal(t, 2, byGame[1].HandNumber)

	var byPlayer []database.HandResult
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/results/player/cy", &byPlayer))
	assert.Len(t, byPlayer, 3)
}

func TestHandsRoutesNotFound(t *testing.T) {
	srv := newRoutesServer(t)

	var all []database.HandResult
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/hands", &all))
	assert.Empty(t, all)

	for _, path := range []string{"/api/hands/missing", "/api/games/NOPE1/hands", "/api/results/player/nobody"} {
		assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+path, nil), path)
	}
}
