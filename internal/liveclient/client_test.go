package liveclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/lol-gold-dashboard/internal/engine"
)

func TestClient_FetchSelfSignedTLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/liveclientdata/allgamedata", r.URL.Path)
		w.Write([]byte(`{"gameData":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/liveclientdata/allgamedata", time.Second)
	body, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"gameData":{}}`, string(body))
}

func TestClient_FetchErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{name: "loading screen", status: http.StatusNotFound, want: ErrGameNotReady},
		{name: "not ready", status: http.StatusServiceUnavailable, want: ErrGameNotReady},
		{name: "server error", status: http.StatusInternalServerError, want: ErrUpstreamUnreachable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"errorCode":"RESOURCE_NOT_FOUND","httpStatus":404}`))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).Fetch(context.Background())
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func TestClient_FetchUnreachable(t *testing.T) {
	srv := httptest.NewTLSServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, 200*time.Millisecond).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUpstreamUnreachable)
}

func TestFileSource(t *testing.T) {
	data, err := FileSource{Path: filepath.Join("testdata", "allgamedata.json")}.Fetch(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUpstreamUnreachable)
}

func TestDecode_Fixture(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "allgamedata.json"))
	require.NoError(t, err)

	m, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, "CLASSIC", m.GameMode)
	assert.InDelta(t, 15.508, m.ElapsedMinutes(), 0.001)
	assert.Equal(t, "red3", m.ActivePlayer)
	require.Len(t, m.Players, 10)

	jinx := m.Players[8]
	assert.Equal(t, "Jinx", jinx.ChampionName)
	assert.Equal(t, "CHAOS", jinx.Team)
	assert.Equal(t, "BOTTOM", jinx.Position)
	assert.Equal(t, "red4", jinx.DisplayName)
	assert.Equal(t, []int{6672, 3006, 1001}, jinx.Items)
	assert.Empty(t, m.Players[4].Items)
}

func TestDecode_MissingFields(t *testing.T) {
	cases := []struct {
		name  string
		doc   string
		field string
	}{
		{name: "not json", doc: `<html>`, field: ""},
		{name: "error body", doc: `{"errorCode":"RESOURCE_NOT_FOUND"}`, field: "gameData"},
		{name: "no game time", doc: `{"gameData":{"gameMode":"CLASSIC"},"allPlayers":[]}`, field: "gameData.gameTime"},
		{name: "no game mode", doc: `{"gameData":{"gameTime":1},"allPlayers":[]}`, field: "gameData.gameMode"},
		{name: "no players", doc: `{"gameData":{"gameTime":1,"gameMode":"CLASSIC"}}`, field: "allPlayers"},
		{
			name:  "player without team",
			doc:   `{"gameData":{"gameTime":1,"gameMode":"CLASSIC"},"allPlayers":[{"championName":"Ahri","position":"","summonerName":"a","items":[]}]}`,
			field: "allPlayers[0].team",
		},
		{
			name:  "player without items",
			doc:   `{"gameData":{"gameTime":1,"gameMode":"CLASSIC"},"allPlayers":[{"championName":"Ahri","team":"ORDER","position":"","summonerName":"a"}]}`,
			field: "allPlayers[0].items",
		},
		{
			name:  "player without identity",
			doc:   `{"gameData":{"gameTime":1,"gameMode":"CLASSIC"},"allPlayers":[{"championName":"Ahri","team":"ORDER","position":"","items":[]}]}`,
			field: "allPlayers[0].summonerName",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.doc))
			if !errors.Is(err, engine.ErrMalformedSnapshot) {
				t.Fatalf("want ErrMalformedSnapshot, got %v", err)
			}
			if tc.field != "" {
				assert.Contains(t, err.Error(), tc.field)
			}
		})
	}
}

func TestDecode_RiotIDFallback(t *testing.T) {
	doc := `{"activePlayer":{"riotId":"me#NA1"},"gameData":{"gameTime":60,"gameMode":"ARAM"},
		"allPlayers":[{"championName":"Ahri","team":"ORDER","position":"","summonerName":"","riotId":"me#NA1","items":[]}]}`

	m, err := Decode([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "me#NA1", m.ActivePlayer)
	assert.Equal(t, "me#NA1", m.Players[0].DisplayName)
	assert.Equal(t, 1.0, m.ElapsedMinutes())
}
