package ddragon

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const itemDoc = `{"type":"item","data":{
	"1001":{"name":"Boots","gold":{"base":300,"total":300}},
	"3006":{"name":"Berserker's Greaves","gold":{"base":500,"total":1100}},
	"2003":{"name":"Health Potion","gold":{"base":50,"total":50}}
}}`

const championDoc = `{"type":"champion","data":{
	"Ahri":{"id":"Ahri","key":"103","name":"Ahri"},
	"MonkeyKing":{"id":"MonkeyKing","key":"62","name":"Wukong"},
	"KogMaw":{"id":"KogMaw","key":"96","name":"Kog'Maw"}
}}`

func newDDragonServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["14.20.1","14.19.1"]`))
	})
	mux.HandleFunc("/cdn/14.20.1/data/en_US/item.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(itemDoc))
	})
	mux.HandleFunc("/cdn/14.20.1/data/en_US/champion.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(championDoc))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Load(t *testing.T) {
	srv := newDDragonServer(t)
	c := NewClient(srv.URL, NewHTTPFetcher(time.Second), zap.NewNop())

	ref, err := c.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "14.20.1", ref.Patch)
	assert.Len(t, ref.Items, 3)

	price, ok := ref.Items.Price(3006)
	assert.True(t, ok)
	assert.Equal(t, 1100, price)

	_, ok = ref.Items.Price(4242)
	assert.False(t, ok)

	assert.Equal(t, 3, ref.Champions.Len())
	assert.Equal(t, "MonkeyKing", ref.Champions.ChampionID("Wukong"))
	assert.Equal(t, "KogMaw", ref.Champions.ChampionID("Kog'Maw"))
}

func TestClient_ReferenceUnavailable(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
		},
		{
			name:    "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"nope"`)) },
		},
		{
			name:    "no versions",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`[]`)) },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			c := NewClient(srv.URL, NewHTTPFetcher(time.Second), zap.NewNop())
			_, err := c.Load(context.Background())
			if !errors.Is(err, ErrReferenceUnavailable) {
				t.Fatalf("want ErrReferenceUnavailable, got %v", err)
			}
		})
	}
}

func TestClient_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, NewHTTPFetcher(200*time.Millisecond), zap.NewNop())
	_, err := c.ResolveCurrentPatch(context.Background())
	assert.ErrorIs(t, err, ErrReferenceUnavailable)
}

func TestChampionIndex_ChampionID(t *testing.T) {
	idx := NewChampionIndex(map[string]string{"Ahri": "Ahri", "Wukong": "MonkeyKing"})

	cases := map[string]string{
		"Ahri":           "Ahri",
		"Wukong":         "MonkeyKing",
		"Kai'Sa":         "Kaisa",
		"Nunu & Willump": "Nunu",
		"Dr. Mundo":      "DrMundo",
		"Miss Fortune":   "MissFortune",
		"Rek'Sai":        "RekSai",
		"Jarvan IV":      "JarvanIV",
	}
	for name, want := range cases {
		assert.Equal(t, want, idx.ChampionID(name), name)
	}
}

func TestSplashURL(t *testing.T) {
	assert.Equal(t,
		"https://ddragon.leagueoflegends.com/cdn/14.20.1/img/champion/Ahri.png",
		SplashURL("14.20.1", "Ahri"))
}
