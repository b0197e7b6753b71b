package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // keep a stray .env out of the test

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 2*time.Second, cfg.PollInterval())
}

func TestLoad_FileKeys(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeConfig(t, `{"PORT": 5000, "DIAGRAMM_FONT": "#ffffff", "DIAGRAMM_BACKGROUND": "#303030"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "#ffffff", cfg.FontColor)
	assert.Equal(t, "#303030", cfg.BackgroundColor)
	assert.Equal(t, "fixed", cfg.Perspective)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOLDB_HIGHLIGHT_SUMMONER=Faker\n"), 0o644))
	t.Setenv("LOLDB_PORT", "9090")
	t.Setenv("LOLDB_PERSPECTIVE", "active_player")
	t.Cleanup(func() { os.Unsetenv("LOLDB_HIGHLIGHT_SUMMONER") })

	cfg, err := Load(writeConfig(t, `{"PORT": 5000}`))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "active_player", cfg.Perspective)
	assert.Equal(t, "Faker", cfg.HighlightSummoner)
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	cases := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "bad json", body: `{"PORT": `},
		{name: "bad port", body: `{"PORT": 70000}`},
		{name: "bad perspective", body: `{"PERSPECTIVE": "spectator"}`},
		{name: "negative interval", body: `{"POLL_INTERVAL_SECONDS": -1}`},
		{name: "bad env int", body: `{}`, env: map[string]string{"LOLDB_PORT": "eighty"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
