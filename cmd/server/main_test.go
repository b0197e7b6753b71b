package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_ReferenceFailureExitsOne(t *testing.T) {
	dd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer dd.Close()

	dir := t.TempDir()
	chdir(t, dir)
	logFile := filepath.Join(dir, "test.log")
	t.Setenv("LOLDB_DATA_DRAGON_URL", dd.URL)
	t.Setenv("LOLDB_LOG_FILE", logFile)
	t.Setenv("LOLDB_PORT", "18089")

	code := serve()
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	logged, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "server stopped")
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
