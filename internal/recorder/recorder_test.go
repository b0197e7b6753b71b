package recorder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_NumbersSessionsAndFiles(t *testing.T) {
	root := t.TempDir()

	first, err := New(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "1"), first.Dir())

	require.NoError(t, first.Save([]byte(`{"a":1}`)))
	require.NoError(t, first.Save([]byte(`{"a":2}`)))

	data, err := os.ReadFile(filepath.Join(root, "1", "2.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(data))

	second, err := New(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "2"), second.Dir())
}

func TestRecorder_OpenContinuesNumerically(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"1.json", "9.json", "10.json", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}

	r, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, r.Save([]byte("{}")))

	_, err = os.Stat(filepath.Join(dir, "11.json"))
	assert.NoError(t, err)
}
