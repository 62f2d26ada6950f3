package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_Fetch(t *testing.T) {
	t.Run("reads the export file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chat.txt")
		require.NoError(t, os.WriteFile(path, []byte("15/12/2023, 10:30 - Alice: hi"), 0o600))

		data, err := NewFileSource(path).Fetch()
		require.NoError(t, err)
		assert.Equal(t, []byte("15/12/2023, 10:30 - Alice: hi"), data)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(t.TempDir(), "absent.txt")).Fetch()
		assert.Error(t, err)
	})

	t.Run("empty path is an error", func(t *testing.T) {
		_, err := NewFileSource("").Fetch()
		assert.Error(t, err)
	})
}

func TestMemorySource_Fetch(t *testing.T) {
	t.Run("returns an independent copy", func(t *testing.T) {
		original := []byte("some chat data")
		src := NewMemorySource(original)

		data, err := src.Fetch()
		require.NoError(t, err)
		assert.Equal(t, original, data)

		data[0] = 'X'
		again, err := src.Fetch()
		require.NoError(t, err)
		assert.Equal(t, []byte("some chat data"), again)
	})

	t.Run("nil data is an error", func(t *testing.T) {
		_, err := NewMemorySource(nil).Fetch()
		assert.Error(t, err)
	})
}
