package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem(t *testing.T) {
	ctx := context.Background()
	folder := filepath.Join(t.TempDir(), "images")
	store, err := NewFileSystem(folder)
	require.NoError(t, err)

	t.Run("WriteAndRead", func(t *testing.T) {
		err := store.Write(ctx, "logo.png", strings.NewReader("png"), "image/png")
		require.NoError(t, err)

		exists, err := store.Exists(ctx, "logo.png")
		require.NoError(t, err)
		assert.True(t, exists)

		var buf bytes.Buffer
		require.NoError(t, store.Read(ctx, "logo.png", &buf))
		assert.Equal(t, "png", buf.String())

		content, err := os.ReadFile(filepath.Join(folder, "logo.png"))
		require.NoError(t, err)
		assert.Equal(t, "png", string(content))
	})

	t.Run("WriteExisting", func(t *testing.T) {
		err := store.Write(ctx, "existing.png", strings.NewReader("first"), "image/png")
		require.NoError(t, err)

		err = store.Write(ctx, "existing.png", strings.NewReader("second"), "image/png")

		assert.True(t, errdef.IsConflict(err))
		var buf bytes.Buffer
		require.NoError(t, store.Read(ctx, "existing.png", &buf))
		assert.Equal(t, "first", buf.String())
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "delete.png", strings.NewReader("png"), "image/png"))

		require.NoError(t, store.Delete(ctx, "delete.png"))

		exists, err := store.Exists(ctx, "delete.png")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.True(t, errdef.IsNotFound(store.Delete(ctx, "delete.png")))
	})

	t.Run("ReadMissing", func(t *testing.T) {
		err := store.Read(ctx, "missing.png", &bytes.Buffer{})

		assert.True(t, errdef.IsNotFound(err))
	})

	t.Run("RejectPathTraversal", func(t *testing.T) {
		err := store.Write(ctx, "../escape.png", strings.NewReader("png"), "image/png")

		assert.True(t, errdef.IsBadRequest(err))
		_, err = os.Stat(filepath.Join(filepath.Dir(folder), "escape.png"))
		assert.True(t, os.IsNotExist(err))
	})
}
