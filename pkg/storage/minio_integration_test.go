package storage_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/inttest"
	"github.com/eventforge/eventforge/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinioStoreIntegration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := inttest.SetupMinio(t, "images")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewMinioStore(logger, client, "images")

	require.NoError(t, store.Write(ctx, "logo.png", strings.NewReader("png"), "image/png"))

	exists, err := store.Exists(ctx, "logo.png")
	require.NoError(t, err)
	assert.True(t, exists)

	var buf bytes.Buffer
	require.NoError(t, store.Read(ctx, "logo.png", &buf))
	assert.Equal(t, "png", buf.String())

	require.NoError(t, store.Delete(ctx, "logo.png"))

	exists, err = store.Exists(ctx, "logo.png")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.True(t, errdef.IsNotFound(store.Read(ctx, "logo.png", &buf)))
}
