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

func TestS3ClientIntegration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	bucket := inttest.SetupS3(t, "images")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewS3Client(logger, bucket.Client, bucket.Uploader, bucket.Name)

	require.NoError(t, store.Write(ctx, "cover.jpg", strings.NewReader("jpeg"), "image/jpeg"))

	body, contentType := bucket.Object(t, "cover.jpg")
	assert.Equal(t, "jpeg", string(body))
	assert.Equal(t, "image/jpeg", contentType)

	exists, err := store.Exists(ctx, "cover.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	var buf bytes.Buffer
	require.NoError(t, store.Read(ctx, "cover.jpg", &buf))
	assert.Equal(t, "jpeg", buf.String())

	require.NoError(t, store.Delete(ctx, "cover.jpg"))

	exists, err = store.Exists(ctx, "cover.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.True(t, errdef.IsNotFound(store.Read(ctx, "cover.jpg", &buf)))
}
