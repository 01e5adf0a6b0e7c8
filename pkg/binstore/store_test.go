package binstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	// Packages
	aws "github.com/aws/aws-sdk-go-v2/aws"
	binstore "github.com/mutablelogic/go-synology/pkg/binstore"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	noop "go.opentelemetry.io/otel/trace/noop"
)

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	store, err := binstore.New(ctx, "mem://binary")
	require.NoError(t, err)
	defer store.Close()

	t.Run("RoundTrip", func(t *testing.T) {
		b, err := store.Write(ctx, "report.txt", []byte("hello"))
		require.NoError(t, err)
		assert.NotEmpty(t, b.Key)
		assert.Equal(t, "report.txt", b.FileName)
		assert.Equal(t, "text/plain; charset=utf-8", b.MimeType)
		assert.Equal(t, int64(5), b.FileSize)
		assert.Empty(t, b.Data)

		data, err := store.Read(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("UniqueKeys", func(t *testing.T) {
		a, err := store.Write(ctx, "a.bin", []byte{1})
		require.NoError(t, err)
		b, err := store.Write(ctx, "a.bin", []byte{2})
		require.NoError(t, err)
		assert.NotEqual(t, a.Key, b.Key)
	})

	t.Run("Inline", func(t *testing.T) {
		data, err := store.Read(ctx, &schema.Binary{FileName: "x", Data: []byte("inline")})
		require.NoError(t, err)
		assert.Equal(t, []byte("inline"), data)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Read(ctx, &schema.Binary{Key: "missing"})
		require.Error(t, err)
		assert.ErrorIs(t, err, httpresponse.ErrNotFound)
	})

	t.Run("NoKey", func(t *testing.T) {
		_, err := store.Read(ctx, &schema.Binary{FileName: "x", FileSize: 10})
		require.Error(t, err)
		assert.ErrorIs(t, err, httpresponse.ErrBadRequest)
	})

	t.Run("MissingName", func(t *testing.T) {
		_, err := store.Write(ctx, "", []byte("x"))
		require.Error(t, err)
	})

	t.Run("Delete", func(t *testing.T) {
		b, err := store.Write(ctx, "gone.txt", []byte("x"))
		require.NoError(t, err)
		require.NoError(t, store.Delete(ctx, b))
		_, err = store.Read(ctx, b)
		assert.ErrorIs(t, err, httpresponse.ErrNotFound)
	})
}

func TestMemStorePrefix(t *testing.T) {
	ctx := context.Background()
	store, err := binstore.New(ctx, "mem://binary/run/1")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "mem://binary/run/1", store.URL().String())
	b, err := store.Write(ctx, "a.txt", []byte("a"))
	require.NoError(t, err)
	data, err := store.Read(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "binary")
	store, err := binstore.New(ctx, "file://"+dir, binstore.WithCreateDir())
	require.NoError(t, err)
	defer store.Close()

	b, err := store.Write(ctx, "photo.png", []byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	assert.Equal(t, "image/png", b.MimeType)

	// The content is on disk under the key
	_, err = os.Stat(filepath.Join(dir, b.Key))
	require.NoError(t, err)

	data, err := store.Read(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data)
}

func TestCreateDirOtherSchemes(t *testing.T) {
	ctx := context.Background()
	store, err := binstore.New(ctx, "mem://binary", binstore.WithCreateDir())
	require.NoError(t, err)
	defer store.Close()
	assert.Empty(t, store.URL().RawQuery)

	b, err := store.Write(ctx, "a.txt", []byte("a"))
	require.NoError(t, err)
	data, err := store.Read(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)
}

func TestS3StoreOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("BadEndpoint", func(t *testing.T) {
		_, err := binstore.New(ctx, "s3://bucket", binstore.WithEndpoint("ftp://minio"))
		require.Error(t, err)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		_, err := binstore.New(ctx, "s3://bucket", binstore.WithStaticCredentials("", "", ""))
		require.Error(t, err)
	})

	t.Run("Open", func(t *testing.T) {
		store, err := binstore.New(ctx, "s3://bucket/prefix",
			binstore.WithAWSConfig(aws.Config{Region: "us-east-1"}),
			binstore.WithEndpoint("http://localhost:9000"),
			binstore.WithStaticCredentials("key", "secret", ""),
			binstore.WithTracerProvider(noop.NewTracerProvider()),
		)
		require.NoError(t, err)
		assert.Equal(t, "s3://bucket/prefix", store.URL().String())
		assert.NoError(t, store.Close())
	})
}
