package mediastore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/api-server/models"
)

// newLocalStore builds a CloudinaryStore whose API calls land on a local
// test server instead of the real CDN.
func newLocalStore(t *testing.T, status int, body string) *CloudinaryStore {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	store, err := NewCloudinaryStore("demo", "key", "secret")
	require.NoError(t, err)
	store.cld.Config.API.UploadPrefix = srv.URL
	store.cld.Admin.Config.API.UploadPrefix = srv.URL
	store.cld.Upload.Config.API.UploadPrefix = srv.URL
	return store
}

func TestDeleteByPrefix(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := newLocalStore(t, http.StatusOK, `{"deleted":{"portfolio/projects/demo/a":"deleted"}}`)

		err := store.DeleteByPrefix(context.Background(), "portfolio/projects/demo/", models.MediaKindImage)
		assert.NoError(t, err)
	})

	t.Run("surfaces API-level errors carried in the result body", func(t *testing.T) {
		store := newLocalStore(t, http.StatusUnauthorized, `{"error":{"message":"Invalid API key"}}`)

		err := store.DeleteByPrefix(context.Background(), "portfolio/projects/demo/", models.MediaKindImage)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid API key")
		assert.Contains(t, err.Error(), "portfolio/projects/demo/")
	})

	t.Run("surfaces rate limiting", func(t *testing.T) {
		store := newLocalStore(t, 420, `{"error":{"message":"Rate limit exceeded"}}`)

		err := store.DeleteByPrefix(context.Background(), "portfolio/projects/demo/", models.MediaKindVideo)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Rate limit exceeded")
	})
}

func TestDeleteFolder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := newLocalStore(t, http.StatusOK, `{"deleted":["demo"]}`)

		err := store.DeleteFolder(context.Background(), "portfolio/projects/demo")
		assert.NoError(t, err)
	})

	t.Run("absent folder counts as success", func(t *testing.T) {
		store := newLocalStore(t, http.StatusNotFound, `{"error":{"message":"Can't find folder with path portfolio/projects/demo"}}`)

		err := store.DeleteFolder(context.Background(), "portfolio/projects/demo")
		assert.NoError(t, err)
	})

	t.Run("surfaces other API-level errors", func(t *testing.T) {
		store := newLocalStore(t, http.StatusUnauthorized, `{"error":{"message":"Invalid API key"}}`)

		err := store.DeleteFolder(context.Background(), "portfolio/projects/demo")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid API key")
	})
}

func TestDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := newLocalStore(t, http.StatusOK, `{"result":"ok"}`)

		err := store.Delete(context.Background(), "portfolio/projects/demo/a", models.MediaKindImage)
		assert.NoError(t, err)
	})

	t.Run("missing object counts as deleted", func(t *testing.T) {
		store := newLocalStore(t, http.StatusOK, `{"result":"not found"}`)

		err := store.Delete(context.Background(), "portfolio/projects/demo/a", models.MediaKindImage)
		assert.NoError(t, err)
	})

	t.Run("surfaces rejected destroys", func(t *testing.T) {
		store := newLocalStore(t, http.StatusOK, `{"result":"not allowed"}`)

		err := store.Delete(context.Background(), "portfolio/projects/demo/a", models.MediaKindVideo)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not allowed")
	})
}

func TestSignUploadParams(t *testing.T) {
	store, err := NewCloudinaryStore("demo", "key", "secret")
	require.NoError(t, err)

	t.Run("image uploads get the webp eager transform", func(t *testing.T) {
		signed, err := store.SignUploadParams("portfolio/projects/demo", models.MediaKindImage, 1700000000)
		require.NoError(t, err)
		assert.NotEmpty(t, signed.Signature)
		assert.Equal(t, int64(1700000000), signed.Timestamp)
		assert.Equal(t, "key", signed.APIKey)
		assert.Equal(t, "demo", signed.CloudName)
		assert.Equal(t, "f_webp,q_auto", signed.Eager)
	})

	t.Run("video uploads get the webm eager transform", func(t *testing.T) {
		signed, err := store.SignUploadParams("portfolio/projects/demo", models.MediaKindVideo, 1700000000)
		require.NoError(t, err)
		assert.Equal(t, "f_webm,q_auto", signed.Eager)
	})

	t.Run("document uploads are not transcoded", func(t *testing.T) {
		signed, err := store.SignUploadParams("portfolio/projects/demo", models.MediaKindDocument, 1700000000)
		require.NoError(t, err)
		assert.Empty(t, signed.Eager)
	})

	t.Run("signature depends on the folder", func(t *testing.T) {
		a, err := store.SignUploadParams("portfolio/projects/a", models.MediaKindImage, 1700000000)
		require.NoError(t, err)
		b, err := store.SignUploadParams("portfolio/projects/b", models.MediaKindImage, 1700000000)
		require.NoError(t, err)
		assert.NotEqual(t, a.Signature, b.Signature)
	})
}
