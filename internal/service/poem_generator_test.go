package service

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMediaTypeFromContentType(t *testing.T) {
	assert.Equal(t, "image/png", mediaTypeFromContentType("image/png"))
	assert.Equal(t, "image/gif", mediaTypeFromContentType("image/gif"))
	assert.Equal(t, "image/webp", mediaTypeFromContentType("image/webp"))
	assert.Equal(t, "image/jpeg", mediaTypeFromContentType("image/jpeg"))
	assert.Equal(t, "image/jpeg", mediaTypeFromContentType("application/octet-stream"))
	assert.Equal(t, "image/jpeg", mediaTypeFromContentType(""))
}

func TestFetchImageAsDataURL(t *testing.T) {
	gen := &openAIPoemGenerator{
		imageClient: &http.Client{Timeout: 5 * time.Second},
		logger:      zap.NewNop(),
	}

	t.Run("Encodes the body with the reported media type", func(t *testing.T) {
		imageBytes := []byte{0x89, 0x50, 0x4e, 0x47}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			w.Write(imageBytes)
		}))
		defer server.Close()

		dataURL, err := gen.fetchImageAsDataURL(context.Background(), server.URL)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
		encoded := strings.TrimPrefix(dataURL, "data:image/png;base64,")
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err)
		assert.Equal(t, imageBytes, decoded)
	})

	t.Run("Defaults to jpeg when the content type is missing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header()["Content-Type"] = nil
			w.Write([]byte("raw"))
		}))
		defer server.Close()

		dataURL, err := gen.fetchImageAsDataURL(context.Background(), server.URL)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(dataURL, "data:image/jpeg;base64,"))
	})

	t.Run("Non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		_, err := gen.fetchImageAsDataURL(context.Background(), server.URL)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})
}
