package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"heavytime-server/internal/config"
	"heavytime-server/internal/models"
)

func newTestRenderer(baseURL string) ComicRenderer {
	return NewFalComicRenderer(config.FalConfig{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		ComicModel: "fal-ai/nano-banana/edit",
		Timeout:    5 * time.Second,
	}, zap.NewNop())
}

func TestRender(t *testing.T) {
	t.Run("Interpolates the poem and returns the first image", func(t *testing.T) {
		var gotReq comicRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			w.Header().Set("X-Fal-Request-Id", "req-9")
			json.NewEncoder(w).Encode(map[string]any{
				"images":      []map[string]string{{"url": "https://x/comic.jpg"}},
				"description": "four panels",
			})
		}))
		defer server.Close()

		result, err := newTestRenderer(server.URL).Render(context.Background(), "line one\nline two", "https://x/a.jpg")

		require.NoError(t, err)
		assert.Equal(t, "https://x/comic.jpg", result.ComicURL)
		assert.Equal(t, "four panels", result.Description)
		assert.Equal(t, "req-9", result.RequestID)

		assert.True(t, strings.Contains(gotReq.Prompt, "line one\nline two"))
		assert.True(t, strings.Contains(gotReq.Prompt, "four-panel comic strip"))
		assert.Equal(t, []string{"https://x/a.jpg"}, gotReq.ImageURLs)
		assert.Equal(t, 1, gotReq.NumImages)
		assert.Equal(t, "jpeg", gotReq.OutputFormat)
	})

	t.Run("Empty image list is a generation failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"images": []map[string]string{}})
		}))
		defer server.Close()

		result, err := newTestRenderer(server.URL).Render(context.Background(), "line one", "https://x/a.jpg")

		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrComicGenerationFailed))
		assert.Nil(t, result)
	})

	t.Run("Upstream error is wrapped as a generation failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		result, err := newTestRenderer(server.URL).Render(context.Background(), "line one", "https://x/a.jpg")

		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrComicGenerationFailed))
		assert.Nil(t, result)
	})
}
