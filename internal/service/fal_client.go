package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"heavytime-server/internal/config"
)

// falClient is a minimal synchronous client for fal.ai model endpoints.
// Requests go to <baseURL>/<model> with the account key in the
// Authorization header; responses are decoded into the caller's struct.
type falClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

func newFalClient(cfg config.FalConfig, logger *zap.Logger) *falClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	return &falClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		logger:     logger.Named("FalClient"),
	}
}

// Run submits input to the given model and decodes the response into out.
// It returns the request id fal reports for the call, when present.
func (c *falClient) Run(ctx context.Context, model string, input any, out any) (string, error) {
	log := c.logger.With(zap.String("model", model))

	reqBody, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("failed to marshal fal request: %w", err)
	}

	endpointURL := c.baseURL + "/" + strings.TrimPrefix(model, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create fal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Key "+c.apiKey)

	log.Debug("Sending request to fal", zap.String("url", endpointURL))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("Fal request failed", zap.Error(err))
		return "", fmt.Errorf("fal request failed: %w", err)
	}
	defer resp.Body.Close()

	requestID := resp.Header.Get("X-Fal-Request-Id")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Capture a slice of the body for the error message.
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("Fal returned non-2xx status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", bodyBytes),
		)
		return requestID, fmt.Errorf("fal returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("Failed to decode fal response", zap.Error(err))
		return requestID, fmt.Errorf("failed to decode fal response: %w", err)
	}

	return requestID, nil
}
