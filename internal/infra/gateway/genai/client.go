package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hieutran/moneykeeper/pkg/logger"
)

const (
	requestTimeout = 30 * time.Second
	maxRetries     = 3
)

// ErrUnavailable is returned when the generation service cannot be reached
// or keeps rate-limiting. Callers degrade gracefully; AI failures never
// affect the financial core.
var ErrUnavailable = errors.New("generative AI service unavailable")

// Client is an HTTP client for the generation API
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a new generation API client
func NewClient(apiKey, baseURL string, log *logger.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: baseURL,
		logger:  log.WithField("component", "genai"),
	}
}

// SetBaseURL overrides the base URL (useful for testing)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// generate performs one task request with rate-limit retry. It retries up to
// maxRetries times with exponential backoff (1s, 2s, 4s) on 429 responses.
func (c *Client) generate(ctx context.Context, req generateRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := c.baseURL + "/v1/generate"

	backoff := time.Second
	for attempt := 0; attempt <= maxRetries; attempt++ {
		c.logger.Debug("API request", "task", req.Task, "attempt", attempt)
		attemptStart := time.Now()

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			c.logger.Error("API request failed", "task", req.Task, "error", err)
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return "", fmt.Errorf("failed to read response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusOK {
			c.logger.Debug("API response", "task", req.Task, "duration_ms", time.Since(attemptStart).Milliseconds())

			var decoded generateResponse
			if err := json.Unmarshal(body, &decoded); err != nil {
				return "", fmt.Errorf("failed to decode response: %w", err)
			}
			if decoded.Error != "" {
				return "", fmt.Errorf("%w: %s", ErrUnavailable, decoded.Error)
			}
			return decoded.Result.Text, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt == maxRetries {
				c.logger.Error("rate limit exhausted", "attempts", maxRetries+1)
				return "", fmt.Errorf("%w: rate limited", ErrUnavailable)
			}
			c.logger.Warn("rate limited, retrying", "attempt", attempt, "backoff_ms", backoff.Milliseconds())
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
				continue
			}
		}

		c.logger.Error("API error", "status_code", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	return "", fmt.Errorf("%w: exhausted retries", ErrUnavailable)
}
