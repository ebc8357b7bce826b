// Package pepy is a client for the pepy.tech download statistics API.
package pepy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/AI2HU/pepychart/internal/logger"
	"github.com/AI2HU/pepychart/internal/models"
)

const (
	DefaultBaseURL = "https://pepy.tech"
	DefaultTimeout = 10 * time.Second

	apiKeyHeader = "X-API-Key"
)

// ErrMissingPackage is returned when no package name is given
var ErrMissingPackage = errors.New("package name is required")

// HTTPError is returned when the API answers with a non-2xx status
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("pepy API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("pepy API returned status %d: %s", e.StatusCode, e.Message)
}

// Client fetches project statistics
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// New creates a new client. Empty baseURL and zero timeout fall back to defaults.
func New(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves the download statistics of a package with a single request
func (c *Client) Fetch(ctx context.Context, pkg string) (*models.ProjectStats, error) {
	if strings.TrimSpace(pkg) == "" {
		return nil, ErrMissingPackage
	}

	endpoint := fmt.Sprintf("%s/api/v2/projects/%s", c.baseURL, url.PathEscape(pkg))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	logger.Debug("Fetching statistics for %s from %s", pkg, endpoint)
	startTime := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch statistics for %s: %w", pkg, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logger.Debug("pepy responded %d in %s (%d bytes)", resp.StatusCode, time.Since(startTime), len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	stats := &models.ProjectStats{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	if stats.Downloads == nil {
		stats.Downloads = models.RawStats{}
	}

	return stats, nil
}

// errorMessage extracts a readable message from an error body
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error", "message", "detail"} {
			if msg := gjson.GetBytes(body, path); msg.Exists() && msg.String() != "" {
				return msg.String()
			}
		}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}
