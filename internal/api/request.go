package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// APIError represents a non-2xx response from the KRX API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("krx api error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable returns true if the error should trigger a retry.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// IsForbidden reports whether the upstream denied access. KRX answers 403
// for dates/markets it has no data for, so callers treat this as a skip,
// not a failure.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

func requestBody(basDd string) string {
	return `{"basDd":"` + basDd + `"}`
}

// post sends a dataset request and returns the raw response bytes. The body
// is not decoded or parsed here; charset resolution happens on the bytes.
func (c *Client) post(ctx context.Context, path, basDd string) ([]byte, error) {
	reqBody := requestBody(basDd)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader([]byte(reqBody)))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.authKey != "" {
		req.Header.Set("AUTH_KEY", c.authKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}
