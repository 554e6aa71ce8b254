package api

import (
	"log/slog"
	"net/http"
	"time"
)

// Client provides access to the KRX Open API.
type Client struct {
	baseURL    string
	authKey    string
	httpClient *http.Client
	logger     *slog.Logger
	resolver   *charsetResolver
}

// ClientOption configures a Client.
type ClientOption func(*Client) error

// NewClient creates a new KRX API client.
func NewClient(baseURL, authKey string, opts ...ClientOption) (*Client, error) {
	resolver, err := newCharsetResolver(defaultFallbackCharset)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: baseURL,
		authKey: authKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:   slog.Default(),
		resolver: resolver,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) error {
		c.httpClient.Timeout = d
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) error {
		c.httpClient = hc
		return nil
	}
}

// WithFallbackCharset sets the last-resort response charset
// (e.g. "EUC-KR" or "MS949").
func WithFallbackCharset(name string) ClientOption {
	return func(c *Client) error {
		resolver, err := newCharsetResolver(name)
		if err != nil {
			return err
		}
		c.resolver = resolver
		return nil
	}
}
