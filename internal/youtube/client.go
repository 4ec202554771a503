// Package youtube is a minimal YouTube Data API v3 client for video search
// and batched statistics lookups.
package youtube

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/lepinkainen/artistpulse/internal/httpjson"
	"github.com/lepinkainen/artistpulse/internal/ratelimit"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	// videos.list accepts at most 50 ids per call
	maxStatsIDs = 50
)

// ErrMissingAPIKey is returned when the client has no API key.
var ErrMissingAPIKey = errors.New("youtube: API key is required")

// Client is a YouTube Data API client authenticated with an API key.
type Client struct {
	apiKey  string
	baseURL string
	req     *httpjson.Requester
}

// NewClient creates a new YouTube API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		req:     httpjson.New("youtube", ratelimit.NewEvery("YouTube", 200*time.Millisecond, 5)),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c httpjson.HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.req.HTTP = c
		}
	}
}

// WithBaseURL sets a custom base URL for the Data API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRetryAttempts sets the number of retry attempts for failed requests.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.req.Attempts = attempts
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.req.Limiter = limiter
		}
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, target any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	params.Set("key", c.apiKey)
	return c.req.GetJSON(ctx, c.baseURL+path+"?"+params.Encode(), nil, target)
}
