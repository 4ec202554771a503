// Package spotify provides a client for the Spotify Web API catalog
// endpoints used to rank artists: artist search, top tracks and audio
// features.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/lepinkainen/artistpulse/internal/httpjson"
	"github.com/lepinkainen/artistpulse/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://api.spotify.com/v1"
	defaultAuthURL       = "https://accounts.spotify.com/api/token"
	defaultRatePerSecond = 5
	// tokens are refreshed this long before Spotify says they expire
	tokenSlack = 30 * time.Second
)

// ErrMissingCredentials is returned when the client has no id/secret pair.
var ErrMissingCredentials = errors.New("spotify: client id and secret are required")

// Client is a Spotify Web API client using the client-credentials flow.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	authURL      string
	req          *httpjson.Requester
	now          func() time.Time

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewClient creates a new Spotify API client.
func NewClient(clientID, clientSecret string, opts ...Option) *Client {
	client := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultBaseURL,
		authURL:      defaultAuthURL,
		req:          httpjson.New("spotify", ratelimit.New("Spotify", defaultRatePerSecond)),
		now:          time.Now,
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

// WithBaseURL sets a custom base URL for the Web API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithAuthURL sets a custom token endpoint.
func WithAuthURL(u string) Option {
	return func(client *Client) {
		if u != "" {
			client.authURL = u
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

func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.now().Before(c.expiresAt) {
		return c.accessToken, nil
	}

	if c.clientID == "" || c.clientSecret == "" {
		return "", ErrMissingCredentials
	}

	header := http.Header{}
	header.Set("Authorization", "Basic "+basicAuth(c.clientID, c.clientSecret))

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	form := url.Values{"grant_type": {"client_credentials"}}
	if err := c.req.PostForm(ctx, c.authURL, form, header, &resp); err != nil {
		return "", fmt.Errorf("spotify: fetch token: %w", err)
	}
	if resp.AccessToken == "" {
		return "", errors.New("spotify: token response missing access_token")
	}

	c.accessToken = resp.AccessToken
	c.expiresAt = c.now().Add(time.Duration(resp.ExpiresIn)*time.Second - tokenSlack)
	return c.accessToken, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	tok, err := c.token(ctx)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+tok)
	return c.req.GetJSON(ctx, endpoint, header, target)
}
