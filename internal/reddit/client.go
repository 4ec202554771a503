// Package reddit is an application-only OAuth client for subreddit search.
package reddit

import (
	"context"
	"encoding/base64"
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
	defaultBaseURL   = "https://oauth.reddit.com"
	defaultAuthURL   = "https://www.reddit.com/api/v1/access_token"
	defaultUserAgent = "artistpulse/0.1"
)

// ErrMissingCredentials is returned when the client has no id/secret pair.
var ErrMissingCredentials = errors.New("reddit: client id and secret are required")

// Client is a Reddit API client. Reddit rejects requests without a
// descriptive User-Agent, so one is always sent.
type Client struct {
	clientID     string
	clientSecret string
	userAgent    string
	baseURL      string
	authURL      string
	req          *httpjson.Requester
	now          func() time.Time

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewClient creates a new Reddit API client.
func NewClient(clientID, clientSecret, userAgent string, opts ...Option) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		userAgent:    userAgent,
		baseURL:      defaultBaseURL,
		authURL:      defaultAuthURL,
		// Reddit allows 100 queries per minute for OAuth clients
		req: httpjson.New("reddit", ratelimit.NewEvery("Reddit", time.Minute/100, 5)),
		now: time.Now,
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

// WithBaseURL sets a custom base URL for authenticated API calls.
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

	header := c.baseHeader()
	header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.clientID+":"+c.clientSecret)))

	var resp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
		Error       string `json:"error"`
	}
	form := url.Values{"grant_type": {"client_credentials"}}
	if err := c.req.PostForm(ctx, c.authURL, form, header, &resp); err != nil {
		return "", fmt.Errorf("reddit: fetch token: %w", err)
	}
	// Reddit reports bad credentials with a 200 and an error field
	if resp.AccessToken == "" {
		return "", fmt.Errorf("reddit: token request rejected: %s", resp.Error)
	}

	c.accessToken = resp.AccessToken
	c.expiresAt = c.now().Add(time.Duration(resp.ExpiresIn)*time.Second - 30*time.Second)
	return c.accessToken, nil
}

func (c *Client) baseHeader() http.Header {
	header := http.Header{}
	header.Set("User-Agent", c.userAgent)
	return header
}

func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	tok, err := c.token(ctx)
	if err != nil {
		return err
	}

	header := c.baseHeader()
	header.Set("Authorization", "Bearer "+tok)

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return c.req.GetJSON(ctx, endpoint, header, target)
}
