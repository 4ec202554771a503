// Package httpjson is the shared JSON-over-HTTP request loop used by the
// source API clients: rate limiting, retries with backoff, and status
// mapping.
package httpjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/lepinkainen/artistpulse/internal/errors"
	"github.com/lepinkainen/artistpulse/internal/ratelimit"
)

const defaultMaxAttempts = 3

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// StatusError is returned for non-2xx responses other than 429.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.StatusCode, e.Body)
}

// Requester performs JSON requests on behalf of one service.
type Requester struct {
	Service  string
	HTTP     HTTPDoer
	Limiter  *ratelimit.Limiter
	Attempts int

	// sleep is replaced in tests to avoid real backoff delays.
	sleep func(context.Context, time.Duration) error
}

// New returns a Requester with the default retry budget and a 10s timeout client.
func New(service string, limiter *ratelimit.Limiter) *Requester {
	return &Requester{
		Service:  service,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		Limiter:  limiter,
		Attempts: defaultMaxAttempts,
	}
}

// GetJSON issues a GET to endpoint and decodes the response into target.
func (r *Requester) GetJSON(ctx context.Context, endpoint string, header http.Header, target any) error {
	return r.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		copyHeader(req.Header, header)
		return req, nil
	}, target)
}

// PostForm issues a form-encoded POST and decodes the response into target.
func (r *Requester) PostForm(ctx context.Context, endpoint string, form url.Values, header http.Header, target any) error {
	return r.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		copyHeader(req.Header, header)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}, target)
}

func (r *Requester) do(ctx context.Context, build func() (*http.Request, error), target any) error {
	attempts := r.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := r.Limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := build()
		if err != nil {
			return err
		}

		lastErr = r.doOnce(req, target)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) || attempt == attempts {
			return lastErr
		}
		if err := r.wait(ctx, backoffDelay(attempt)); err != nil {
			return err
		}
	}
	return lastErr
}

func (r *Requester) doOnce(req *http.Request, target any) error {
	resp, err := r.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return apperrors.NewRateLimitErrorWithRetry(
			fmt.Sprintf("%s: too many requests", r.Service),
			parseRetryAfter(resp.Header.Get("Retry-After")),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			Service:    r.Service,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%s: decode response: %w", r.Service, err)
	}
	return nil
}

func (r *Requester) wait(ctx context.Context, d time.Duration) error {
	if r.sleep != nil {
		return r.sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		// Network errors (connection resets etc.)
		if strings.Contains(urlErr.Error(), "connection") {
			return true
		}
	}
	return false
}

func backoffDelay(attempt int) time.Duration {
	// exponential backoff capped at 10 seconds
	delay := time.Duration(1<<uint(attempt-1)) * time.Second
	if delay > 10*time.Second {
		return 10 * time.Second
	}
	return delay
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d.Round(time.Second)
		}
	}
	return 0
}

func copyHeader(dst, src http.Header) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}
