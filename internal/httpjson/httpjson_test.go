package httpjson

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	apperrors "github.com/lepinkainen/artistpulse/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

type flakyDoer struct {
	calls int
}

func (f *flakyDoer) Do(req *http.Request) (*http.Response, error) {
	f.calls++
	if f.calls == 1 {
		return nil, &url.Error{Op: "Get", URL: req.URL.String(), Err: timeoutError{}}
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{"status":"ok"}`)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func noSleep(context.Context, time.Duration) error { return nil }

func TestGetJSONRetriesOnTimeout(t *testing.T) {
	doer := &flakyDoer{}
	r := &Requester{Service: "test", HTTP: doer, Attempts: 2, sleep: noSleep}

	var payload map[string]string
	err := r.GetJSON(context.Background(), "http://example.test/", nil, &payload)
	require.NoError(t, err)
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, 2, doer.calls)
}

func TestGetJSONStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad token"))
	}))
	defer server.Close()

	r := &Requester{Service: "spotify", HTTP: server.Client(), Attempts: 3, sleep: noSleep}

	var payload map[string]any
	err := r.GetJSON(context.Background(), server.URL, nil, &payload)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "spotify: unexpected status 401: bad token")
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	r := &Requester{Service: "youtube", HTTP: server.Client(), Attempts: 3, sleep: noSleep}

	var payload map[string]bool
	require.NoError(t, r.GetJSON(context.Background(), server.URL, nil, &payload))
	assert.True(t, payload["ok"])
	assert.Equal(t, 3, calls)
}

func TestGetJSONRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	r := &Requester{Service: "reddit", HTTP: server.Client(), Attempts: 3, sleep: noSleep}

	var payload map[string]any
	err := r.GetJSON(context.Background(), server.URL, nil, &payload)
	require.Error(t, err)
	assert.True(t, apperrors.IsRateLimitError(err))
	assert.Contains(t, err.Error(), "retry after 7s")
}

func TestPostFormSendsHeadersAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "artistpulse-test", r.Header.Get("User-Agent"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		_, _ = w.Write([]byte(`{"access_token":"abc"}`))
	}))
	defer server.Close()

	r := &Requester{Service: "auth", HTTP: server.Client(), Attempts: 1}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	header := http.Header{}
	header.Set("User-Agent", "artistpulse-test")
	err := r.PostForm(context.Background(), server.URL, url.Values{"grant_type": {"client_credentials"}}, header, &payload)
	require.NoError(t, err)
	assert.Equal(t, "abc", payload.AccessToken)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&url.Error{Err: timeoutError{}}))
	assert.True(t, isRetryable(&url.Error{Err: errors.New("connection reset by peer")}))
	assert.False(t, isRetryable(&url.Error{Err: errors.New("bad request")}))
	assert.True(t, isRetryable(&StatusError{StatusCode: 503}))
	assert.False(t, isRetryable(&StatusError{StatusCode: 404}))
}

func TestBackoffDelayCaps(t *testing.T) {
	assert.Equal(t, 1*time.Second, backoffDelay(1))
	assert.Equal(t, 2*time.Second, backoffDelay(2))
	assert.Equal(t, 10*time.Second, backoffDelay(5))
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, time.Duration(0), parseRetryAfter(""))
	assert.Equal(t, 30*time.Second, parseRetryAfter("30"))
	assert.Equal(t, time.Duration(0), parseRetryAfter("soon"))
}
