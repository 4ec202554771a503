package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "artistpulse-test/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"access_token":"rtok","expires_in":86400}`))
	})
	mux.HandleFunc("/r/", handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return NewClient("id", "secret", "artistpulse-test/1.0",
		WithBaseURL(server.URL),
		WithAuthURL(server.URL+"/api/v1/access_token"),
		WithHTTPClient(server.Client()),
		WithRetryAttempts(1),
	)
}

func TestSearchSubreddit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/hiphopheads/search", r.URL.Path)
		assert.Equal(t, "Kendrick Lamar", r.URL.Query().Get("q"))
		assert.Equal(t, "hot", r.URL.Query().Get("sort"))
		assert.Equal(t, "1", r.URL.Query().Get("restrict_sr"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer rtok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":{"children":[
			{"kind":"t3","data":{"title":"[FRESH] Kendrick Lamar - Not Like Us","score":25000,"num_comments":3100,"upvote_ratio":0.97,"url":"https://youtu.be/x","created_utc":1714700000.0}},
			{"kind":"t3","data":{"title":"Discussion","score":12,"num_comments":4,"url":"https://reddit.com/r/hiphopheads/1","created_utc":1714600000.0}}
		]}}`))
	})

	posts, err := client.SearchSubreddit(context.Background(), "hiphopheads", "Kendrick Lamar", "", 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "hiphopheads", posts[0].Subreddit)
	assert.Equal(t, 25000, posts[0].Score)
	require.NotNil(t, posts[0].UpvoteRatio)
	assert.InDelta(t, 0.97, *posts[0].UpvoteRatio, 1e-9)
	assert.InDelta(t, 1714700000.0, posts[0].CreatedUTC, 1e-6)

	assert.Nil(t, posts[1].UpvoteRatio)
}

func TestSearchSubredditCapsResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		children := make([]string, 0, 15)
		for i := 0; i < 15; i++ {
			children = append(children, fmt.Sprintf(`{"kind":"t3","data":{"title":"post %d"}}`, i))
		}
		_, _ = w.Write([]byte(`{"data":{"children":[` + strings.Join(children, ",") + `]}}`))
	})

	posts, err := client.SearchSubreddit(context.Background(), "rap", "Future", "hot", 10)
	require.NoError(t, err)
	assert.Len(t, posts, 10)
}

func TestSearchSubredditSkipsNonSubmissions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"children":[
			{"kind":"t5","data":{"title":"a subreddit"}},
			{"kind":"t3","data":{"title":"a post"}}
		]}}`))
	})

	posts, err := client.SearchSubreddit(context.Background(), "rap", "Migos", "hot", 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "a post", posts[0].Title)
}

func TestTokenRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient("id", "bad", "", WithAuthURL(server.URL+"/api/v1/access_token"), WithHTTPClient(server.Client()))
	_, err := client.SearchSubreddit(context.Background(), "hiphopheads", "Drake", "hot", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestMissingCredentials(t *testing.T) {
	_, err := NewClient("", "", "").SearchSubreddit(context.Background(), "hiphopheads", "Drake", "hot", 10)
	require.ErrorIs(t, err, ErrMissingCredentials)
}
