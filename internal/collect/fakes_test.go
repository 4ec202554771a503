package collect

import (
	"context"
	"strings"
	"sync"

	"github.com/lepinkainen/artistpulse/internal/reddit"
	"github.com/lepinkainen/artistpulse/internal/spotify"
	"github.com/lepinkainen/artistpulse/internal/youtube"
)

// callLog records collaborator calls across the fakes so tests can check order.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeCatalog struct {
	log      *callLog
	artists  map[string][]spotify.Artist
	tracks   map[string][]spotify.Track
	features map[string]*spotify.AudioFeatures
	err      map[string]error

	featureCalls [][]string
}

func (f *fakeCatalog) SearchArtists(_ context.Context, query string, _ int) ([]spotify.Artist, error) {
	f.log.add("catalog:" + query)
	if err := f.err[query]; err != nil {
		return nil, err
	}
	return f.artists[query], nil
}

func (f *fakeCatalog) ArtistTopTracks(_ context.Context, artistID, _ string) ([]spotify.Track, error) {
	if err := f.err["top:"+artistID]; err != nil {
		return nil, err
	}
	return f.tracks[artistID], nil
}

func (f *fakeCatalog) AudioFeatures(_ context.Context, ids []string) ([]*spotify.AudioFeatures, error) {
	f.featureCalls = append(f.featureCalls, ids)
	out := make([]*spotify.AudioFeatures, len(ids))
	for i, id := range ids {
		out[i] = f.features[id]
	}
	return out, nil
}

type fakeDiscussion struct {
	log   *callLog
	posts map[string][]reddit.Post
	err   map[string]error
	calls int
}

func (f *fakeDiscussion) SearchSubreddit(_ context.Context, subreddit, query, _ string, _ int) ([]reddit.Post, error) {
	f.calls++
	f.log.add("discussion:" + query)
	if err := f.err[query]; err != nil {
		return nil, err
	}
	return f.posts[subreddit+"/"+query], nil
}

type fakeVideo struct {
	log        *callLog
	results    map[string][]youtube.SearchResult
	stats      map[string]map[string]string
	err        map[string]error
	statsCalls [][]string
}

func (f *fakeVideo) SearchVideos(_ context.Context, query string, _ int) ([]youtube.SearchResult, error) {
	name := strings.TrimSuffix(query, " official music video")
	f.log.add("video:" + name)
	if err := f.err[name]; err != nil {
		return nil, err
	}
	return f.results[name], nil
}

func (f *fakeVideo) VideoStatistics(_ context.Context, ids []string) (map[string]map[string]string, error) {
	f.statsCalls = append(f.statsCalls, ids)
	out := make(map[string]map[string]string)
	for _, id := range ids {
		if s, ok := f.stats[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func ptr[T any](v T) *T {
	return &v
}

func fullFeatures(id string) *spotify.AudioFeatures {
	return &spotify.AudioFeatures{
		ID:               id,
		Danceability:     ptr(0.8),
		Energy:           ptr(0.6),
		Speechiness:      ptr(0.25),
		Acousticness:     ptr(0.05),
		Instrumentalness: ptr(0.0),
		Liveness:         ptr(0.1),
		Loudness:         ptr(-5.5),
		Tempo:            ptr(120.0),
		Valence:          ptr(0.5),
	}
}
