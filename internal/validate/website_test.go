package validate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScorer(handler http.HandlerFunc) (*WebsiteScorer, *httptest.Server) {
	srv := httptest.NewServer(handler)
	ws := NewWebsiteScorer(srv.Client(), DefaultScoreConfig(), time.Minute)
	return ws, srv
}

func richPage() string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Acme Widgets</title></head><body>`)
	b.WriteString(`<nav><a href="/about">About</a><a href="/contact">Contact</a></nav>`)
	b.WriteString(`<p>Reach us at info@acme.com or on linkedin. See our privacy policy.</p>`)
	for i := 0; i < 1100; i++ {
		b.WriteString("word ")
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func TestWebsiteScorer_RichSiteValid(t *testing.T) {
	ws, srv := newTestScorer(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(richPage()))
	})
	defer srv.Close()

	res, err := ws.Check(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	// 20 base + 10 title + 10 contact + 10 about + 10 email + 5 linkedin
	// + 5 privacy + 10 nav + 15 + 10 word bonuses.
	assert.Equal(t, 105, res.Score)
}

func TestWebsiteScorer_Non2xxInvalid(t *testing.T) {
	ws, srv := newTestScorer(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	defer srv.Close()

	res, err := ws.Check(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, 0, res.Score)
}

func TestWebsiteScorer_UnreachableInvalid(t *testing.T) {
	ws := NewWebsiteScorer(&http.Client{Timeout: time.Second}, DefaultScoreConfig(), time.Minute)
	res, err := ws.Check(context.Background(), "http://127.0.0.1:1/nothing-here.example")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, 0, res.Score)
}

func TestWebsiteScorer_PlaceholderPenalized(t *testing.T) {
	ws, srv := newTestScorer(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Soon</title></head><body>Coming soon! Contact us, about us, privacy.</body></html>`))
	})
	defer srv.Close()

	res, err := ws.Check(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, res.Valid)
}

func TestWebsiteScorer_CachesPerDomain(t *testing.T) {
	hits := 0
	ws, srv := newTestScorer(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(richPage()))
	})
	defer srv.Close()

	_, err := ws.Check(context.Background(), srv.URL)
	require.NoError(t, err)
	_, err = ws.Check(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestWebsiteScorer_CancelledFetchNotCached(t *testing.T) {
	var stall atomic.Bool
	stall.Store(true)
	ws, srv := newTestScorer(func(w http.ResponseWriter, r *http.Request) {
		if stall.Load() {
			<-r.Context().Done()
			return
		}
		w.Write([]byte(richPage()))
	})
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := ws.Check(ctx, srv.URL)
	require.Error(t, err)

	// The aborted verdict must not stick: a later check on the same domain
	// fetches again and sees the real site.
	stall.Store(false)
	res, err := ws.Check(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestScore_SignalPoints(t *testing.T) {
	ws := NewWebsiteScorer(nil, DefaultScoreConfig(), time.Minute)

	assert.Equal(t, 20, ws.score("<html><body>plain</body></html>"))
	assert.Equal(t, 30, ws.score("<html><head><title>T</title></head><body>x</body></html>"))
	assert.Equal(t, -50, ws.score("404 not found... under construction"))
}
