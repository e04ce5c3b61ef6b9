package probe

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/maxvaer/sitemapprobe/internal/config"
	"github.com/maxvaer/sitemapprobe/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOpts(baseURL string) *config.Options {
	return &config.Options{
		BaseURL:   baseURL,
		Timeout:   5 * time.Second,
		UserAgent: config.DefaultUserAgent,
	}
}

func newTestRequester(t *testing.T, opts *config.Options) *Requester {
	t.Helper()
	req, err := NewRequester(opts, logging.Discard())
	require.NoError(t, err)
	return req
}

func sitemapBody(n int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><urlset>`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "<url><loc>https://example.com/part/%d</loc></url>", i)
	}
	b.WriteString("</urlset>")
	return b.String()
}

func TestProbeSuccessCountsURLs(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("X-Parts-Count", "3")
		fmt.Fprint(w, sitemapBody(3))
	}))
	defer srv.Close()

	req := newTestRequester(t, testOpts(srv.URL+"/sitemap"))
	result := req.Probe(context.Background(), Range{1, 3000})

	assert.Equal(t, "/sitemap/1/3000.xml", gotPath)
	assert.Equal(t, config.DefaultUserAgent, gotUA)
	assert.Equal(t, OutcomeOK, result.Outcome)
	assert.True(t, result.OK())
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, 3, result.URLCount)
	assert.Equal(t, int64(len(sitemapBody(3))), result.Size)
	assert.Equal(t, "3", result.PartsCount)
	assert.False(t, result.Empty)
	assert.NoError(t, result.Err)
	assert.Equal(t, srv.URL+"/sitemap/1/3000.xml", result.URL)
}

func TestProbeEmptySitemapHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Empty-Sitemap", "true")
		fmt.Fprint(w, sitemapBody(0))
	}))
	defer srv.Close()

	result := newTestRequester(t, testOpts(srv.URL)).Probe(context.Background(), Range{5000001, 5003000})

	assert.Equal(t, OutcomeOK, result.Outcome)
	assert.Equal(t, 0, result.URLCount)
	assert.True(t, result.Empty)
}

func TestProbeNon200SkipsCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, sitemapBody(2))
	}))
	defer srv.Close()

	result := newTestRequester(t, testOpts(srv.URL)).Probe(context.Background(), Range{1, 3000})

	assert.Equal(t, OutcomeHTTPError, result.Outcome)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Zero(t, result.URLCount)
	assert.Zero(t, result.Size)
	assert.NoError(t, result.Err)
}

func TestProbeConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	result := newTestRequester(t, testOpts(baseURL)).Probe(context.Background(), Range{1, 3000})

	assert.Equal(t, OutcomeTransportError, result.Outcome)
	assert.Zero(t, result.StatusCode)
	require.Error(t, result.Err)
	assert.NotEmpty(t, result.ErrorMessage())
}

func TestProbeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	opts := testOpts(srv.URL)
	opts.Timeout = 50 * time.Millisecond
	result := newTestRequester(t, opts).Probe(context.Background(), Range{1, 3000})

	assert.Equal(t, OutcomeTransportError, result.Outcome)
	require.Error(t, result.Err)
	assert.Less(t, result.Elapsed, 2*time.Second)
}

func TestProbeElapsedReflectsDelay(t *testing.T) {
	const delay = 50 * time.Millisecond
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		fmt.Fprint(w, sitemapBody(1))
	}))
	defer srv.Close()

	result := newTestRequester(t, testOpts(srv.URL)).Probe(context.Background(), Range{1, 3000})

	require.Equal(t, OutcomeOK, result.Outcome)
	assert.GreaterOrEqual(t, result.Elapsed, delay)
	assert.GreaterOrEqual(t, result.Millis(), 50.0)
}

func TestProbeCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sitemapBody(1))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := newTestRequester(t, testOpts(srv.URL)).Probe(ctx, Range{1, 3000})

	assert.Equal(t, OutcomeTransportError, result.Outcome)
	assert.ErrorIs(t, result.Err, context.Canceled)
}

func TestNewRequesterRejectsRelativeURL(t *testing.T) {
	_, err := NewRequester(testOpts("/sitemap"), logging.Discard())
	assert.Error(t, err)
}

func TestMillisNeverNegative(t *testing.T) {
	r := &Result{Elapsed: -time.Millisecond}
	assert.Zero(t, r.Millis())
}
