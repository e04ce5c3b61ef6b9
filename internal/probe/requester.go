package probe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/maxvaer/sitemapprobe/internal/config"
)

// Requester wraps an HTTP client for probing sitemap ranges.
type Requester struct {
	client    *http.Client
	baseURL   string
	userAgent string
	logger    *slog.Logger
}

// NewRequester creates a Requester from the provided options.
func NewRequester(opts *config.Options, logger *slog.Logger) (*Requester, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must include scheme and host", opts.BaseURL)
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: opts.Timeout,
		}).DialContext,
		TLSHandshakeTimeout: opts.Timeout,
		MaxIdleConnsPerHost: 1,
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = config.DefaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Requester{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		baseURL:   strings.TrimRight(base.String(), "/"),
		userAgent: ua,
		logger:    logger,
	}, nil
}

// URL returns the sitemap URL probed for r.
func (q *Requester) URL(r Range) string {
	return BuildURL(q.baseURL, r)
}

// Probe issues a single GET for r and classifies the outcome. It never
// returns an error: transport failures are reported in the Result.
func (q *Requester) Probe(ctx context.Context, r Range) Result {
	result := Result{Range: r, URL: q.URL(r)}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, result.URL, nil)
	if err != nil {
		result.Outcome = OutcomeTransportError
		result.Err = err
		return result
	}
	req.Header.Set("User-Agent", q.userAgent)

	q.logger.Debug("probing range", slog.String("range", r.String()), slog.String("url", result.URL))

	start := time.Now()
	resp, err := q.client.Do(req)
	if err != nil {
		result.Elapsed = time.Since(start)
		result.Outcome = OutcomeTransportError
		result.Err = err
		q.logger.Debug("probe failed",
			slog.String("url", result.URL),
			slog.Duration("elapsed", result.Elapsed),
			slog.String("error", err.Error()))
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		// Drain so the elapsed time covers the whole response, as for 200s.
		_, _ = io.Copy(io.Discard, resp.Body)
		result.Elapsed = time.Since(start)
		result.Outcome = OutcomeHTTPError
		q.logger.Debug("probe returned non-200",
			slog.String("url", result.URL),
			slog.Int("status", resp.StatusCode),
			slog.Duration("elapsed", result.Elapsed))
		return result
	}

	body, err := io.ReadAll(resp.Body)
	result.Elapsed = time.Since(start)
	if err != nil {
		result.Outcome = OutcomeTransportError
		result.Err = fmt.Errorf("reading response body for %s: %w", r, err)
		return result
	}

	result.Outcome = OutcomeOK
	result.URLCount = CountURLs(body)
	result.Size = int64(len(body))
	result.PartsCount = resp.Header.Get("X-Parts-Count")
	result.Empty = resp.Header.Get("X-Empty-Sitemap") == "true"

	q.logger.Debug("probe succeeded",
		slog.String("url", result.URL),
		slog.Int("urls", result.URLCount),
		slog.String("size", humanize.Bytes(uint64(result.Size))),
		slog.Duration("elapsed", result.Elapsed))
	return result
}
