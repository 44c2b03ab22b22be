// Package inspect fetches a target page and runs SEO, accessibility,
// and security inspections over its HTML and response metadata.
package inspect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fetch retry behavior for transient failures on the target site.
const (
	// DefaultMaxAttempts is the number of attempts for one page fetch,
	// including the first.
	DefaultMaxAttempts = 3
	// DefaultRetryBaseDelay is the backoff delay before the first
	// retry; it doubles on each subsequent attempt.
	DefaultRetryBaseDelay = time.Second
	// DefaultRequestTimeout bounds one page round-trip.
	DefaultRequestTimeout = 30 * time.Second
)

// maxResponseBodyBytes limits the size of fetched page bodies.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// defaultUserAgent identifies the inspector to target sites.
const defaultUserAgent = "pagepulse/1.0 (+https://github.com/jonesrussell/pagepulse)"

// Page is the raw material for the inspections: the final response of
// one GET against the target URL, redirects followed.
type Page struct {
	// RequestURL is the URL the caller asked for.
	RequestURL string
	// FinalURL is the URL after redirects.
	FinalURL string
	// StatusCode is the final response status.
	StatusCode int
	// Header holds the final response headers.
	Header http.Header
	// Cookies are the cookies set by the final response.
	Cookies []*http.Cookie
	// Body is the response body as text.
	Body string
}

// UsesHTTPS reports whether the page was ultimately served over HTTPS,
// directly or via redirect.
func (p *Page) UsesHTTPS() bool {
	return strings.HasPrefix(p.FinalURL, "https://")
}

// FetchLogger provides structured logging for the fetcher.
type FetchLogger interface {
	Warn(msg string, fields ...any)
}

// Fetcher retrieves pages for inspection.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxAttempts int
	retryDelay  time.Duration
	log         FetchLogger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchRetry sets the attempt count and base backoff delay.
func WithFetchRetry(maxAttempts int, baseDelay time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.maxAttempts = maxAttempts
		f.retryDelay = baseDelay
	}
}

// WithUserAgent sets the User-Agent header sent to target sites.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) { f.userAgent = ua }
}

// NewFetcher creates a page fetcher backed by the given http.Client.
// A nil client gets a default with a bounded timeout.
func NewFetcher(client *http.Client, log FetchLogger, opts ...FetcherOption) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultRequestTimeout}
	}

	f := &Fetcher{
		client:      client,
		userAgent:   defaultUserAgent,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryBaseDelay,
		log:         log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs an HTTP GET against the target URL, following
// redirects and retrying transport errors and 5xx responses with
// exponential backoff.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	var lastErr error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := f.retryDelay << (attempt - 2)
			f.log.Warn("Retrying page fetch",
				"url", pageURL,
				"attempt", attempt,
				"delay", delay,
				"error", lastErr)

			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("page fetch canceled: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		page, retryable, err := f.doFetch(ctx, pageURL)
		if err == nil {
			return page, nil
		}

		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("page fetch failed after %d attempts: %w", f.maxAttempts, lastErr)
}

// doFetch performs one attempt. The second return value reports whether
// the failure is worth retrying.
func (f *Fetcher) doFetch(ctx context.Context, pageURL string) (*Page, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("page fetch new request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, doErr := f.client.Do(req)
	if doErr != nil {
		return nil, true, fmt.Errorf("page fetch do request: %w", doErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, true, fmt.Errorf("page fetch server error: status %d", resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, false, fmt.Errorf("page fetch unexpected status %d", resp.StatusCode)
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if readErr != nil {
		return nil, true, fmt.Errorf("page fetch read body: %w", readErr)
	}

	finalURL := pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Page{
		RequestURL: pageURL,
		FinalURL:   finalURL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Cookies:    resp.Cookies(),
		Body:       string(raw),
	}, false, nil
}
