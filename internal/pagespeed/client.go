package pagespeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Retry behavior for transient upstream failures.
const (
	// DefaultMaxAttempts is the number of attempts for one API call,
	// including the first.
	DefaultMaxAttempts = 3
	// DefaultRetryBaseDelay is the backoff delay before the first retry;
	// it doubles on each subsequent attempt.
	DefaultRetryBaseDelay = 2 * time.Second
	// DefaultRequestTimeout bounds one API round-trip. The Insights API
	// runs a full Lighthouse pass server-side and is slow.
	DefaultRequestTimeout = 60 * time.Second
)

// DefaultEndpoint is the Insights v5 endpoint.
const DefaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// maxResponseBodyBytes limits the size of decoded API responses.
const maxResponseBodyBytes = 32 * 1024 * 1024 // 32 MB

// Errors returned by the client.
var (
	// ErrMalformedResponse is returned when the API payload lacks the
	// Lighthouse result or the performance category.
	ErrMalformedResponse = errors.New("malformed pagespeed response")
	// ErrInvalidStrategy is returned for strategies other than mobile or desktop.
	ErrInvalidStrategy = errors.New("invalid analysis strategy")
)

// Logger provides structured logging for the client.
type Logger interface {
	Debug(msg string, fields ...any)
	Warn(msg string, fields ...any)
}

// Client calls the PageSpeed Insights API.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	apiKey      string
	locale      string
	maxAttempts int
	retryDelay  time.Duration
	log         Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithEndpoint overrides the API endpoint, used by tests.
func WithEndpoint(endpoint string) Option {
	return func(cl *Client) { cl.endpoint = endpoint }
}

// WithLocale sets the locale parameter sent to the API.
func WithLocale(locale string) Option {
	return func(cl *Client) { cl.locale = locale }
}

// WithRetry sets the attempt count and base backoff delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(cl *Client) {
		cl.maxAttempts = maxAttempts
		cl.retryDelay = baseDelay
	}
}

// NewClient creates a PageSpeed Insights client.
func NewClient(apiKey string, log Logger, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultRequestTimeout},
		endpoint:    DefaultEndpoint,
		apiKey:      apiKey,
		locale:      "uk",
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryBaseDelay,
		log:         log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run fetches the Lighthouse result for the given URL and strategy.
// Transient failures (transport errors, 5xx) are retried with
// exponential backoff; a payload without a performance category is an
// explicit error, never a partial result.
func (c *Client) Run(ctx context.Context, pageURL string, strategy Strategy) (*Result, error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}

	reqURL, err := c.buildRequestURL(pageURL, strategy)
	if err != nil {
		return nil, err
	}

	body, err := c.getWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var result Result
	if decodeErr := json.Unmarshal(body, &result); decodeErr != nil {
		return nil, fmt.Errorf("pagespeed decode response: %w", decodeErr)
	}

	if result.LighthouseResult == nil || result.LighthouseResult.Categories.Performance == nil {
		return nil, ErrMalformedResponse
	}

	return &result, nil
}

// buildRequestURL assembles the endpoint URL with query parameters.
func (c *Client) buildRequestURL(pageURL string, strategy Strategy) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("pagespeed parse endpoint: %w", err)
	}

	q := u.Query()
	q.Set("url", pageURL)
	q.Set("strategy", string(strategy))
	q.Set("key", c.apiKey)
	q.Set("locale", c.locale)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// getWithRetry performs the GET, retrying transport errors and 5xx
// responses with exponential backoff. GET against the API is idempotent.
func (c *Client) getWithRetry(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := c.retryDelay << (attempt - 2)
			c.log.Warn("Retrying pagespeed request",
				"attempt", attempt,
				"delay", delay,
				"error", lastErr)

			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("pagespeed request canceled: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		body, retryable, err := c.doRequest(ctx, reqURL)
		if err == nil {
			return body, nil
		}

		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("pagespeed request failed after %d attempts: %w", c.maxAttempts, lastErr)
}

// doRequest performs one attempt. The second return value reports
// whether the failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("pagespeed new request: %w", err)
	}

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, true, fmt.Errorf("pagespeed do request: %w", doErr)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if readErr != nil {
		return nil, true, fmt.Errorf("pagespeed read body: %w", readErr)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, true, fmt.Errorf("pagespeed server error: status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("pagespeed unexpected status %d", resp.StatusCode)
	}

	return body, false, nil
}
