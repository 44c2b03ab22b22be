package pagespeed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagepulse/internal/logger"
	"github.com/jonesrussell/pagepulse/internal/pagespeed"
)

const validPayload = `{
	"lighthouseResult": {
		"categories": {
			"performance": {"score": 0.87}
		},
		"audits": {
			"first-contentful-paint": {
				"id": "first-contentful-paint",
				"title": "First Contentful Paint",
				"score": 0.91,
				"scoreDisplayMode": "numeric",
				"displayValue": "1.2 s",
				"numericValue": 1234.5,
				"numericUnit": "millisecond"
			}
		}
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*pagespeed.Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := pagespeed.NewClient(
		"test-key",
		logger.NewNoOp(),
		pagespeed.WithEndpoint(srv.URL),
		pagespeed.WithHTTPClient(srv.Client()),
		pagespeed.WithRetry(3, time.Millisecond),
	)
	return client, srv
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	var gotQuery atomic.Value
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(validPayload))
	})

	result, err := client.Run(context.Background(), "https://example.com", pagespeed.StrategyMobile)
	require.NoError(t, err)
	require.NotNil(t, result.LighthouseResult)
	require.InDelta(t, 0.87, result.LighthouseResult.Categories.Performance.Score, 0.001)

	audit, ok := result.LighthouseResult.Audits["first-contentful-paint"]
	require.True(t, ok)
	require.Equal(t, "1.2 s", audit.DisplayValue)
	require.NotNil(t, audit.Score)

	query, _ := gotQuery.Load().(url.Values)
	require.Equal(t, "https://example.com", query["url"][0])
	require.Equal(t, "mobile", query["strategy"][0])
	require.Equal(t, "test-key", query["key"][0])
}

func TestRun_InvalidStrategy(t *testing.T) {
	t.Parallel()

	client := pagespeed.NewClient("test-key", logger.NewNoOp())

	_, err := client.Run(context.Background(), "https://example.com", "tablet")
	require.ErrorIs(t, err, pagespeed.ErrInvalidStrategy)
}

func TestRun_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(validPayload))
	})

	result, err := client.Run(context.Background(), "https://example.com", pagespeed.StrategyDesktop)
	require.NoError(t, err)
	require.NotNil(t, result.LighthouseResult)
	require.Equal(t, int32(3), calls.Load())
}

func TestRun_ExhaustsRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Run(context.Background(), "https://example.com", pagespeed.StrategyMobile)
	require.Error(t, err)
	require.Equal(t, int32(3), calls.Load())
}

func TestRun_ClientErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.Run(context.Background(), "https://example.com", pagespeed.StrategyMobile)
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestRun_MalformedPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing lighthouse result", body: `{}`},
		{name: "missing performance category", body: `{"lighthouseResult": {"categories": {}}}`},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(test.body))
			})

			_, err := client.Run(context.Background(), "https://example.com", pagespeed.StrategyMobile)
			require.ErrorIs(t, err, pagespeed.ErrMalformedResponse)
		})
	}
}

func TestRun_InvalidJSON(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.Run(context.Background(), "https://example.com", pagespeed.StrategyMobile)
	require.Error(t, err)
	require.NotErrorIs(t, err, pagespeed.ErrMalformedResponse)
}

func TestRun_ContextCanceledDuringBackoff(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := pagespeed.NewClient(
		"test-key",
		logger.NewNoOp(),
		pagespeed.WithEndpoint(srv.URL),
		pagespeed.WithHTTPClient(srv.Client()),
		pagespeed.WithRetry(3, time.Minute),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Run(ctx, "https://example.com", pagespeed.StrategyMobile)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
