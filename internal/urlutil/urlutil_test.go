package urlutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagepulse/internal/urlutil"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "https url", raw: "https://example.com", want: true},
		{name: "http url", raw: "http://example.com/path?q=1", want: true},
		{name: "missing scheme", raw: "example.com", want: false},
		{name: "unsupported scheme", raw: "ftp://example.com", want: false},
		{name: "scheme only", raw: "https://", want: false},
		{name: "empty", raw: "", want: false},
		{name: "plain text", raw: "not a url", want: false},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, test.want, urlutil.Validate(test.raw))
		})
	}
}

func TestDomain(t *testing.T) {
	t.Parallel()

	require.Equal(t, "example.com", urlutil.Domain("https://example.com/path"))
	require.Equal(t, "sub.example.com:8080", urlutil.Domain("http://sub.example.com:8080"))
	require.Equal(t, "", urlutil.Domain("://bad"))
}

func TestReportFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	got := urlutil.ReportFilename("https://example.com/page", now)
	require.Equal(t, "pagespeed_example.com_20250314_150926.pdf", got)
}
