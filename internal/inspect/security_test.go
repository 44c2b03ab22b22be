package inspect_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagepulse/internal/inspect"
)

func TestCheckSecurity_AllProtections(t *testing.T) {
	t.Parallel()

	header := http.Header{}
	for _, name := range inspect.SecurityHeaders {
		header.Set(name, "value")
	}

	page := &inspect.Page{
		FinalURL: "https://example.com",
		Header:   header,
		Cookies: []*http.Cookie{
			{
				Name:     "session",
				Secure:   true,
				HttpOnly: true,
				SameSite: http.SameSiteStrictMode,
			},
		},
	}

	result := inspect.CheckSecurity(page)

	require.True(t, result.UsesHTTPS)
	require.Empty(t, result.MissingHeaders)
	require.Equal(t, 1, result.CookieCount)
	require.Empty(t, result.CookieFindings)
	require.Empty(t, result.Recommendations)
}

func TestCheckSecurity_NoProtections(t *testing.T) {
	t.Parallel()

	page := &inspect.Page{
		FinalURL: "http://example.com",
		Header:   http.Header{},
		Cookies: []*http.Cookie{
			{Name: "tracking"},
		},
	}

	result := inspect.CheckSecurity(page)

	require.False(t, result.UsesHTTPS)
	require.Equal(t, inspect.SecurityHeaders, result.MissingHeaders)
	require.Len(t, result.CookieFindings, 1)
	require.Equal(t, "tracking", result.CookieFindings[0].Name)
	require.Equal(t, []string{"Secure", "HttpOnly", "SameSite"}, result.CookieFindings[0].MissingAttributes)

	// HTTPS finding, one per missing header, one per cookie finding.
	require.Len(t, result.Recommendations, 1+len(inspect.SecurityHeaders)+1)
}

func TestCheckSecurity_SameSiteModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sameSite http.SameSite
		missing  bool
	}{
		{name: "lax is enough", sameSite: http.SameSiteLaxMode, missing: false},
		{name: "strict is enough", sameSite: http.SameSiteStrictMode, missing: false},
		{name: "none is missing", sameSite: http.SameSiteNoneMode, missing: true},
		{name: "unset is missing", sameSite: 0, missing: true},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			page := &inspect.Page{
				FinalURL: "https://example.com",
				Header:   http.Header{},
				Cookies: []*http.Cookie{
					{Name: "c", Secure: true, HttpOnly: true, SameSite: test.sameSite},
				},
			}

			result := inspect.CheckSecurity(page)
			if test.missing {
				require.Len(t, result.CookieFindings, 1)
				require.Equal(t, []string{"SameSite"}, result.CookieFindings[0].MissingAttributes)
			} else {
				require.Empty(t, result.CookieFindings)
			}
		})
	}
}

func TestPage_UsesHTTPS(t *testing.T) {
	t.Parallel()

	require.True(t, (&inspect.Page{FinalURL: "https://example.com"}).UsesHTTPS())
	require.False(t, (&inspect.Page{FinalURL: "http://example.com"}).UsesHTTPS())
}
