package inspect

import (
	"fmt"
	"net/http"
	"strings"
)

// SecurityHeaders lists the response headers the inspection expects,
// in report order.
var SecurityHeaders = []string{
	"Strict-Transport-Security",
	"Content-Security-Policy",
	"X-Content-Type-Options",
	"X-Frame-Options",
	"Referrer-Policy",
	"Permissions-Policy",
	"X-XSS-Protection",
}

// CookieFinding records the attributes one cookie is missing.
type CookieFinding struct {
	// Name is the cookie name.
	Name string
	// MissingAttributes lists absent Secure/HttpOnly/SameSite attributes.
	MissingAttributes []string
}

// SecurityResult is the outcome of the transport and header inspection.
// The cookie check covers only cookies set by the fetched response;
// it is a heuristic signal, not a site-wide audit.
type SecurityResult struct {
	// UsesHTTPS reports HTTPS transport, directly or via redirect.
	UsesHTTPS bool
	// MissingHeaders lists expected security headers the response lacks.
	MissingHeaders []string
	// CookieCount is the number of cookies set by the response.
	CookieCount int
	// CookieFindings lists cookies missing protective attributes.
	CookieFindings []CookieFinding
	// Recommendations lists findings in natural language.
	Recommendations []string
}

// CheckSecurity inspects transport, response headers, and cookie
// attributes. It needs no HTML parsing and cannot fail.
func CheckSecurity(page *Page) *SecurityResult {
	result := &SecurityResult{
		UsesHTTPS:   page.UsesHTTPS(),
		CookieCount: len(page.Cookies),
	}

	for _, name := range SecurityHeaders {
		if page.Header.Get(name) == "" {
			result.MissingHeaders = append(result.MissingHeaders, name)
		}
	}

	for _, cookie := range page.Cookies {
		if finding, ok := inspectCookie(cookie); ok {
			result.CookieFindings = append(result.CookieFindings, finding)
		}
	}

	result.Recommendations = securityRecommendations(result)

	return result
}

// inspectCookie reports the protective attributes a cookie is missing.
func inspectCookie(cookie *http.Cookie) (CookieFinding, bool) {
	var missing []string

	if !cookie.Secure {
		missing = append(missing, "Secure")
	}
	if !cookie.HttpOnly {
		missing = append(missing, "HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode && cookie.SameSite != http.SameSiteStrictMode {
		missing = append(missing, "SameSite")
	}

	if len(missing) == 0 {
		return CookieFinding{}, false
	}

	return CookieFinding{Name: cookie.Name, MissingAttributes: missing}, true
}

// securityRecommendations emits one finding per missing protection.
func securityRecommendations(r *SecurityResult) []string {
	var recs []string

	if !r.UsesHTTPS {
		recs = append(recs, "Сайт не використовує HTTPS: налаштуйте TLS-сертифікат і перенаправлення з HTTP.")
	}

	for _, name := range r.MissingHeaders {
		recs = append(recs, fmt.Sprintf(
			"Відсутній заголовок безпеки %s: додайте його до відповідей сервера.", name))
	}

	for _, finding := range r.CookieFindings {
		recs = append(recs, fmt.Sprintf(
			"Cookie %q не має атрибутів %s: додайте їх для захисту сесії.",
			finding.Name, strings.Join(finding.MissingAttributes, ", ")))
	}

	return recs
}
