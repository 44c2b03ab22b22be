// Package urlutil provides URL validation and naming helpers for the
// user-facing boundaries. The analysis core performs no URL validation
// of its own.
package urlutil

import (
	"fmt"
	"net/url"
	"time"
)

// Validate reports whether the string is a syntactically well-formed
// absolute http/https URL.
func Validate(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Domain extracts the host from a URL, empty when unparsable.
func Domain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

// ReportFilename builds a unique report file name from the URL's domain
// and the given time.
func ReportFilename(raw string, now time.Time) string {
	return fmt.Sprintf("pagespeed_%s_%s.pdf", Domain(raw), now.Format("20060102_150405"))
}
