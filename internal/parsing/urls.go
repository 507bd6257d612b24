package parsing

import (
	"net"
	"net/url"
	"strings"
	"ytbatch/internal/errs"

	"golang.org/x/net/publicsuffix"
)

// ValidateURL checks that raw is an absolute http(s) URL with a usable host.
//
// Failures are returned as *errs.InvalidURLError.
func ValidateURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &errs.InvalidURLError{URL: raw, Reason: "empty URL"}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, &errs.InvalidURLError{URL: raw, Reason: err.Error()}
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	case "":
		return nil, &errs.InvalidURLError{URL: raw, Reason: "missing scheme"}
	default:
		return nil, &errs.InvalidURLError{URL: raw, Reason: "unsupported scheme " + u.Scheme}
	}

	host := u.Hostname()
	if host == "" {
		return nil, &errs.InvalidURLError{URL: raw, Reason: "missing host"}
	}

	if net.ParseIP(host) != nil || strings.EqualFold(host, "localhost") {
		return u, nil
	}

	if _, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host)); err != nil {
		return nil, &errs.InvalidURLError{URL: raw, Reason: "host has no registrable domain: " + host}
	}
	return u, nil
}

// RegistrableDomain returns the eTLD+1 for a URL, e.g. "youtube.com" for
// "https://www.youtube.com/watch?v=x".
func RegistrableDomain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	host := strings.ToLower(u.Hostname())
	if net.ParseIP(host) != nil || host == "localhost" {
		return host, nil
	}
	return publicsuffix.EffectiveTLDPlusOne(host)
}

// NormalizeURL standardizes URLs for comparison by removing protocol and any trailing slashes.
//
// Do NOT lowercase, some sites like YouTube have case-sensitive URLs.
func NormalizeURL(inputURL string) string {
	cleanURL := strings.TrimSpace(inputURL)
	cleanURL = strings.TrimPrefix(cleanURL, "https://")
	cleanURL = strings.TrimPrefix(cleanURL, "http://")
	return strings.TrimSuffix(cleanURL, "/")
}
