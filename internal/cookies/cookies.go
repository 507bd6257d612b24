// Package cookies exports local browser cookies for yt-dlp.
package cookies

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/domain/logger"
	"ytbatch/internal/parsing"

	"github.com/browserutils/kooky"
	// Use all browsers for Kooky:
	_ "github.com/browserutils/kooky/browser/all"
)

// readAll is kooky's store traversal, swapped out in tests.
var readAll func(filters ...kooky.Filter) []*kooky.Cookie = kooky.ReadCookies

// ReadFunc loads cookies for a registrable domain.
type ReadFunc func(ctx context.Context, domain string) ([]*http.Cookie, error)

// Manager writes one Netscape cookie file per domain and caches the path.
type Manager struct {
	mu    sync.Mutex
	dir   string
	read  ReadFunc
	files map[string]string
}

// NewManager returns a Manager writing cookie files into dir, reading browser cookies with kooky.
func NewManager(dir string) *Manager {
	return NewManagerWithReader(dir, readBrowserCookies)
}

// NewManagerWithReader returns a Manager using a custom cookie source.
func NewManagerWithReader(dir string, read ReadFunc) *Manager {
	return &Manager{
		dir:   dir,
		read:  read,
		files: make(map[string]string),
	}
}

// CookieFileFor returns a cookie file for the URL's domain.
//
// An empty path means no cookies were found.
func (cm *Manager) CookieFileFor(ctx context.Context, rawURL string) (string, error) {
	domain, err := parsing.RegistrableDomain(rawURL)
	if err != nil {
		return "", fmt.Errorf("error extracting base domain in cookie grab: %w", err)
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	if path, ok := cm.files[domain]; ok {
		return path, nil
	}

	cookies, err := cm.read(ctx, domain)
	if err != nil {
		logger.Pl.D(2, "Failed reading cookies for %s: %v", domain, err)
		cookies = nil
	}

	if len(cookies) == 0 {
		logger.Pl.I("No cookies found for %s", domain)
		cm.files[domain] = ""
		return "", nil
	}
	logger.Pl.I("Found %d cookies for %s", len(cookies), domain)

	if err := os.MkdirAll(cm.dir, consts.PermsCookieDir); err != nil {
		return "", fmt.Errorf("failed to create cookie directory %q: %w", cm.dir, err)
	}

	path := filepath.Join(cm.dir, strings.ReplaceAll(domain, ":", "_")+".cookies.txt")
	if err := SaveCookiesToFile(cookies, domain, path); err != nil {
		return "", err
	}

	cm.files[domain] = path
	return path, nil
}

// readBrowserCookies loads the valid cookies for a domain from every supported browser.
//
// kooky skips stores it cannot read, so an empty result just means no cookies.
func readBrowserCookies(ctx context.Context, domain string) ([]*http.Cookie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return convertToHTTPCookies(readAll(kooky.Valid, kooky.DomainHasSuffix(domain))), nil
}

// convertToHTTPCookies converts kooky cookies to http.Cookie format.
func convertToHTTPCookies(kookyCookies []*kooky.Cookie) []*http.Cookie {
	httpCookies := make([]*http.Cookie, len(kookyCookies))
	for i, c := range kookyCookies {
		httpCookies[i] = &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
			Secure:  c.Secure,
		}
	}
	return httpCookies
}

// SaveCookiesToFile saves the cookies to a file in Netscape format.
func SaveCookiesToFile(cookies []*http.Cookie, fallbackDomain, cookieFilePath string) (err error) {
	file, err := os.OpenFile(cookieFilePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, consts.PermsCookieFile)
	if err != nil {
		return fmt.Errorf("failed to create cookie file %q: %w", cookieFilePath, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file %q: %w", cookieFilePath, cerr)
		}
	}()

	// Write the header for the Netscape cookies file
	if _, err = file.WriteString("# Netscape HTTP Cookie File\n# https://curl.haxx.se/rfc/cookie_spec.html\n# This is a generated file! Do not edit.\n\n"); err != nil {
		return err
	}

	logger.Pl.D(1, "Saving %d cookies to file %s...", len(cookies), cookieFilePath)

	for _, cookie := range cookies {
		domain := cookie.Domain
		if domain == "" {
			domain = fallbackDomain
		}

		includeSubdomains := "FALSE"
		if strings.HasPrefix(domain, ".") {
			includeSubdomains = "TRUE"
		}

		secure := "FALSE"
		if cookie.Secure {
			secure = "TRUE"
		}

		path := cookie.Path
		if path == "" {
			path = "/"
		}

		// Session cookies are written with expiry 0
		expires := int64(0)
		if !cookie.Expires.IsZero() {
			expires = cookie.Expires.Unix()
		}

		if _, err = fmt.Fprintf(file, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			domain, includeSubdomains, path, secure, expires, cookie.Name, cookie.Value); err != nil {
			return err
		}
	}
	return nil
}
