// Package fetcher retrieves robots-exclusion documents over HTTP and
// hands the core already-fetched text.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/crawlward/crawlward/internal/robots"
)

// maxDocumentBytes caps pathological robots files.
const maxDocumentBytes = 512_000

// Fetcher retrieves and parses a site's robots.txt.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
}

// New returns a Fetcher identifying itself as userAgent.
func New(userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
	}
}

// Fetch retrieves the robots.txt governing site (any URL on the site
// works) and returns the parsed policy with Origin and LastRefreshed
// set.
//
// Fetch outcomes map to policy overrides by longstanding crawler
// convention: a missing file permits everything, while 401/403 mean
// the site is refusing crawlers entirely. Server errors and transport
// failures return an error and no policy.
func (f *Fetcher) Fetch(ctx context.Context, site string) (*robots.Policy, error) {
	target, err := robotsURL(site)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", target, err)
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	var policy *robots.Policy
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		policy = &robots.Policy{DisallowAll: true}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// No robots file: nothing is restricted.
		policy = &robots.Policy{AllowAll: true}
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", target, err)
		}
		policy = robots.ParseString(string(body))
	default:
		return nil, fmt.Errorf("fetching %s: unexpected status %s", target, resp.Status)
	}

	policy.Origin = target
	policy.LastRefreshed = time.Now()
	return policy, nil
}

// robotsURL resolves the robots.txt location for any URL on a site.
// Scheme-less input gets https.
func robotsURL(site string) (string, error) {
	if !strings.Contains(site, "://") {
		site = "https://" + site
	}
	u, err := url.Parse(site)
	if err != nil {
		return "", fmt.Errorf("parsing site url %q: %w", site, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("site url %q has no host", site)
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/robots.txt"}).String(), nil
}
