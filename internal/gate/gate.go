// Package gate decides whether a crawler request may proceed, combining
// the skip-host exemption list with cached robots policies.
package gate

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gobwas/glob"

	"github.com/crawlward/crawlward/internal/cache"
	"github.com/crawlward/crawlward/internal/robots"
)

// Decision is the outcome of checking one URL.
type Decision struct {
	Allowed bool
	Reason  string
}

// Gate evaluates URLs against robots policy for a fixed crawler agent.
type Gate struct {
	agent string
	skip  []glob.Glob
	cache *cache.Cache
}

// New compiles the skip-host glob patterns and returns a Gate checking
// on behalf of agent.
func New(agent string, skipHosts []string, c *cache.Cache) (*Gate, error) {
	patterns := make([]glob.Glob, 0, len(skipHosts))
	for _, h := range skipHosts {
		// Case-insensitive matching per DNS spec
		g, err := glob.Compile(strings.ToLower(h))
		if err != nil {
			return nil, fmt.Errorf("compiling skip pattern %q: %w", h, err)
		}
		patterns = append(patterns, g)
	}
	return &Gate{agent: agent, skip: patterns, cache: c}, nil
}

// Check resolves rawURL against the owning site's robots policy. Hosts
// on the skip list bypass robots entirely; a failed policy fetch fails
// open with the failure recorded in the reason, since robots files are
// advisory and an unreachable one must not halt a crawl.
func (g *Gate) Check(ctx context.Context, rawURL string) Decision {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return Decision{Allowed: false, Reason: fmt.Sprintf("unusable url %q", rawURL)}
	}

	host := strings.ToLower(u.Hostname())
	for _, pattern := range g.skip {
		if pattern.Match(host) {
			return Decision{Allowed: true, Reason: "host on skip list"}
		}
	}

	site := u.Scheme + "://" + u.Host
	policy, err := g.cache.Lookup(ctx, site)
	if err != nil {
		return Decision{Allowed: true, Reason: fmt.Sprintf("robots unavailable, failing open: %v", err)}
	}
	if !policy.CanFetch(g.agent, rawURL) {
		return Decision{Allowed: false, Reason: "disallowed by " + policy.Origin}
	}
	return Decision{Allowed: true, Reason: "permitted by " + policy.Origin}
}

// Policy returns the cached policy snapshot governing rawURL, if one
// has been fetched. Diagnostic companion to Check.
func (g *Gate) Policy(rawURL string) (*robots.Policy, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, false
	}
	return g.cache.Get(u.Scheme + "://" + u.Host)
}
