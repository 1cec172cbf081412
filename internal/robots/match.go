package robots

import (
	"net/url"
	"strings"
)

// CanFetch reports whether userAgent may fetch targetURL under this
// policy. It cannot fail: any agent and URL strings yield a boolean,
// and the absence of an applicable rule means permission.
//
// Rule resolution is first-declared-prefix-match-wins. Modern crawlers
// mostly implement longest-prefix-wins instead; sites written against
// that convention can get different answers here for overlapping
// Allow/Disallow pairs.
func (p *Policy) CanFetch(userAgent, targetURL string) bool {
	// Disallow wins if both overrides are somehow set.
	if p.DisallowAll {
		return false
	}
	if p.AllowAll {
		return true
	}
	path := candidatePath(targetURL)
	for _, g := range p.Groups {
		if g.appliesTo(userAgent) {
			return g.permits(path)
		}
	}
	return true
}

// candidatePath extracts and escape-normalizes the path component of a
// URL. Scheme, host and query play no part in matching; an empty path
// becomes "/".
func candidatePath(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	p = escapePath(p)
	if p == "" {
		p = "/"
	}
	return p
}

// appliesTo matches the token before the first "/" of the supplied
// user-agent string against the group's agents. The wildcard token
// matches anything; otherwise case-insensitive containment in either
// direction counts, so a short registered token still matches the full
// product string it appears in.
func (g *AgentGroup) appliesTo(userAgent string) bool {
	token := strings.ToLower(strings.SplitN(userAgent, "/", 2)[0])
	for _, a := range g.Agents {
		if a == "*" {
			return true
		}
		a = strings.ToLower(a)
		if strings.Contains(token, a) || strings.Contains(a, token) {
			return true
		}
	}
	return false
}

// permits resolves the group's rules against an escaped candidate path.
// The first declared rule whose path is a prefix of the candidate
// decides; a rule path of "*" matches unconditionally. No match
// defaults to permit.
func (g *AgentGroup) permits(path string) bool {
	for _, r := range g.Rules {
		if r.Path == "*" || strings.HasPrefix(path, r.Path) {
			return r.Permits
		}
	}
	return true
}
