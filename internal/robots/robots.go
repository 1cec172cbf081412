// Package robots parses robots-exclusion documents and answers
// allow/disallow queries for a user-agent and target path.
package robots

import (
	"net/url"
	"strings"
	"time"
)

// PathRule is a single Allow or Disallow directive. Path is stored in
// escaped form so that prefix comparison against an escaped candidate
// path is meaningful.
type PathRule struct {
	Path    string
	Permits bool
}

// AgentGroup is one block of directives applying to one or more
// user-agent tokens. Declaration order is significant in both slices:
// rule resolution is first-declared-wins.
type AgentGroup struct {
	Agents []string
	Rules  []PathRule
}

// Policy is one fully parsed robots-exclusion document.
//
// Groups is never mutated in place once parsing completes. A reparse
// builds a fresh Policy that callers publish wholesale, so concurrent
// read-only queries against an older snapshot stay consistent.
type Policy struct {
	Groups []*AgentGroup

	// AllowAll and DisallowAll bypass group matching entirely. They are
	// set by the retriever from the fetch outcome (no robots file vs.
	// access refused), never by the parser.
	AllowAll    bool
	DisallowAll bool

	// Origin and LastRefreshed are retriever bookkeeping. Matching
	// never reads them.
	Origin        string
	LastRefreshed time.Time
}

// escapePath normalizes URL escaping on a path: unescape whatever the
// document or caller gave us, then re-escape. Rule paths and candidate
// paths both pass through here, keeping prefix comparison consistent.
// The lone wildcard stays as-is so rule matching can recognize it.
func escapePath(p string) string {
	if p == "*" {
		return p
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	return (&url.URL{Path: p}).EscapedPath()
}

// String renders the policy back to directive lines in declaration
// order. Diagnostic only: comments and blank-line structure from the
// source document are not preserved.
func (p *Policy) String() string {
	var b strings.Builder
	for i, g := range p.Groups {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, a := range g.Agents {
			b.WriteString("User-agent: " + a + "\n")
		}
		for _, r := range g.Rules {
			if r.Permits {
				b.WriteString("Allow: " + r.Path + "\n")
			} else {
				b.WriteString("Disallow: " + r.Path + "\n")
			}
		}
	}
	return b.String()
}
