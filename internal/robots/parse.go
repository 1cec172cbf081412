package robots

import "strings"

// Parser states. A group accumulates agents in stateAgents, then rules
// in stateRules; a blank line, or a fresh User-agent line after rules,
// closes it.
const (
	stateOutside = iota
	stateAgents
	stateRules
)

// Parse consumes a robots-exclusion document as pre-split lines and
// returns the parsed Policy. It never fails: malformed lines, directive
// lines without a colon, and unrecognized keys (Crawl-delay, Sitemap,
// anything future) are skipped, matching the laxity of real-world
// robots files.
func Parse(lines []string) *Policy {
	p := &Policy{}
	state := stateOutside
	var cur *AgentGroup

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			// A block with agents but zero rules is dropped on the
			// blank line. Historical permissive behavior, kept
			// deliberately.
			cur = nil
			state = stateOutside
		}
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Split on the first colon only, so values carrying colons
		// (URLs in extension directives) survive intact.
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "user-agent":
			if state == stateRules {
				// The previous block already has rules, so this line
				// starts a fresh group. Consecutive User-agent lines
				// before any rule keep extending the same group.
				cur = nil
			}
			if cur == nil {
				cur = &AgentGroup{}
			}
			cur.Agents = append(cur.Agents, value)
			state = stateAgents
		case "allow", "disallow":
			if cur == nil {
				// Rule before any User-agent line: nothing to attach
				// it to.
				continue
			}
			cur.Rules = append(cur.Rules, PathRule{
				Path:    escapePath(value),
				Permits: key == "allow",
			})
			if state != stateRules {
				// The group joins the policy on its first rule and is
				// shared by pointer: later rule lines extend the entry
				// already present in Groups, and boundary closes only
				// reset parser state.
				p.Groups = append(p.Groups, cur)
				state = stateRules
			}
		}
	}
	return p
}

// ParseString splits text on newlines and parses it. Handy for callers
// holding the document as one blob.
func ParseString(text string) *Policy {
	return Parse(strings.Split(text, "\n"))
}
