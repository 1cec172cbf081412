package robots

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanFetch_Overrides(t *testing.T) {
	allow := &Policy{AllowAll: true}
	assert.True(t, allow.CanFetch("anything", "/anywhere"))
	assert.True(t, allow.CanFetch("", ""))

	deny := &Policy{DisallowAll: true}
	assert.False(t, deny.CanFetch("anything", "/anywhere"))
	assert.False(t, deny.CanFetch("", ""))

	// Disallow takes precedence when both are set.
	both := &Policy{AllowAll: true, DisallowAll: true}
	assert.False(t, both.CanFetch("bot", "/"))
}

func TestCanFetch_FirstDeclaredRuleWins(t *testing.T) {
	p := ParseString("User-agent: *\nDisallow: /a\nAllow: /a/public\n")
	// The broader Disallow comes first, so the more specific Allow that
	// follows never gets a look at /a/public.
	assert.False(t, p.CanFetch("bot", "/a/public"))
	assert.True(t, p.CanFetch("bot", "/b"))
}

func TestCanFetch_DefaultPermit(t *testing.T) {
	p := ParseString("User-agent: *\nDisallow: /search\n")
	assert.True(t, p.CanFetch("bot", "/public"))

	// No group matches at all.
	named := ParseString("User-agent: other\nDisallow: /\n")
	assert.True(t, named.CanFetch("unrelatedthing", "/anything"))

	// Empty policy.
	assert.True(t, (&Policy{}).CanFetch("bot", "/x"))
}

func TestCanFetch_WildcardAgent(t *testing.T) {
	p := ParseString("User-agent: *\nDisallow: /x\n")
	for _, agent := range []string{"bot", "SomeCrawler/2.0 (+https://example.com)", ""} {
		assert.False(t, p.CanFetch(agent, "/x"), "agent %q", agent)
	}
}

func TestCanFetch_AgentSubstringBothWays(t *testing.T) {
	p := ParseString("User-agent: figtree\nDisallow: /private\n")

	// Registered token contained in the product token.
	assert.False(t, p.CanFetch("somefigtreebot/1.0", "/private"))
	// Product token contained in the registered token.
	assert.False(t, p.CanFetch("fig/1.0", "/private"))
	// Case-insensitive.
	assert.False(t, p.CanFetch("FigTree/3.1", "/private"))
	// Only the part before the first slash is considered.
	assert.True(t, p.CanFetch("other/figtree", "/private"))
}

func TestCanFetch_FirstMatchingGroupWins(t *testing.T) {
	p := ParseString("User-agent: special\nAllow: /\n\nUser-agent: *\nDisallow: /\n")
	assert.True(t, p.CanFetch("special/1.0", "/page"))
	assert.False(t, p.CanFetch("anyone-else", "/page"))
}

func TestCanFetch_TwoWildcardGroupsIndependent(t *testing.T) {
	p := ParseString("User-agent: *\nDisallow: /search\n\nUser-agent: *\nDisallow: /admin\n")
	require.Len(t, p.Groups, 2)
	assert.False(t, p.CanFetch("*", "/search"))
	assert.True(t, p.CanFetch("*", "/public"))
	// The second wildcard group is shadowed by the first, so its
	// /admin rule never applies.
	assert.True(t, p.CanFetch("*", "/admin"))
}

func TestCanFetch_DroppedEmptyBlockHasNoEffect(t *testing.T) {
	p := ParseString("User-agent: Bot\n\n")
	assert.True(t, p.CanFetch("Bot", "/anything"))
}

func TestCanFetch_PathExtraction(t *testing.T) {
	p := ParseString("User-agent: *\nDisallow: /search\n")

	// Full URL: scheme, host and query are ignored.
	assert.False(t, p.CanFetch("bot", "https://example.com/search?q=x"))
	assert.False(t, p.CanFetch("bot", "http://other.example/search/deep"))
	// Bare path works too.
	assert.False(t, p.CanFetch("bot", "/search"))
	// Empty path substitutes "/".
	assert.True(t, p.CanFetch("bot", "https://example.com"))
}

func TestCanFetch_RootDisallow(t *testing.T) {
	p := ParseString("User-agent: *\nDisallow: /\n")
	assert.False(t, p.CanFetch("bot", "https://example.com"))
	assert.False(t, p.CanFetch("bot", "/deep/path"))
}

func TestCanFetch_StarRuleMatchesEverything(t *testing.T) {
	p := ParseString("User-agent: *\nDisallow: *\n")
	assert.False(t, p.CanFetch("bot", "/literally/anything"))
}

func TestCanFetch_EscapingAgreesBetweenRuleAndCandidate(t *testing.T) {
	p := ParseString("User-agent: *\nDisallow: /a b\n")
	assert.False(t, p.CanFetch("bot", "/a%20b/c"))
	assert.False(t, p.CanFetch("bot", "/a b/c"))
	assert.True(t, p.CanFetch("bot", "/ab"))
}

func TestCanFetch_WikiExample(t *testing.T) {
	p := ParseString("User-agent: *\n" +
		"Disallow: /search\n" +
		"Allow: /search/about\n" +
		"\n" +
		"User-agent: ia_archiver\n" +
		"Disallow: /wiki/User\n")

	assert.False(t, p.CanFetch("*", "/search"))
	// Disallow /search is declared first and prefix-matches, so the
	// more specific Allow below it never wins.
	assert.False(t, p.CanFetch("*", "/search/about"))
	assert.False(t, p.CanFetch("ia_archiver/1.0", "/wiki/UserTalk"))
	assert.True(t, p.CanFetch("ia_archiver/1.0", "/wiki/Main"))
}

func TestCanFetch_ConcurrentReadsOfOneSnapshot(t *testing.T) {
	p := ParseString("User-agent: *\nDisallow: /a\nAllow: /b\n")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.False(t, p.CanFetch("bot", "/a/x"))
				assert.True(t, p.CanFetch("bot", "/b/x"))
			}
		}()
	}
	wg.Wait()
}
