// Package suggest is the serving wrapper over a loaded trie: read-only
// completion lookups with a bounded hot cache of recently queried prefixes.
package suggest

import (
	"strings"

	"github.com/bastiangx/replyserve/pkg/trie"
	"github.com/charmbracelet/log"
)

// Completer answers prefix queries against an immutable trie. Safe for
// concurrent use; the trie never changes after construction and the cache
// does its own locking.
type Completer struct {
	trie  *trie.Trie
	cache *QueryCache
}

// NewCompleter wraps a finished trie with a default-sized query cache.
func NewCompleter(t *trie.Trie) *Completer {
	return &Completer{
		trie:  t,
		cache: NewQueryCache(defaultCacheEntries),
	}
}

// Complete returns ranked suggestions for prefix, at most limit of them.
// limit values below 1 or above the trie's max_suggestions clamp to
// max_suggestions. Prefixes are matched lowercase, the same casing the
// corpus was indexed under.
func (c *Completer) Complete(prefix string, limit int) []trie.Suggestion {
	if limit < 1 || limit > c.trie.MaxSuggestions() {
		limit = c.trie.MaxSuggestions()
	}
	lowerPrefix := strings.ToLower(prefix)

	suggestions, ok := c.cache.Get(lowerPrefix)
	if !ok {
		suggestions = c.trie.Suggestions(lowerPrefix)
		c.cache.Put(lowerPrefix, suggestions)
	} else {
		log.Debugf("Cache hit for prefix %q", lowerPrefix)
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// Phrases is Complete reduced to the suggestion strings.
func (c *Completer) Phrases(prefix string, limit int) []string {
	suggestions := c.Complete(prefix, limit)
	phrases := make([]string, len(suggestions))
	for i, s := range suggestions {
		phrases[i] = s.Phrase
	}
	return phrases
}

// Stats reports completer and cache counters for debugging.
func (c *Completer) Stats() map[string]int {
	stats := map[string]int{
		"trieNodes":      c.trie.NodeCount(),
		"maxSuggestions": c.trie.MaxSuggestions(),
	}
	for k, v := range c.cache.Stats() {
		stats[k] = v
	}
	return stats
}
