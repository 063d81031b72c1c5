// Package trie implements the autocomplete prefix tree used as the data
// model for agent response completion.
//
// The trie is built once, offline, from a normalized sentence corpus and is
// immutable afterwards. Each node holds a local map of full sentences whose
// indexed path ends at that node, together with how often the sentence was
// observed in the corpus. Retrieval walks the query prefix and gathers every
// completion recorded in the reachable subtree, so any number of concurrent
// readers can query a loaded trie without locking.
package trie

import (
	"sort"
	"strings"
)

// Suggestion is a ranked completion candidate for a query prefix.
type Suggestion struct {
	Phrase string
	Count  int
}

type node struct {
	children    map[rune]*node
	terminal    bool
	completions map[string]int
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// Trie is the prefix tree. The two configuration scalars are fixed at
// construction and survive a save/load round-trip.
type Trie struct {
	root            *node
	maxSuggestions  int
	minWordsPartial int
	nodeCount       int
}

// New creates an empty trie. Both scalars must be at least 1.
func New(maxSuggestions, minWordsPartial int) (*Trie, error) {
	if maxSuggestions < 1 {
		return nil, errInvalidConfigf("max_suggestions must be >= 1, got %d", maxSuggestions)
	}
	if minWordsPartial < 1 {
		return nil, errInvalidConfigf("min_words_partial must be >= 1, got %d", minWordsPartial)
	}
	return &Trie{
		root:            newNode(),
		maxSuggestions:  maxSuggestions,
		minWordsPartial: minWordsPartial,
		nodeCount:       1,
	}, nil
}

// MaxSuggestions returns the cap on completions returned per query.
func (t *Trie) MaxSuggestions() int { return t.maxSuggestions }

// MinWordsPartial returns the minimum word count for indexed partials.
func (t *Trie) MinWordsPartial() int { return t.minWordsPartial }

// NodeCount returns the number of allocated nodes, root included.
func (t *Trie) NodeCount() int { return t.nodeCount }

// Insert indexes phrase, attributing the occurrence to sentence. phrase is
// either the sentence itself or one of its word-prefixes; the model builder
// decides which prefixes qualify. Repeated insertion of the same phrase only
// increments the occurrence count.
//
// Insert is not safe for concurrent use. The build phase is strictly
// sequential over the corpus.
func (t *Trie) Insert(phrase, sentence string) {
	cur := t.root
	for _, r := range phrase {
		next, ok := cur.children[r]
		if !ok {
			next = newNode()
			cur.children[r] = next
			t.nodeCount++
		}
		cur = next
	}
	if cur.completions == nil {
		cur.completions = make(map[string]int)
	}
	cur.completions[sentence]++
	if phrase == sentence {
		cur.terminal = true
	}
}

// Completions returns the ranked suggestion phrases for prefix, at most
// MaxSuggestions of them. An unindexed prefix yields an empty slice; that is
// the "no suggestions" case, not an error.
func (t *Trie) Completions(prefix string) []string {
	ranked := t.Suggestions(prefix)
	phrases := make([]string, len(ranked))
	for i, s := range ranked {
		phrases[i] = s.Phrase
	}
	return phrases
}

// Suggestions is Completions with the occurrence counts kept, for callers
// that display or rank on frequency.
func (t *Trie) Suggestions(prefix string) []Suggestion {
	cur := t.root
	for _, r := range prefix {
		next, ok := cur.children[r]
		if !ok {
			return []Suggestion{}
		}
		cur = next
	}
	return t.rank(gather(cur))
}

// gather accumulates the completion maps of every node in the subtree rooted
// at n. The same sentence appears at several nodes along its indexed
// prefixes with identical counts, so merging keeps the largest observed
// value rather than summing.
func gather(n *node) map[string]int {
	counts := make(map[string]int)
	stack := []*node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for phrase, count := range cur.completions {
			if count > counts[phrase] {
				counts[phrase] = count
			}
		}
		for _, child := range cur.children {
			stack = append(stack, child)
		}
	}
	return counts
}

// rank orders candidates by occurrence count descending. Ties break on
// phrase length ascending, then lexicographic order, so the result is total
// and deterministic.
func (t *Trie) rank(counts map[string]int) []Suggestion {
	ranked := make([]Suggestion, 0, len(counts))
	for phrase, count := range counts {
		ranked = append(ranked, Suggestion{Phrase: phrase, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		if len(ranked[i].Phrase) != len(ranked[j].Phrase) {
			return len(ranked[i].Phrase) < len(ranked[j].Phrase)
		}
		return strings.Compare(ranked[i].Phrase, ranked[j].Phrase) < 0
	})
	if len(ranked) > t.maxSuggestions {
		ranked = ranked[:t.maxSuggestions]
	}
	return ranked
}
