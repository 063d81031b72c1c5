// Package model builds the autocomplete trie from a normalized sentence
// corpus. It owns the substring-extraction policy: besides the full
// sentence, every proper word-prefix with at least min_words_partial words
// is indexed so sufficiently long partial phrases can be suggested too.
package model

import (
	"strings"

	"github.com/bastiangx/replyserve/pkg/trie"
	"github.com/charmbracelet/log"
)

// Builder drives trie insertion over a sentence corpus.
type Builder struct {
	trie      *trie.Trie
	sentences int
}

// NewBuilder creates a builder with a fresh trie. The scalars are validated
// by trie.New and frozen for the life of the model.
func NewBuilder(maxSuggestions, minWordsPartial int) (*Builder, error) {
	t, err := trie.New(maxSuggestions, minWordsPartial)
	if err != nil {
		return nil, err
	}
	return &Builder{trie: t}, nil
}

// Add indexes one normalized sentence: its qualifying proper word-prefixes
// first, then the sentence itself. Every insertion attributes its occurrence
// to the full sentence, so the count of each indexed prefix equals the
// number of times the sentence was observed. Blank input is ignored.
func (b *Builder) Add(sentence string) {
	words := strings.Fields(sentence)
	if len(words) == 0 {
		return
	}
	sentence = strings.Join(words, " ")
	for n := b.trie.MinWordsPartial(); n < len(words); n++ {
		b.trie.Insert(strings.Join(words[:n], " "), sentence)
	}
	b.trie.Insert(sentence, sentence)
	b.sentences++
}

// AddAll indexes the corpus in order.
func (b *Builder) AddAll(sentences []string) {
	for _, s := range sentences {
		b.Add(s)
	}
	log.Debugf("Indexed %d sentences into %d trie nodes", b.sentences, b.trie.NodeCount())
}

// Sentences returns how many non-blank sentences were indexed.
func (b *Builder) Sentences() int { return b.sentences }

// Trie returns the built trie. The build phase is over once the caller
// starts querying or saving it.
func (b *Builder) Trie() *trie.Trie { return b.trie }

// Build constructs a finished trie from sentences in one call.
func Build(sentences []string, maxSuggestions, minWordsPartial int) (*trie.Trie, error) {
	b, err := NewBuilder(maxSuggestions, minWordsPartial)
	if err != nil {
		return nil, err
	}
	b.AddAll(sentences)
	return b.Trie(), nil
}
