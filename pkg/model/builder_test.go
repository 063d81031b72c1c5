package model

import (
	"testing"

	"github.com/bastiangx/replyserve/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestNewBuilderValidation(t *testing.T) {
	_, err := NewBuilder(0, 4)
	require.ErrorIs(t, err, trie.ErrInvalidConfig)

	_, err = NewBuilder(3, 0)
	require.ErrorIs(t, err, trie.ErrInvalidConfig)

	b, err := NewBuilder(3, 4)
	require.NoError(t, err)
	assert.Zero(t, b.Sentences())
}

func TestBuildSpecExample(t *testing.T) {
	corpus := []string{
		"what is your account number",
		"what is your order number",
		"what is your new address",
	}
	tr, err := Build(corpus, 3, 4)
	require.NoError(t, err)

	got := tr.Completions("what is y")
	assert.ElementsMatch(t, corpus, got)
	assert.Empty(t, tr.Completions("xyz"))
}

func TestSubstringPolicyBounds(t *testing.T) {
	b, err := NewBuilder(5, 4)
	require.NoError(t, err)
	b.Add("what is your account number")

	// Proper word-prefixes with >= 4 words are indexed; querying exactly at
	// the 4-word partial resolves to the full sentence.
	got := b.Trie().Suggestions("what is your account")
	require.Len(t, got, 1)
	assert.Equal(t, "what is your account number", got[0].Phrase)
	assert.Equal(t, 1, got[0].Count)
}

func TestShortSentenceContributesNoPartials(t *testing.T) {
	b, err := NewBuilder(5, 4)
	require.NoError(t, err)
	b.Add("hello there")

	// Two words with min_words_partial=4: only the full-sentence entry
	// exists, so the node count is exactly one node per character plus the
	// root.
	assert.Equal(t, len("hello there")+1, b.Trie().NodeCount())
	assert.Equal(t, []string{"hello there"}, b.Trie().Completions("hel"))
	assert.Equal(t, 1, b.Sentences())
}

func TestDuplicateSentencesMergeCounts(t *testing.T) {
	corpus := []string{
		"thank you for calling",
		"thank you for calling",
		"thank you for calling",
		"thank you for waiting",
	}
	tr, err := Build(corpus, 3, 3)
	require.NoError(t, err)

	got := tr.Suggestions("thank you f")
	require.Len(t, got, 2)
	assert.Equal(t, trie.Suggestion{Phrase: "thank you for calling", Count: 3}, got[0])
	assert.Equal(t, trie.Suggestion{Phrase: "thank you for waiting", Count: 1}, got[1])
}

func TestAddIgnoresBlankAndCollapsesWhitespace(t *testing.T) {
	b, err := NewBuilder(3, 1)
	require.NoError(t, err)

	b.Add("")
	b.Add("   ")
	assert.Zero(t, b.Sentences())

	b.Add("  let me   check  ")
	assert.Equal(t, 1, b.Sentences())
	assert.Equal(t, []string{"let me check"}, b.Trie().Completions("let"))
}
