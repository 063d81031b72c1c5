package trie_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/replyserve/pkg/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleTrie(t *testing.T) *trie.Trie {
	t.Helper()
	tr, err := trie.New(3, 4)
	require.NoError(t, err)

	corpus := map[string]int{
		"what is your account number": 2,
		"what is your order number":   1,
		"thank you for calling":       3,
		"one moment please":           1,
	}
	for sentence, occurrences := range corpus {
		for i := 0; i < occurrences; i++ {
			indexSentence(tr, sentence, tr.MinWordsPartial())
		}
	}
	return tr
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tr := buildSampleTrie(t)
	path := filepath.Join(t.TempDir(), "model.rstm")

	require.NoError(t, trie.Save(tr, path))
	loaded, err := trie.Load(path)
	require.NoError(t, err)

	assert.Equal(t, tr.MaxSuggestions(), loaded.MaxSuggestions())
	assert.Equal(t, tr.MinWordsPartial(), loaded.MinWordsPartial())
	assert.Equal(t, tr.NodeCount(), loaded.NodeCount())

	prefixes := []string{
		"", "w", "what", "what is y", "what is your account",
		"thank", "thank you for c", "one", "xyz", "z",
	}
	for _, prefix := range prefixes {
		assert.Equal(t, tr.Suggestions(prefix), loaded.Suggestions(prefix), "prefix %q", prefix)
	}
}

func TestSaveOverwritesExistingModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.rstm")

	first, err := trie.New(1, 1)
	require.NoError(t, err)
	first.Insert("old phrase", "old phrase")
	require.NoError(t, trie.Save(first, path))

	second := buildSampleTrie(t)
	require.NoError(t, trie.Save(second, path))

	loaded, err := trie.Load(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.Completions("old"))
	assert.NotEmpty(t, loaded.Completions("what"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := trie.Load(filepath.Join(t.TempDir(), "nope.rstm"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, trie.ErrCorruptData)
}

func TestLoadCorruptData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.rstm")
	require.NoError(t, trie.Save(buildSampleTrie(t), path))
	valid, err := os.ReadFile(path)
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"empty file", func(b []byte) []byte { return nil }},
		{"shorter than header", func(b []byte) []byte { return b[:5] }},
		{"truncated payload", func(b []byte) []byte { return b[:len(b)-7] }},
		{"bad magic", func(b []byte) []byte { b[0] = 'X'; return b }},
		{"unsupported version", func(b []byte) []byte { b[4] = 99; return b }},
		{"length mismatch", func(b []byte) []byte { b[5]++; return b }},
		{"garbage payload", func(b []byte) []byte {
			for i := 9; i < len(b); i++ {
				b[i] = 0xFF
			}
			return b
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mutated := tc.mutate(append([]byte(nil), valid...))
			target := filepath.Join(dir, "corrupt.rstm")
			require.NoError(t, os.WriteFile(target, mutated, 0644))

			_, err := trie.Load(target)
			require.ErrorIs(t, err, trie.ErrCorruptData)
		})
	}
}
