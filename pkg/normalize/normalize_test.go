package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "What Is Your Name", "what is your name"},
		{"strips punctuation", "sorry, about that!", "sorry about that"},
		{"expands contraction", "don't worry", "do not worry"},
		{"expands contraction with trailing punctuation", "I can't, sorry", "i cannot sorry"},
		{"numeric token substitution", "your order 4521 shipped", "your order NUM shipped"},
		{"mixed alnum token kept", "use code a1b2", "use code a1b2"},
		{"one moment exception", "1 moment please", "one moment please"},
		{"one moment untouched elsewhere", "1 package and 2 moments", "NUM package and NUM moments"},
		{"collapses whitespace", "  please   hold  ", "please hold"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sentence(tc.in))
		})
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("Thanks for calling. How can I help you today? Goodbye!")
	assert.Equal(t, []string{
		"Thanks for calling",
		" How can I help you today",
		" Goodbye",
	}, got)

	assert.Equal(t, []string{"no terminal punctuation"}, SplitSentences("no terminal punctuation"))
	assert.Empty(t, SplitSentences(""))
}

func TestResponses(t *testing.T) {
	raw := []string{
		"I'm sorry to hear that. What is your order number?",
		"!!",
		"One moment please.",
	}
	got := Responses(raw)
	assert.Equal(t, []string{
		"i am sorry to hear that",
		"what is your order number",
		"one moment please",
	}, got)
}
