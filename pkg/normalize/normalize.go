// Package normalize prepares raw agent response text for indexing. The trie
// consumes its output and nothing else: lowercased sentences with
// punctuation stripped, contractions expanded, and numeric tokens replaced
// by a placeholder so "your order number is 4521" and "your order number is
// 983" index as the same phrase.
package normalize

import (
	"strings"
	"unicode"
)

// NumToken replaces numeric tokens so phrases differing only in digits
// collapse into one completion.
const NumToken = "NUM"

var contractions = map[string]string{
	"don't":     "do not",
	"doesn't":   "does not",
	"didn't":    "did not",
	"can't":     "cannot",
	"won't":     "will not",
	"isn't":     "is not",
	"aren't":    "are not",
	"wasn't":    "was not",
	"weren't":   "were not",
	"haven't":   "have not",
	"hasn't":    "has not",
	"hadn't":    "had not",
	"couldn't":  "could not",
	"wouldn't":  "would not",
	"shouldn't": "should not",
	"i'm":       "i am",
	"i've":      "i have",
	"i'll":      "i will",
	"i'd":       "i would",
	"you're":    "you are",
	"you've":    "you have",
	"you'll":    "you will",
	"we're":     "we are",
	"we've":     "we have",
	"we'll":     "we will",
	"they're":   "they are",
	"they've":   "they have",
	"it's":      "it is",
	"that's":    "that is",
	"there's":   "there is",
	"what's":    "what is",
	"let's":     "let us",
}

// Sentence normalizes a single sentence: lowercase, contraction expansion,
// punctuation stripping, digit-token substitution, whitespace collapse.
// "one moment" keeps its literal "one"; it is too common a customer-service
// phrase to surface as "NUM moment".
func Sentence(s string) string {
	tokens := strings.Fields(strings.ToLower(s))

	var expanded []string
	for _, tok := range tokens {
		if replacement, ok := contractions[strings.Trim(tok, ".,!?;:")]; ok {
			expanded = append(expanded, strings.Fields(replacement)...)
			continue
		}
		expanded = append(expanded, tok)
	}

	var out []string
	for _, tok := range expanded {
		tok = stripPunct(tok)
		if tok == "" {
			continue
		}
		if isNumeric(tok) {
			out = append(out, NumToken)
			continue
		}
		out = append(out, tok)
	}
	for i := 0; i < len(out)-1; i++ {
		if out[i] == NumToken && out[i+1] == "moment" {
			out[i] = "one"
		}
	}
	return strings.Join(out, " ")
}

// Responses normalizes a batch of raw agent responses. Each response may
// span several sentences; they are split and normalized independently.
// Results shorter than two characters carry no signal and are dropped.
func Responses(raw []string) []string {
	var sentences []string
	for _, response := range raw {
		for _, sent := range SplitSentences(response) {
			normalized := Sentence(sent)
			if len(normalized) <= 1 {
				continue
			}
			sentences = append(sentences, normalized)
		}
	}
	return sentences
}

// SplitSentences splits a response on terminal punctuation.
func SplitSentences(s string) []string {
	var sentences []string
	var cur strings.Builder
	for _, r := range s {
		if r == '.' || r == '!' || r == '?' {
			if cur.Len() > 0 {
				sentences = append(sentences, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		sentences = append(sentences, cur.String())
	}
	return sentences
}

func stripPunct(tok string) string {
	var b strings.Builder
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isNumeric(tok string) bool {
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(tok) > 0
}
