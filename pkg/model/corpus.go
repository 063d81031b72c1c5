package model

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
)

// ExtractResponses pulls agent-side message text out of a conversations
// JSON document shaped as Issues[].Messages[], where each message carries
// IsFromCustomer and Text fields. Customer messages and blank texts are
// skipped. Order is preserved.
func ExtractResponses(data []byte) []string {
	var responses []string
	gjson.GetBytes(data, "Issues").ForEach(func(_, issue gjson.Result) bool {
		issue.Get("Messages").ForEach(func(_, msg gjson.Result) bool {
			if msg.Get("IsFromCustomer").Bool() {
				return true
			}
			text := strings.TrimSpace(msg.Get("Text").String())
			if text != "" {
				responses = append(responses, text)
			}
			return true
		})
		return true
	})
	return responses
}

// LoadCorpus reads a conversations JSON file and returns the raw agent
// responses. Normalization is the caller's step.
func LoadCorpus(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("corpus file %s is not valid JSON", path)
	}
	responses := ExtractResponses(data)
	log.Debugf("Extracted %d agent responses from %s", len(responses), path)
	return responses, nil
}
