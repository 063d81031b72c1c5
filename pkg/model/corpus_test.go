package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConversations = `{
  "Issues": [
    {
      "IssueId": 1,
      "Messages": [
        {"IsFromCustomer": true, "Text": "my order never arrived"},
        {"IsFromCustomer": false, "Text": "I am sorry to hear that. What is your order number?"},
        {"IsFromCustomer": true, "Text": "12345"},
        {"IsFromCustomer": false, "Text": "One moment please."}
      ]
    },
    {
      "IssueId": 2,
      "Messages": [
        {"IsFromCustomer": false, "Text": "   Thank you for calling.   "},
        {"IsFromCustomer": false, "Text": ""},
        {"IsFromCustomer": true, "Text": "hi"}
      ]
    }
  ]
}`

func TestExtractResponses(t *testing.T) {
	got := ExtractResponses([]byte(sampleConversations))
	want := []string{
		"I am sorry to hear that. What is your order number?",
		"One moment please.",
		"Thank you for calling.",
	}
	assert.Equal(t, want, got)
}

func TestExtractResponsesEmptyDocument(t *testing.T) {
	assert.Empty(t, ExtractResponses([]byte(`{}`)))
	assert.Empty(t, ExtractResponses([]byte(`{"Issues": []}`)))
}

func TestLoadCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleConversations), 0644))

	responses, err := LoadCorpus(path)
	require.NoError(t, err)
	assert.Len(t, responses, 3)
}

func TestLoadCorpusErrors(t *testing.T) {
	_, err := LoadCorpus(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Issues": [`), 0644))
	_, err = LoadCorpus(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}
