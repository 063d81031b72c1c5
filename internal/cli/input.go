// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/replyserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler processes prefixes typed on stdin and prints ranked
// completions with their corpus counts.
type InputHandler struct {
	completer       *suggest.Completer
	maxPrefixLength int
	suggestLimit    int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters.
func NewInputHandler(completer *suggest.Completer, maxLength, limit int) *InputHandler {
	return &InputHandler{
		completer:       completer,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin.
func (h *InputHandler) Start() error {
	log.Print("ReplyServe CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a partial phrase and press Enter to see the completions (Ctrl+C to exit):")

	for {
		log.Print("> ")
		prefix, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		prefix = strings.TrimRight(prefix, "\r\n")
		if strings.TrimSpace(prefix) == "" {
			continue
		}
		h.handleInput(prefix)
	}
}

// handleInput processes a single prefix: validates its length, asks the
// completer, and prints the formatted results.
func (h *InputHandler) handleInput(prefix string) {
	if len(prefix) > h.maxPrefixLength {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}

	start := time.Now()
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	elapsed := time.Since(start)

	log.Debugf("Took [ %v ] for prefix '%s'", elapsed, prefix)

	if len(suggestions) == 0 {
		log.Warnf("No completions found for prefix: '%s'", prefix)
		return
	}

	log.Printf("Found %d completions for prefix '%s':", len(suggestions), prefix)
	for i, s := range suggestions {
		clPhrase := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Phrase)
		log.Printf("%2d. %-60s (seen: %d)", i+1, clPhrase, s.Count)
	}
}
