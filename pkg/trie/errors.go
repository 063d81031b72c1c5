package trie

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptData is returned by Load when the model blob is truncated,
	// malformed, or carries an unsupported format version.
	ErrCorruptData = errors.New("corrupt model data")

	// ErrInvalidConfig is returned by New when a configuration scalar is
	// out of range.
	ErrInvalidConfig = errors.New("invalid trie configuration")
)

func errCorruptf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptData, fmt.Sprintf(format, args...))
}

func errInvalidConfigf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
