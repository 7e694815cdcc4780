package delim

import (
	"github.com/go-logr/logr"
)

// DefaultDelimiter is the NUL byte.
const DefaultDelimiter byte = 0x00

// Options configures tokenizer behavior.
type Options struct {
	// Delimiter is the sentinel byte that separates tokens.
	// Default: 0x00
	Delimiter byte

	// MaxTokenSize is the maximum allowed size of a single token in bytes.
	// It also bounds the tokenizer's buffer to roughly MaxTokenSize plus one chunk.
	// 0 means no limit.
	// Default: 0
	MaxTokenSize int

	// Logger receives trace events (refills, exhaustion, final flush) at V(1).
	// Default: logr.Discard()
	Logger logr.Logger
}

// DefaultOptions returns the default tokenizer configuration.
func DefaultOptions() Options {
	return Options{
		Delimiter:    DefaultDelimiter,
		MaxTokenSize: 0,
		Logger:       logr.Discard(),
	}
}
