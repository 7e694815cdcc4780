package delim

import (
	"errors"
	"fmt"

	"github.com/shapestone/shape-delim/internal/parser"
)

// SourceError reports that the chunk source failed to deliver data.
// It is distinct from the end of the token sequence, which is reported as
// io.EOF itself. Compare with == to detect the end; Err may wrap io.EOF when
// the source failed mid-stream.
type SourceError struct {
	// Offset is the stream offset at which the failed fetch would have started.
	Offset int64
	// Err is the error returned by the source.
	Err error
}

// Error returns a formatted error message with the stream offset.
func (e *SourceError) Error() string {
	return fmt.Sprintf("chunk source failed at offset %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// TokenError reports a token that could not be emitted.
type TokenError struct {
	// Offset is the stream offset of the first byte of the token.
	Offset int64
	// Size is the number of bytes buffered for the token when it was rejected.
	Size int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *TokenError) Error() string {
	return fmt.Sprintf("token at offset %d (%d bytes): %v", e.Offset, e.Size, e.Err)
}

// Unwrap returns the underlying error.
func (e *TokenError) Unwrap() error {
	return e.Err
}

// Common tokenizer errors
var (
	// ErrTokenTooLarge indicates a token exceeded Options.MaxTokenSize.
	// Tokenizer and Parse report the same sentinel.
	ErrTokenTooLarge = parser.ErrTokenTooLarge

	// ErrUnsupportedDelimiter indicates a non-ASCII delimiter passed to Parse.
	ErrUnsupportedDelimiter = parser.ErrUnsupportedDelimiter

	// ErrMalformedState indicates a broken internal invariant. It is only
	// ever raised as a panic value and signals a bug, not bad input.
	ErrMalformedState = errors.New("tokenizer state is malformed")
)
