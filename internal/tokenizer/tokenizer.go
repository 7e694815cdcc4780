package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Options configures the tokenizer behavior.
type Options struct {
	// Delimiter is the sentinel byte. It must be ASCII (< 0x80) because the
	// shape-core stream decodes its input as UTF-8. Default: 0x00
	Delimiter byte
}

// DefaultOptions returns default tokenizer options.
func DefaultOptions() Options {
	return Options{
		Delimiter: 0x00,
	}
}

// Token is a shape-core token stamped with the stream position it starts at.
type Token struct {
	*tokenizer.Token
	Position tokenizer.Position
}

// Tokenizer applies delimited-text matchers to a shape-core stream.
//
// tokenizer.NewTokenizer always prepends a whitespace matcher, which would
// split fields and swallow whitespace delimiters, so matching is driven here
// with the same clone-match-advance loop and no implicit matchers.
type Tokenizer struct {
	matchers []tokenizer.Matcher
	stream   tokenizer.Stream
}

// NewTokenizer creates a tokenizer for NUL-delimited text.
func NewTokenizer() Tokenizer {
	return NewTokenizerWithOptions(DefaultOptions())
}

// NewTokenizerWithOptions creates a tokenizer with custom options.
//
// Matchers are tried in order:
// 1. The delimiter
// 2. Field content (everything up to the next delimiter)
func NewTokenizerWithOptions(opts Options) Tokenizer {
	return Tokenizer{
		matchers: []tokenizer.Matcher{
			tokenizer.CharMatcherFunc(TokenDelimiter, rune(opts.Delimiter)),
			FieldMatcher(opts.Delimiter),
		},
	}
}

// NewTokenizerWithStream creates a tokenizer over a pre-configured stream.
// This is used to tokenize an io.Reader through tokenizer.NewStreamFromReader.
func NewTokenizerWithStream(stream tokenizer.Stream) Tokenizer {
	return NewTokenizerWithStreamAndOptions(stream, DefaultOptions())
}

// NewTokenizerWithStreamAndOptions creates a tokenizer from a stream with custom options.
func NewTokenizerWithStreamAndOptions(stream tokenizer.Stream, opts Options) Tokenizer {
	tok := NewTokenizerWithOptions(opts)
	tok.InitializeFromStream(stream)
	return tok
}

// Initialize sets the input to an in-memory string.
func (t *Tokenizer) Initialize(input string) {
	t.stream = tokenizer.NewStream(input)
}

// InitializeFromStream sets the input to stream.
func (t *Tokenizer) InitializeFromStream(stream tokenizer.Stream) {
	t.stream = stream
}

// NextToken returns the first token any matcher produces at the current
// position and advances past it. It returns nil, false at the end of the
// stream or when no matcher applies.
func (t *Tokenizer) NextToken() (*Token, bool) {
	if t.stream == nil || t.stream.IsEos() {
		return nil, false
	}

	pos := tokenizer.NewPosition(t.stream.GetOffset(), t.stream.GetRow(), t.stream.GetColumn())
	for _, matcher := range t.matchers {
		token := matcher(t.stream.Clone())
		if token != nil && t.stream.MatchChars(token.Value()) {
			return &Token{Token: token, Position: pos}, true
		}
	}
	return nil, false
}

// FieldMatcher matches a run of characters that are not delim.
//
// Grammar:
//
//	Field = Character+ ;
//	Character = <any character except the delimiter> ;
//
// It never matches an empty run; an empty token is represented by the
// absence of a field between two delimiters.
func FieldMatcher(delim byte) tokenizer.Matcher {
	d := rune(delim)
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || r == d {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}

		if len(value) == 0 {
			return nil
		}
		return tokenizer.NewToken(TokenField, value)
	}
}
