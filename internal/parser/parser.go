// Package parser implements LL(1) recursive descent parsing for delimited text.
// Each production rule in the grammar corresponds to a parse function.
//
// Grammar:
//
//	Stream    = { Token Delimiter } [ Token ] ;
//	Token     = [ Field ] ;
//	Field     = Character+ ;
//	Character = <any character except the delimiter> ;
//
// A stream that ends on a delimiter has no trailing empty token.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-delim/internal/tokenizer"
)

// Errors returned by the parser.
var (
	// ErrTokenTooLarge indicates a token exceeded MaxTokenSize.
	ErrTokenTooLarge = errors.New("token exceeds maximum size")

	// ErrUnsupportedDelimiter indicates a delimiter the text stream cannot represent.
	ErrUnsupportedDelimiter = errors.New("delimiter must be an ASCII byte for text parsing")
)

// Options configures the parser behavior.
type Options struct {
	// Delimiter is the sentinel byte. Default: 0x00
	Delimiter byte
	// MaxTokenSize is the maximum allowed size for a single token in bytes. 0 means no limit.
	MaxTokenSize int
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{
		Delimiter:    0x00,
		MaxTokenSize: 0,
	}
}

// Parser implements LL(1) recursive descent parsing for delimited text.
// It maintains a single token lookahead for predictive parsing.
type Parser struct {
	tokenizer *tokenizer.Tokenizer
	current   *tokenizer.Token
	hasToken  bool
	opts      Options
}

// NewParser creates a new parser for the given input string.
// For parsing from io.Reader, use NewParserFromStream instead.
func NewParser(input string) *Parser {
	return NewParserWithOptions(input, DefaultOptions())
}

// NewParserWithOptions creates a new parser with custom options.
func NewParserWithOptions(input string, opts Options) *Parser {
	return newParserWithStreamAndOptions(shapetokenizer.NewStream(input), opts)
}

// NewParserFromStream creates a new parser using a pre-configured stream.
// This allows parsing from io.Reader using tokenizer.NewStreamFromReader.
func NewParserFromStream(stream shapetokenizer.Stream) *Parser {
	return NewParserFromStreamWithOptions(stream, DefaultOptions())
}

// NewParserFromStreamWithOptions creates a new parser from a stream with custom options.
func NewParserFromStreamWithOptions(stream shapetokenizer.Stream, opts Options) *Parser {
	return newParserWithStreamAndOptions(stream, opts)
}

func newParserWithStreamAndOptions(stream shapetokenizer.Stream, opts Options) *Parser {
	tok := tokenizer.NewTokenizerWithStreamAndOptions(stream, tokenizer.Options{
		Delimiter: opts.Delimiter,
	})

	p := &Parser{
		tokenizer: &tok,
		opts:      opts,
	}
	p.advance() // Load first token
	return p
}

// Parse parses the input and returns an AST representing the token stream.
//
// Grammar:
//
//	Stream = { Token Delimiter } [ Token ] ;
//
// Returns a *SequenceNode with one *ast.LiteralNode string per token.
func (p *Parser) Parse() (ast.SchemaNode, error) {
	if p.opts.Delimiter >= 0x80 {
		return nil, fmt.Errorf("%w: got %#x", ErrUnsupportedDelimiter, p.opts.Delimiter)
	}

	tokens := make([]ast.SchemaNode, 0, 16)
	for p.hasToken {
		node, err := p.parseToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, node)
	}

	return NewSequenceNode(tokens, ast.ZeroPosition()), nil
}

// parseToken parses one token and the delimiter that terminates it.
//
// Grammar:
//
//	Token = [ Field ] ( Delimiter | EOF ) ;
//
// Every call consumes at least one lexer token, so Parse always progresses.
func (p *Parser) parseToken() (*ast.LiteralNode, error) {
	startPos := p.position()

	var value strings.Builder
	for p.hasToken && p.peek().Kind() == tokenizer.TokenField {
		value.WriteString(p.peek().ValueString())
		if p.opts.MaxTokenSize > 0 && value.Len() > p.opts.MaxTokenSize {
			return nil, fmt.Errorf("token at %s: %w (%d > %d)",
				startPos.String(), ErrTokenTooLarge, value.Len(), p.opts.MaxTokenSize)
		}
		p.advance()
	}

	// EOF is also a valid terminator (no need to advance)
	if p.hasToken {
		if err := p.expect(tokenizer.TokenDelimiter); err != nil {
			return nil, err
		}
	}

	return ast.NewLiteralNode(value.String(), startPos), nil
}

// peek returns current token without advancing.
func (p *Parser) peek() *tokenizer.Token {
	return p.current
}

// advance moves to next token.
func (p *Parser) advance() {
	token, ok := p.tokenizer.NextToken()
	if ok {
		p.current = token
		p.hasToken = true
	} else {
		p.hasToken = false
		p.current = nil
	}
}

// expect consumes token of expected kind or returns error.
func (p *Parser) expect(kind string) error {
	if p.peek() == nil || p.peek().Kind() != kind {
		got := tokenizer.TokenEOF
		if p.peek() != nil {
			got = p.peek().Kind()
		}
		return fmt.Errorf("expected %s at %s, got %s", kind, p.positionStr(), got)
	}
	p.advance()
	return nil
}

// position returns current position for AST nodes.
func (p *Parser) position() ast.Position {
	if p.hasToken && p.current != nil {
		pos := p.current.Position
		return ast.NewPosition(pos.Offset, pos.Line, pos.Column)
	}
	return ast.ZeroPosition()
}

// positionStr returns current position as a string for error messages.
func (p *Parser) positionStr() string {
	return p.position().String()
}
