// Package delim splits byte streams into tokens separated by a single
// delimiter byte.
//
// The main entry point is Tokenizer, which reads its input incrementally
// from a Source and needs only enough memory for the longest token plus one
// chunk. Inputs that are already in memory can use Split or Tokens, and
// text inputs can be parsed into Shape's unified AST with Parse.
//
// # Token rule
//
// A token is the run of bytes before the next delimiter; the delimiter is
// not part of it. Adjacent delimiters produce empty tokens. Bytes after the
// last delimiter form one final token. A stream that ends on a delimiter
// has no trailing empty token. With delimiter 0x00:
//
//	[]                 -> no tokens
//	[00]               -> [ [] ]
//	[01 02 00 03]      -> [ [01 02] [03] ]
//	[00 00]            -> [ [] [] ]
//
// The token sequence does not depend on how the stream is cut into chunks.
//
// # Thread Safety
//
// A Tokenizer must be used by one goroutine at a time. The package-level
// functions keep no shared mutable state and are safe for concurrent use.
//
// # Example usage with a Tokenizer:
//
//	file, err := os.Open("stream.bin")
//	if err != nil {
//	    // handle error
//	}
//	defer file.Close()
//
//	tok := delim.NewTokenizer(delim.NewReaderSource(file, 4096))
//	for token, err := range tok.All() {
//	    if err != nil {
//	        // handle error
//	    }
//	    fmt.Printf("%x\n", token)
//	}
//
// # Example usage with Parse:
//
//	node, err := delim.Parse("alpha\x00beta\x00")
//	// node is a *delim.SequenceNode of *ast.LiteralNode strings
package delim

import (
	"io"
	"iter"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-delim/internal/mmap"
	"github.com/shapestone/shape-delim/internal/parser"
	"github.com/shapestone/shape-delim/internal/scan"
)

// SequenceNode is the AST node returned by Parse: an ordered list with one
// *ast.LiteralNode string per token.
type SequenceNode = parser.SequenceNode

// Split splits data, which is already complete, into tokens.
//
// The tokens alias data; copy them if data will be modified.
//
// Example:
//
//	tokens := delim.Split([]byte("a\x00b\x00c"), 0x00)
//	// tokens: "a", "b", "c"
func Split(data []byte, delim byte) [][]byte {
	return scan.Split(data, delim)
}

// Tokens returns an iterator over the tokens of data, which is already
// complete. Yielded tokens alias data.
func Tokens(data []byte, delim byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for {
			res := scan.Step(data, 0, delim)
			if res.Outcome == scan.Incomplete {
				res = scan.Flush(data)
			}
			if res.Outcome == scan.Exhausted {
				return
			}
			if !yield(res.Token) {
				return
			}
			data = data[res.Advance:]
		}
	}
}

// SplitFile memory-maps a file and splits it into tokens.
// Returns the tokens and a cleanup function that must be called to unmap
// the file.
//
// IMPORTANT: The tokens alias the mapping. Do not use them after calling cleanup().
//
// Example:
//
//	tokens, cleanup, err := delim.SplitFile("stream.bin", 0x00)
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
func SplitFile(filename string, delim byte) ([][]byte, func(), error) {
	data, cleanup, err := mmap.Map(filename)
	if err != nil {
		return nil, nil, err
	}
	return scan.Split(data, delim), cleanup, nil
}

// Parse parses delimited text into an AST using the NUL delimiter.
//
// Returns a *SequenceNode with one *ast.LiteralNode string per token.
// The tokens are the same as those produced by Split. Input is decoded as
// UTF-8; use a Tokenizer for arbitrary binary data.
//
// For parsing large inputs or streaming data, use ParseReader instead.
func Parse(input string) (ast.SchemaNode, error) {
	return ParseWithOptions(input, DefaultOptions())
}

// ParseWithOptions parses delimited text into an AST with custom options.
// Only Delimiter and MaxTokenSize apply. The delimiter must be ASCII.
//
// Example:
//
//	opts := delim.DefaultOptions()
//	opts.Delimiter = '\n'
//	node, err := delim.ParseWithOptions("one\ntwo\n", opts)
func ParseWithOptions(input string, opts Options) (ast.SchemaNode, error) {
	p := parser.NewParserWithOptions(input, parserOptions(opts))
	return p.Parse()
}

// ParseReader parses delimited text from an io.Reader into an AST using the
// NUL delimiter. The reader is consumed through a buffered stream.
func ParseReader(reader io.Reader) (ast.SchemaNode, error) {
	return ParseReaderWithOptions(reader, DefaultOptions())
}

// ParseReaderWithOptions parses delimited text from an io.Reader into an AST
// with custom options.
func ParseReaderWithOptions(reader io.Reader, opts Options) (ast.SchemaNode, error) {
	stream := tokenizer.NewStreamFromReader(reader)
	p := parser.NewParserFromStreamWithOptions(stream, parserOptions(opts))
	return p.Parse()
}

// Format returns the format identifier for this parser.
func Format() string {
	return "DELIMITED"
}

func parserOptions(opts Options) parser.Options {
	return parser.Options{
		Delimiter:    opts.Delimiter,
		MaxTokenSize: opts.MaxTokenSize,
	}
}
