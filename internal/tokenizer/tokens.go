// Package tokenizer provides delimited-text tokenization using Shape's tokenizer framework.
package tokenizer

// Token type constants for delimited text.
//
// The tokenizer emits the delimiter and the runs of bytes between
// delimiters. The parser decides where tokens of the stream begin and end.
const (
	TokenDelimiter = "Delimiter" // the sentinel byte
	TokenField     = "Field"     // a non-empty run of non-delimiter bytes

	TokenEOF = "EOF" // End of input
)
