//go:build go1.18
// +build go1.18

package parser

import (
	"testing"
)

// FuzzParser tests the parser with random inputs to find edge cases and panics.
// Run with: go test -fuzz=FuzzParser -fuzztime=30s ./internal/parser
func FuzzParser(f *testing.F) {
	seeds := []string{
		"",
		"a",
		"\x00",
		"\x00\x00",
		"a\x00b",
		"a\x00b\x00",
		"\x01\x02\x00\x03",
		"text with spaces\x00and\nnewlines",
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		// The parser should never panic, regardless of input
		p := NewParser(input)
		_, _ = p.Parse()
	})
}
