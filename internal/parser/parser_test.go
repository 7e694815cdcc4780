package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
)

// literals extracts the string values of a parsed token array.
func literals(t *testing.T, node ast.SchemaNode) []string {
	t.Helper()

	arr, ok := node.(*SequenceNode)
	if !ok {
		t.Fatalf("expected *SequenceNode, got %T", node)
	}

	values := make([]string, 0, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		lit, ok := arr.Get(i).(*ast.LiteralNode)
		if !ok {
			t.Fatalf("token %d: expected *ast.LiteralNode, got %T", i, arr.Get(i))
		}
		str, ok := lit.Value().(string)
		if !ok {
			t.Fatalf("token %d: expected string value, got %T", i, lit.Value())
		}
		values = append(values, str)
	}
	return values
}

func assertValues(t *testing.T, got, want []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %d tokens %q, got %d %q", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

// TestParse_EmptyInput tests that empty input yields no tokens.
func TestParse_EmptyInput(t *testing.T) {
	node, err := NewParser("").Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	arr, ok := node.(*SequenceNode)
	if !ok {
		t.Fatalf("expected *SequenceNode, got %T", node)
	}
	if arr.Len() != 0 {
		t.Errorf("expected empty array, got %d tokens", arr.Len())
	}
}

// TestParse_Tokens tests the token sequence for the NUL delimiter.
// Grammar: Stream = { Token Delimiter } [ Token ]
func TestParse_Tokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single delimiter", "\x00", []string{""}},
		{"trailing partial token", "\x01\x02\x00\x03", []string{"\x01\x02", "\x03"}},
		{"adjacent delimiters", "\x00\x00", []string{"", ""}},
		{"ends on delimiter", "a\x00b\x00", []string{"a", "b"}},
		{"no delimiter", "hello", []string{"hello"}},
		{"empty token in middle", "a\x00\x00b", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := NewParser(tt.input).Parse()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertValues(t, literals(t, node), tt.want)
		})
	}
}

// TestParse_Positions tests that token literals carry their start position.
func TestParse_Positions(t *testing.T) {
	node, err := NewParserWithOptions("ab\ncd\n\nef", Options{Delimiter: '\n'}).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seq := node.(*SequenceNode)
	assertValues(t, literals(t, node), []string{"ab", "cd", "", "ef"})

	// The empty token starts at the delimiter that ends it.
	wantLines := []int{1, 2, 3, 4}
	for i, want := range wantLines {
		pos := seq.Get(i).Position()
		if pos.Line != want {
			t.Errorf("token %d: expected line %d, got %d", i, want, pos.Line)
		}
	}
}

// TestSequenceNode tests the sequence node accessors and visitor traversal.
func TestSequenceNode(t *testing.T) {
	node, err := NewParser("a\x00b").Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seq := node.(*SequenceNode)
	if seq.Type() != ast.NodeTypeArray {
		t.Errorf("expected %s, got %s", ast.NodeTypeArray, seq.Type())
	}
	if got := seq.String(); got != `["a", "b"]` {
		t.Errorf("unexpected String(): %s", got)
	}

	v := &literalCollector{}
	if err := ast.Walk(seq, v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, v.values, []string{"a", "b"})
}

type literalCollector struct {
	ast.BaseVisitor
	values []string
}

func (c *literalCollector) VisitLiteral(node *ast.LiteralNode) error {
	c.values = append(c.values, node.Value().(string))
	return nil
}

// TestParse_CustomDelimiter tests a printable delimiter.
func TestParse_CustomDelimiter(t *testing.T) {
	p := NewParserWithOptions("a|b||c\x00d|", Options{Delimiter: '|'})
	node, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, literals(t, node), []string{"a", "b", "", "c\x00d"})
}

// TestParse_FromStream tests parsing through a reader-backed stream.
func TestParse_FromStream(t *testing.T) {
	var sb strings.Builder
	want := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		tok := strings.Repeat("y", i)
		want = append(want, tok)
		sb.WriteString(tok)
		sb.WriteByte(0x00)
	}

	stream := shapetokenizer.NewStreamFromReader(strings.NewReader(sb.String()))
	node, err := NewParserFromStream(stream).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, literals(t, node), want)
}

// TestParse_MaxTokenSize tests the token size limit.
func TestParse_MaxTokenSize(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxTokenSize = 3

	if _, err := NewParserWithOptions("abc\x00de", opts).Parse(); err != nil {
		t.Fatalf("unexpected error at the limit: %v", err)
	}

	_, err := NewParserWithOptions("abc\x00defg", opts).Parse()
	if !errors.Is(err, ErrTokenTooLarge) {
		t.Fatalf("expected ErrTokenTooLarge, got %v", err)
	}
}

// TestParse_UnsupportedDelimiter tests that non-ASCII delimiters are rejected.
func TestParse_UnsupportedDelimiter(t *testing.T) {
	_, err := NewParserWithOptions("a", Options{Delimiter: 0xFF}).Parse()
	if !errors.Is(err, ErrUnsupportedDelimiter) {
		t.Fatalf("expected ErrUnsupportedDelimiter, got %v", err)
	}
}
