package parser

import (
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
)

// SequenceNode is an ordered list of parsed tokens, one *ast.LiteralNode
// string per token.
type SequenceNode struct {
	elements []ast.SchemaNode
	position ast.Position
}

// NewSequenceNode creates a sequence node over elements.
func NewSequenceNode(elements []ast.SchemaNode, pos ast.Position) *SequenceNode {
	return &SequenceNode{
		elements: elements,
		position: pos,
	}
}

// Type returns ast.NodeTypeArray.
func (n *SequenceNode) Type() ast.NodeType {
	return ast.NodeTypeArray
}

// Len returns the number of tokens.
func (n *SequenceNode) Len() int {
	return len(n.elements)
}

// Get returns the token at index i.
func (n *SequenceNode) Get(i int) ast.SchemaNode {
	return n.elements[i]
}

// Elements returns the tokens in stream order.
func (n *SequenceNode) Elements() []ast.SchemaNode {
	return n.elements
}

// Position returns the source position.
func (n *SequenceNode) Position() ast.Position {
	return n.position
}

// Accept visits every element in order, stopping at the first error.
func (n *SequenceNode) Accept(visitor ast.Visitor) error {
	for _, el := range n.elements {
		if err := el.Accept(visitor); err != nil {
			return err
		}
	}
	return nil
}

// String returns a string representation.
func (n *SequenceNode) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, el := range n.elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(el.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
