package parser

import (
	"strings"
)

type NodeKind int

const (
	// TokenNode is a matched terminal.
	TokenNode NodeKind = iota
	// MethodNode is a builder method call with child values as arguments.
	MethodNode
	// SomeNode wraps a present optional value.
	SomeNode
	// AbsentNode is the value of an omitted optional symbol or of None.
	AbsentNode
)

// Node is a value produced by reduce actions. The parser builds these
// bottom-up, one per reduced production.
type Node struct {
	Kind     NodeKind
	Term     int
	Text     string
	Method   string
	Children []*Node
}

func tokenNode(t *Token) *Node {
	return &Node{Kind: TokenNode, Term: t.Term, Text: t.Text}
}

// String renders the node in a compact prefix form, handy in tests
// and diagnostics: method(child, ...), Some(child), None, or the
// token text.
func (n *Node) String() string {
	switch n.Kind {
	case AbsentNode:
		return "None"

	case TokenNode:
		return n.Text

	case SomeNode:
		return "Some(" + n.Children[0].String() + ")"
	}

	var b strings.Builder
	b.WriteString(n.Method)
	b.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	b.WriteByte(')')
	return b.String()
}
