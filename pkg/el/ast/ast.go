// Package ast defines the EL abstract syntax tree as plain data: an
// interpreted tree rather than closures over sub-evaluators, which is
// cache-friendlier to build and far easier to unit-test in isolation.
package ast

import "github.com/flowbeam/el/pkg/el/value"

// NodeKind identifies which AST node variant is populated.
type NodeKind int

const (
	// Literal is a fixed value: quoted strings, numeric literals, and the
	// result of literal(x).
	Literal NodeKind = iota
	// AttrRef reads an attribute from the record set by name.
	AttrRef
	// Text is static template text.
	Text
	// Call is a function application; Children[0] is the subject for a
	// chained call.
	Call
	// Concat joins the string renderings of its Children left-to-right.
	Concat
)

func (k NodeKind) String() string {
	switch k {
	case Literal:
		return "Literal"
	case AttrRef:
		return "AttrRef"
	case Text:
		return "Text"
	case Call:
		return "Call"
	case Concat:
		return "Concat"
	default:
		return "Unknown"
	}
}

// Node is one element of the compiled AST. Only the fields relevant to Kind
// are populated; the rest are zero values.
type Node struct {
	Kind NodeKind

	// Literal
	Value value.Value

	// AttrRef
	Name string

	// Text
	TextValue string

	// Call
	Function string
	Children []*Node // Children[0] is the subject when this Call was chained

	// Concat reuses Children for its joined nodes.
}

// NewLiteral builds a Literal node.
func NewLiteral(v value.Value) *Node { return &Node{Kind: Literal, Value: v} }

// NewAttrRef builds an AttrRef node.
func NewAttrRef(name string) *Node { return &Node{Kind: AttrRef, Name: name} }

// NewText builds a Text node.
func NewText(text string) *Node { return &Node{Kind: Text, TextValue: text} }

// NewCall builds a Call node. args[0], if present, is the subject.
func NewCall(function string, args []*Node) *Node {
	return &Node{Kind: Call, Function: function, Children: args}
}

// NewConcat builds a Concat node over children.
func NewConcat(children []*Node) *Node {
	return &Node{Kind: Concat, Children: children}
}

// Arity is the number of arguments a Call node carries, including the
// subject — the same unit the function registry keys dispatch on.
func (n *Node) Arity() int {
	return len(n.Children)
}
