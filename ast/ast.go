package ast

import (
	"beblang/report"
)

// NodeID uniquely identifies an AST node within a single syntax tree.  Node IDs
// are dense: they are assigned sequentially from zero as the tree is built so
// that side tables can be indexed by them directly.
type NodeID int

// The abstract interface for all AST nodes.
type ASTNode interface {
	// The unique ID of the AST node.
	ID() NodeID

	// The text span of the AST.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The ID of the AST node.
	id NodeID

	// The span over which the AST node occurs.
	span *report.TextSpan
}

func (ab ASTBase) ID() NodeID {
	return ab.id
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// IDGen assigns node IDs while a syntax tree is being constructed.  Every tree
// should be built using a single ID generator.
type IDGen struct {
	next NodeID
}

// NewBaseOn creates a new AST base with a fresh ID and the given span.
func (g *IDGen) NewBaseOn(span *report.TextSpan) ASTBase {
	id := g.next
	g.next++
	return ASTBase{id: id, span: span}
}

// NewBaseOver creates a new AST base with a fresh ID spanning over two spans.
func (g *IDGen) NewBaseOver(start, end *report.TextSpan) ASTBase {
	return g.NewBaseOn(report.NewSpanOver(start, end))
}

// Count returns the number of IDs assigned so far.
func (g *IDGen) Count() int {
	return int(g.next)
}

// -----------------------------------------------------------------------------

// Ident is a named identifier occurring in source text.  It is not a node: it
// only records where a name was written.
type Ident struct {
	Name string
	Span *report.TextSpan
}
