package depm

import (
	"beblang/ast"
	"beblang/common"
	"beblang/report"
	"beblang/types"
)

// Annotations is the side table of semantic information produced by the walker
// and consumed by the generator.  It is indexed by the node IDs of a single
// syntax tree.  Every slot may only be written once.
type Annotations struct {
	symbols [][]common.SymbolInfo
	types   []types.DataType
}

// NewAnnotations creates a new annotation store sized for a tree with the given
// number of nodes.  The store grows if larger node IDs are annotated.
func NewAnnotations(nodeCount int) *Annotations {
	return &Annotations{
		symbols: make([][]common.SymbolInfo, nodeCount),
		types:   make([]types.DataType, nodeCount),
	}
}

// AnnotateSymbols attaches the given symbols to a node.  A node which
// introduces no symbols may still be annotated with an empty list.
func (a *Annotations) AnnotateSymbols(id ast.NodeID, syms ...common.SymbolInfo) {
	a.grow(id)

	if a.symbols[id] != nil {
		report.ICE("node %d annotated with symbols twice", id)
	}

	if syms == nil {
		syms = []common.SymbolInfo{}
	}

	a.symbols[id] = syms
}

// AnnotateType attaches the computed type of an expression to a node.
func (a *Annotations) AnnotateType(id ast.NodeID, dt types.DataType) {
	a.grow(id)

	if dt == nil {
		report.ICE("node %d annotated with a nil type", id)
	} else if a.types[id] != nil {
		report.ICE("node %d annotated with a type twice", id)
	}

	a.types[id] = dt
}

// GetType returns the type attached to a node.
func (a *Annotations) GetType(id ast.NodeID) types.DataType {
	if !a.HasType(id) {
		report.ICE("node %d has no type annotation", id)
	}

	return a.types[id]
}

// HasType returns whether a node has a type attached.
func (a *Annotations) HasType(id ast.NodeID) bool {
	return 0 <= int(id) && int(id) < len(a.types) && a.types[id] != nil
}

// HasSymbols returns whether a node has symbols attached.
func (a *Annotations) HasSymbols(id ast.NodeID) bool {
	return 0 <= int(id) && int(id) < len(a.symbols) && a.symbols[id] != nil
}

// GetSymbol returns the single symbol attached to a node.  The symbol must be
// of the requested kind.
func GetSymbol[T common.SymbolInfo](a *Annotations, id ast.NodeID) T {
	syms := GetSymbols[T](a, id)
	if len(syms) != 1 {
		report.ICE("expected exactly one symbol on node %d but got %d", id, len(syms))
	}

	return syms[0]
}

// GetSymbols returns all the symbols attached to a node.  Every symbol must be
// of the requested kind.
func GetSymbols[T common.SymbolInfo](a *Annotations, id ast.NodeID) []T {
	if !a.HasSymbols(id) {
		report.ICE("node %d has no symbol annotation", id)
	}

	result := make([]T, len(a.symbols[id]))
	for i, sym := range a.symbols[id] {
		tsym, ok := sym.(T)
		if !ok {
			report.ICE("symbol `%s` on node %d is a %s", sym.SymbolName(), id, common.KindName(sym))
		}

		result[i] = tsym
	}

	return result
}

func (a *Annotations) grow(id ast.NodeID) {
	if id < 0 {
		report.ICE("invalid node id: %d", id)
	}

	for int(id) >= len(a.types) {
		a.symbols = append(a.symbols, nil)
		a.types = append(a.types, nil)
	}
}
