package depm

import (
	"testing"

	"github.com/nalgeon/be"

	"beblang/ast"
	"beblang/common"
	"beblang/report"
	"beblang/types"
)

func expectICE(t *testing.T, f func()) {
	t.Helper()

	defer func() {
		_, ok := recover().(*report.InternalError)
		be.True(t, ok)
	}()

	f()
	t.Fatal("expected an internal error")
}

func TestAnnotateType(t *testing.T) {
	a := NewAnnotations(4)

	be.True(t, !a.HasType(2))
	a.AnnotateType(2, types.Real)
	be.True(t, a.HasType(2))
	be.True(t, types.Equals(a.GetType(2), types.Real))
}

func TestAnnotationsGrow(t *testing.T) {
	a := NewAnnotations(0)

	a.AnnotateType(10, types.Boolean)
	be.True(t, a.HasType(10))
	be.True(t, !a.HasType(9))
	be.True(t, !a.HasType(11))
}

func TestAnnotateSymbols(t *testing.T) {
	a := NewAnnotations(3)

	x := &common.VariableInfo{Name: "x", Type: types.Integer}
	y := &common.VariableInfo{Name: "y", Type: types.Integer}
	a.AnnotateSymbols(0, x, y)

	vars := GetSymbols[*common.VariableInfo](a, 0)
	be.Equal(t, len(vars), 2)
	be.Equal(t, vars[1], y)

	sp := &common.SubprogramInfo{Name: "P", ReturnType: types.Void}
	a.AnnotateSymbols(1, sp)
	be.Equal(t, GetSymbol[*common.SubprogramInfo](a, 1), sp)

	a.AnnotateSymbols(2)
	be.Equal(t, len(GetSymbols[common.SymbolInfo](a, 2)), 0)
}

func TestAnnotationViolations(t *testing.T) {
	x := &common.VariableInfo{Name: "x", Type: types.Integer}
	y := &common.VariableInfo{Name: "y", Type: types.Integer}

	t.Run("missing type", func(t *testing.T) {
		a := NewAnnotations(2)
		expectICE(t, func() { a.GetType(1) })
	})

	t.Run("missing symbol", func(t *testing.T) {
		a := NewAnnotations(2)
		expectICE(t, func() { GetSymbol[*common.VariableInfo](a, 1) })
	})

	t.Run("type written twice", func(t *testing.T) {
		a := NewAnnotations(2)
		a.AnnotateType(0, types.Integer)
		expectICE(t, func() { a.AnnotateType(0, types.Integer) })
	})

	t.Run("symbols written twice", func(t *testing.T) {
		a := NewAnnotations(2)
		a.AnnotateSymbols(0, x)
		expectICE(t, func() { a.AnnotateSymbols(0, y) })
	})

	t.Run("wrong variant", func(t *testing.T) {
		a := NewAnnotations(2)
		a.AnnotateSymbols(0, x)
		expectICE(t, func() { GetSymbol[*common.SubprogramInfo](a, 0) })
	})

	t.Run("not exactly one", func(t *testing.T) {
		a := NewAnnotations(2)
		a.AnnotateSymbols(ast.NodeID(1), x, y)
		expectICE(t, func() { GetSymbol[*common.VariableInfo](a, 1) })
	})
}
