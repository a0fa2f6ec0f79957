package depm

import (
	"testing"

	"github.com/nalgeon/be"

	"beblang/common"
	"beblang/report"
	"beblang/types"
)

func newVar(name string, line int) *common.VariableInfo {
	return &common.VariableInfo{
		Name:    name,
		DefSpan: &report.TextSpan{StartLine: line, EndLine: line, EndCol: len(name)},
		Type:    types.Integer,
	}
}

func TestUniverseHasBuiltins(t *testing.T) {
	st := NewSymbolTable()

	sym, ok := st.IsDefined("PrintInteger")
	be.True(t, ok)

	sp, ok := sym.(*common.SubprogramInfo)
	be.True(t, ok)
	be.True(t, sp.Builtin)
	be.True(t, sp.Defined)
	be.Equal(t, len(sp.Params), 1)
	be.True(t, types.Equals(sp.ReturnType, types.Void))

	sym, ok = st.IsDefined("ReadReal")
	be.True(t, ok)
	be.True(t, types.Equals(sym.(*common.SubprogramInfo).ReturnType, types.Real))
}

func TestDefineAndLookup(t *testing.T) {
	st := NewSymbolTable()
	st.EnterScope()

	be.True(t, st.TryDefine(newVar("x", 1)) == nil)

	sym, ok := st.IsDefined("x")
	be.True(t, ok)
	be.Equal(t, sym.SymbolName(), "x")

	_, ok = st.IsDefined("y")
	be.True(t, !ok)
}

func TestDuplicateInSameScope(t *testing.T) {
	st := NewSymbolTable()
	st.EnterScope()

	first := newVar("x", 1)
	second := newVar("x", 4)

	be.True(t, st.TryDefine(first) == nil)

	err := st.TryDefine(second)
	be.True(t, err != nil)
	be.Equal(t, err.Kind, report.DuplicateSymbol)
	be.Equal(t, err.Span, first.DefSpan)
	be.Equal(t, err.Related, second.DefSpan)

	// the original definition is kept
	sym, _ := st.IsDefined("x")
	be.Equal(t, sym, common.SymbolInfo(first))
}

func TestRedefiningBuiltinInUniverse(t *testing.T) {
	st := NewSymbolTable()

	mod := &common.ModuleInfo{Name: "HALT", DefSpan: &report.TextSpan{StartCol: 7, EndCol: 11}}

	err := st.TryDefine(mod)
	be.True(t, err != nil)
	be.Equal(t, err.Kind, report.DuplicateSymbol)
	be.Equal(t, err.Span, mod.DefSpan)
}

func TestShadowing(t *testing.T) {
	st := NewSymbolTable()
	st.EnterScope()

	outer := newVar("x", 1)
	be.True(t, st.TryDefine(outer) == nil)

	st.EnterScope()
	inner := newVar("x", 3)
	be.True(t, st.TryDefine(inner) == nil)

	sym, _ := st.IsDefined("x")
	be.Equal(t, sym, common.SymbolInfo(inner))

	st.ExitScope()

	sym, _ = st.IsDefined("x")
	be.Equal(t, sym, common.SymbolInfo(outer))
}

func TestBuiltinsCanBeShadowed(t *testing.T) {
	st := NewSymbolTable()
	st.EnterScope()

	be.True(t, st.TryDefine(newVar("PrintInteger", 2)) == nil)

	sym, _ := st.IsDefined("PrintInteger")
	_, ok := sym.(*common.VariableInfo)
	be.True(t, ok)
}

func TestLookupLocal(t *testing.T) {
	st := NewSymbolTable()
	st.EnterScope()
	be.True(t, st.TryDefine(newVar("x", 1)) == nil)

	st.EnterScope()
	_, ok := st.LookupLocal("x")
	be.True(t, !ok)

	_, ok = st.IsDefined("x")
	be.True(t, ok)
}

func TestScopeDepth(t *testing.T) {
	st := NewSymbolTable()
	be.Equal(t, st.Depth(), 1)

	st.EnterScope()
	st.EnterScope()
	be.Equal(t, st.Depth(), 3)

	st.ExitScope()
	be.Equal(t, st.Depth(), 2)
}

func TestExitUniverseIsInternalError(t *testing.T) {
	st := NewSymbolTable()

	defer func() {
		_, ok := recover().(*report.InternalError)
		be.True(t, ok)
	}()

	st.ExitScope()
	t.Fatal("expected an internal error")
}

func TestBuiltinsAreFresh(t *testing.T) {
	a := Builtins()
	b := Builtins()

	be.Equal(t, len(a), 9)
	be.True(t, a[0] != b[0])
}
