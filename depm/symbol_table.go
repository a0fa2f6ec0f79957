package depm

import (
	"fmt"

	"beblang/common"
	"beblang/report"
)

// SymbolTable is the scoped symbol table used during semantic analysis.  It is
// a stack of flat scopes: the innermost scope is last.  The bottom scope is the
// universe scope containing the built-in symbols.
type SymbolTable struct {
	scopes []map[string]common.SymbolInfo
}

// NewSymbolTable creates a new symbol table whose universe scope contains all
// of the built-in subprograms.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{}
	st.EnterScope()

	for _, builtin := range Builtins() {
		st.scopes[0][builtin.Name] = builtin
	}

	return st
}

// EnterScope pushes a new scope onto the scope stack.
func (st *SymbolTable) EnterScope() {
	st.scopes = append(st.scopes, make(map[string]common.SymbolInfo))
}

// ExitScope removes the innermost scope from the scope stack.  The universe
// scope can never be exited.
func (st *SymbolTable) ExitScope() {
	if len(st.scopes) <= 1 {
		report.ICE("exited the universe scope")
	}

	st.scopes = st.scopes[:len(st.scopes)-1]
}

// Depth returns the number of scopes on the scope stack.
func (st *SymbolTable) Depth() int {
	return len(st.scopes)
}

// TryDefine defines a symbol in the innermost scope.  It fails if a symbol with
// the same name is already defined in that scope: outer scopes are not
// consulted so inner definitions may shadow outer ones.  The returned error is
// positioned on the pre-existing definition.
func (st *SymbolTable) TryDefine(sym common.SymbolInfo) *report.LocalCompileError {
	currScope := st.scopes[len(st.scopes)-1]

	if existing, ok := currScope[sym.SymbolName()]; ok {
		span := existing.Span()
		if span == nil {
			span = sym.Span()
		}

		return &report.LocalCompileError{
			Kind:    report.DuplicateSymbol,
			Message: formatDuplicate(existing),
			Span:    span,
			Related: sym.Span(),
		}
	}

	currScope[sym.SymbolName()] = sym
	return nil
}

// formatDuplicate returns the error message for redefining an existing symbol.
func formatDuplicate(existing common.SymbolInfo) string {
	if existing.Span() == nil {
		return fmt.Sprintf("`%s` is already defined as a built-in %s", existing.SymbolName(), common.KindName(existing))
	}

	return fmt.Sprintf("multiple symbols with name `%s` declared in scope", existing.SymbolName())
}

// IsDefined looks up a symbol by name in all visible scopes, innermost first.
func (st *SymbolTable) IsDefined(name string) (common.SymbolInfo, bool) {
	for i := len(st.scopes) - 1; i > -1; i-- {
		if sym, ok := st.scopes[i][name]; ok {
			return sym, true
		}
	}

	return nil, false
}

// LookupLocal looks up a symbol by name in the innermost scope only.
func (st *SymbolTable) LookupLocal(name string) (common.SymbolInfo, bool) {
	sym, ok := st.scopes[len(st.scopes)-1][name]
	return sym, ok
}
