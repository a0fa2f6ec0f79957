package walk

import (
	"beblang/ast"
	"beblang/common"
	"beblang/depm"
	"beblang/report"
	"beblang/types"
)

// Walker is responsible for walking a module and performing semantic analysis
// on it: it resolves every identifier, computes the type of every expression,
// and records the results in the annotation store for the generator.
type Walker struct {
	// The symbol table used to resolve identifiers.
	table *depm.SymbolTable

	// The annotation store to which resolved symbols and types are written.
	annots *depm.Annotations

	// The name of the module being walked.
	moduleName string

	// The errors recorded during walking.
	errors []*report.LocalCompileError
}

// walkContext is the contextual information about the enclosing code that is
// passed down through the walk.  It is passed by value: entering a loop or a
// subprogram creates a new context rather than mutating the walker.
type walkContext struct {
	// The enclosing subprogram.  This is `nil` in the module body.
	subprogram *common.SubprogramInfo

	// Whether the walker is inside the body of a loop.
	inLoop bool

	// Whether the walker is walking module-level code.
	global bool
}

// returnType returns the return type expected by RETURN statements in the
// context.
func (ctx walkContext) returnType() types.DataType {
	if ctx.global {
		return types.Void
	}

	return ctx.subprogram.ReturnType
}

// WalkModule semantically analyzes the given module.  It returns all of the
// errors that were found: analysis continues past errors wherever the rest of
// the module can still be meaningfully checked.  The module can only be passed
// to the generator if no errors were returned.
func WalkModule(mod *ast.Module, table *depm.SymbolTable, annots *depm.Annotations) []*report.LocalCompileError {
	w := &Walker{
		table:      table,
		annots:     annots,
		moduleName: mod.Name.Name,
	}

	w.walkModule(mod)
	return w.errors
}

// -----------------------------------------------------------------------------

// lookup looks up a symbol by name in all visible scopes.  If no symbol by the
// given name can be found, then an error is recorded and returned.
func (w *Walker) lookup(ident *ast.Ident) (common.SymbolInfo, error) {
	if sym, ok := w.table.IsDefined(ident.Name); ok {
		return sym, nil
	}

	return nil, w.recError(report.UndefinedSymbol, ident.Span, "undefined symbol: `%s`", ident.Name)
}

// define defines a symbol in the current scope, recording an error if the
// symbol is already defined in that scope.
func (w *Walker) define(sym common.SymbolInfo) bool {
	if err := w.table.TryDefine(sym); err != nil {
		w.errors = append(w.errors, err)
		return false
	}

	return true
}

// recError records an error on the given span.  The error is returned so that
// it can be propagated: propagated errors are never recorded twice.
func (w *Walker) recError(kind report.ErrorKind, span *report.TextSpan, msg string, args ...interface{}) error {
	err := report.Raise(kind, span, msg, args...)
	w.errors = append(w.errors, err)
	return err
}
