package walk

import (
	"beblang/ast"
	"beblang/common"
	"beblang/report"
	"beblang/types"
)

// walkModule walks the root of a module.
func (w *Walker) walkModule(mod *ast.Module) {
	// The module symbol lives in the universe alongside the built-ins.
	modInfo := &common.ModuleInfo{Name: mod.Name.Name, DefSpan: mod.Name.Span}
	w.define(modInfo)
	w.annots.AnnotateSymbols(mod.ID(), modInfo)

	w.table.EnterScope()
	defer w.table.ExitScope()

	for _, vd := range mod.Vars {
		w.walkVarDecl(vd)
	}

	for _, def := range mod.Subprograms {
		switch v := def.(type) {
		case *ast.SubprogramDecl:
			w.walkSubprogramDecl(v)
		case *ast.Subprogram:
			w.walkSubprogram(v)
		default:
			report.ICE("unknown subprogram node: %T", def)
		}
	}

	w.walkStmts(mod.Body, walkContext{global: true})
}

// walkVarDecl walks a variable declaration, defining each of its variables in
// the current scope.  Failing to define one variable does not prevent the
// remaining variables from being defined.
func (w *Walker) walkVarDecl(vd *ast.VarDecl) []*common.VariableInfo {
	vars := make([]*common.VariableInfo, len(vd.Names))
	syms := make([]common.SymbolInfo, len(vd.Names))

	for i, name := range vd.Names {
		vars[i] = &common.VariableInfo{Name: name.Name, DefSpan: name.Span, Type: vd.Type}
		syms[i] = vars[i]

		w.define(vars[i])
	}

	w.annots.AnnotateSymbols(vd.ID(), syms...)
	return vars
}

// newSubprogramInfo creates the symbol for a subprogram heading.  The returned
// symbol is not yet defined in any scope.
func (w *Walker) newSubprogramInfo(heading *ast.SubprogramHeading) *common.SubprogramInfo {
	var params []*common.VariableInfo
	for _, group := range heading.Params {
		for _, name := range group.Names {
			params = append(params, &common.VariableInfo{Name: name.Name, DefSpan: name.Span, Type: group.Type})
		}
	}

	return &common.SubprogramInfo{
		Name:       heading.Name.Name,
		DefSpan:    heading.Name.Span,
		Params:     params,
		ReturnType: heading.ReturnType,
	}
}

// checkReturnType checks that a subprogram heading does not return an array.
// It is only called for the first heading of each subprogram.
func (w *Walker) checkReturnType(heading *ast.SubprogramHeading) {
	if _, ok := types.IsArray(heading.ReturnType); ok {
		w.recError(
			report.InvalidReturnType,
			heading.Name.Span,
			"subprogram `%s` cannot return an array: %s",
			heading.Name.Name,
			heading.ReturnType.Repr(),
		)
	}
}

// isSubprogramName returns whether the name is already bound to a subprogram
// in the current scope.
func (w *Walker) isSubprogramName(name string) bool {
	existing, ok := w.table.LookupLocal(name)
	if !ok {
		return false
	}

	_, ok = existing.(*common.SubprogramInfo)
	return ok
}

// walkSubprogramDecl walks a forward declaration of a subprogram.
func (w *Walker) walkSubprogramDecl(decl *ast.SubprogramDecl) {
	sp := w.newSubprogramInfo(decl.Heading)
	if !w.isSubprogramName(sp.Name) {
		w.checkReturnType(decl.Heading)
	}

	w.define(sp)

	w.annots.AnnotateSymbols(decl.ID(), sp)
}

// walkSubprogram walks a subprogram definition.  If the subprogram was
// previously declared, then the definition is attached to the declaration.
func (w *Walker) walkSubprogram(def *ast.Subprogram) {
	sp := w.newSubprogramInfo(def.Heading)
	name := def.Heading.Name

	// The symbol that calls to this subprogram resolve to.
	callee := sp

	if existing, ok := w.table.LookupLocal(name.Name); ok {
		if decl, ok := existing.(*common.SubprogramInfo); ok {
			if decl.Defined {
				err := report.Raise(report.SubprogramAlreadyDefined, name.Span, "subprogram `%s` is already defined", name.Name)
				err.Related = decl.DefSpan
				w.errors = append(w.errors, err)
			} else {
				decl.SetDefined()

				if !decl.SignatureMatches(sp) {
					w.recError(
						report.TypeMismatch,
						name.Span,
						"definition of `%s` does not match its declaration",
						name.Name,
					)
				}
			}

			callee = decl
		} else {
			// Not a subprogram: let the table report the conflict.
			w.checkReturnType(def.Heading)
			w.define(sp)
		}
	} else {
		w.checkReturnType(def.Heading)
		sp.Defined = true
		w.define(sp)
	}

	w.annots.AnnotateSymbols(def.ID(), callee)

	// Parameters and locals share a single scope.
	w.table.EnterScope()
	defer w.table.ExitScope()

	i := 0
	for _, group := range def.Heading.Params {
		syms := make([]common.SymbolInfo, len(group.Names))
		for j := range group.Names {
			syms[j] = sp.Params[i]
			w.define(sp.Params[i])
			i++
		}

		w.annots.AnnotateSymbols(group.ID(), syms...)
	}

	for _, vd := range def.Vars {
		w.walkVarDecl(vd)
	}

	w.walkStmts(def.Body, walkContext{subprogram: callee})
}
