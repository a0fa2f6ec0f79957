package walk

import (
	"beblang/ast"
	"beblang/report"
	"beblang/types"
)

// walkStmts walks a list of statements.
func (w *Walker) walkStmts(stmts []ast.Stmt, ctx walkContext) {
	for _, stmt := range stmts {
		w.walkStmt(stmt, ctx)
	}
}

// walkStmt walks a single statement.
func (w *Walker) walkStmt(stmt ast.Stmt, ctx walkContext) {
	switch v := stmt.(type) {
	case *ast.Assignment:
		w.walkAssign(v)
	case *ast.CallStmt:
		w.walkCall(v.Call, true)
	case *ast.IfStmt:
		w.walkIfStmt(v, ctx)
	case *ast.WhileStmt:
		w.walkWhileStmt(v, ctx)
	case *ast.ExitStmt:
		if !ctx.inLoop {
			w.recError(report.ExitOutsideLoop, v.Span(), "EXIT must be inside a loop")
		}
	case *ast.ReturnStmt:
		w.walkReturn(v, ctx)
	default:
		report.ICE("unknown statement node: %T", stmt)
	}
}

// walkAssign walks an assignment statement.
func (w *Walker) walkAssign(as *ast.Assignment) {
	dstType, err := w.walkDesignator(as.Target)
	if err != nil {
		return
	}

	srcType, err := w.walkExpr(as.Value)
	if err != nil {
		return
	}

	if !types.Equals(dstType, srcType) {
		w.recError(
			report.TypeMismatch,
			as.Span(),
			"cannot assign %s to %s",
			srcType.Repr(),
			dstType.Repr(),
		)
	}
}

// walkReturn walks a return statement.
func (w *Walker) walkReturn(ret *ast.ReturnStmt, ctx walkContext) {
	var valueType types.DataType = types.Void
	if ret.Value != nil {
		var err error
		if valueType, err = w.walkExpr(ret.Value); err != nil {
			return
		}
	}

	if rtType := ctx.returnType(); !types.Equals(valueType, rtType) {
		w.recError(
			report.TypeMismatch,
			ret.Span(),
			"cannot return %s from `%s`, expected %s",
			valueType.Repr(),
			w.enclosingName(ctx),
			rtType.Repr(),
		)
	}
}

// enclosingName returns the name of the subprogram or module enclosing the
// code being walked.
func (w *Walker) enclosingName(ctx walkContext) string {
	if ctx.global {
		return w.moduleName
	}

	return ctx.subprogram.Name
}
