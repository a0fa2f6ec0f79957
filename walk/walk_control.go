package walk

import (
	"beblang/ast"
	"beblang/report"
	"beblang/types"
)

// walkIfStmt walks an if statement.
func (w *Walker) walkIfStmt(ifStmt *ast.IfStmt, ctx walkContext) {
	for _, branch := range ifStmt.CondBranches {
		w.walkCondition(branch.Cond)
		w.walkStmts(branch.Body, ctx)
	}

	if ifStmt.ElseBranch != nil {
		w.walkStmts(ifStmt.ElseBranch, ctx)
	}
}

// walkWhileStmt walks a while loop.
func (w *Walker) walkWhileStmt(whileStmt *ast.WhileStmt, ctx walkContext) {
	w.walkCondition(whileStmt.Cond)

	ctx.inLoop = true
	w.walkStmts(whileStmt.Body, ctx)
}

// walkCondition walks the guard of a conditional branch or loop.  Errors in the
// condition never prevent the guarded body from being walked.
func (w *Walker) walkCondition(cond ast.Expr) {
	condType, err := w.walkExpr(cond)
	if err != nil {
		return
	}

	if !types.Equals(condType, types.Boolean) {
		w.recError(report.InvalidConditionType, cond.Span(), "cannot use %s as condition", condType.Repr())
	}
}
