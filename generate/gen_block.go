package generate

import (
	"beblang/ast"
	"beblang/report"
)

// genStmts generates a list of statements into the current block.  Statements
// following one that terminates the current block are unreachable and are not
// generated.
func (g *Generator) genStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		if g.block.Term != nil {
			return
		}

		g.genStmt(stmt)
	}
}

// genStmt generates a single statement.
func (g *Generator) genStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.Assignment:
		g.genAssign(v)
	case *ast.CallStmt:
		g.genCall(v.Call)
	case *ast.IfStmt:
		g.genIfStmt(v)
	case *ast.WhileStmt:
		g.genWhileStmt(v)
	case *ast.ExitStmt:
		if len(g.loopExits) == 0 {
			report.ICE("EXIT outside of a loop")
		}

		g.block.NewBr(g.loopExits[len(g.loopExits)-1])
	case *ast.ReturnStmt:
		g.genReturn(v)
	default:
		report.ICE("unknown statement node: %T", stmt)
	}
}

// genAssign generates an assignment.  The destination is evaluated before the
// value.
func (g *Generator) genAssign(as *ast.Assignment) {
	dest := g.genAddr(as.Target)
	val := g.genExpr(as.Value)

	g.block.NewStore(val, dest)
}

// genReturn generates a return statement.  Returning from the module body ends
// the program successfully.
func (g *Generator) genReturn(ret *ast.ReturnStmt) {
	if g.enclosingFunc == g.mainFunc {
		g.block.NewRet(zeroInt)
	} else if ret.Value == nil {
		g.block.NewRet(nil)
	} else {
		g.block.NewRet(g.genExpr(ret.Value))
	}
}
