package generate

import (
	"beblang/ast"

	"github.com/llir/llvm/ir"
)

// genIfStmt generates an if statement.  Each conditional branch gets a block
// for its condition and a block for its body: a false condition falls through
// to the condition of the next branch, the else body, or the end of the
// statement.
func (g *Generator) genIfStmt(ifStmt *ast.IfStmt) {
	endBlock := newBlock()

	nextBlock := newBlock()
	g.block.NewBr(nextBlock)

	for i, branch := range ifStmt.CondBranches {
		g.startBlock(nextBlock, "if.cond")
		condVal := g.genExpr(branch.Cond)

		// With no more branches, a false condition goes straight to the end.
		var falseBlock *ir.Block
		if i < len(ifStmt.CondBranches)-1 || ifStmt.ElseBranch != nil {
			nextBlock = newBlock()
			falseBlock = nextBlock
		} else {
			falseBlock = endBlock
		}

		thenBlock := newBlock()
		g.block.NewCondBr(condVal, thenBlock, falseBlock)

		g.startBlock(thenBlock, "if.then")
		g.genStmts(branch.Body)
		g.branchTo(endBlock)
	}

	if ifStmt.ElseBranch != nil {
		g.startBlock(nextBlock, "if.else")
		g.genStmts(ifStmt.ElseBranch)
		g.branchTo(endBlock)
	}

	g.startBlock(endBlock, "if.end")
}

// genWhileStmt generates a while loop.
func (g *Generator) genWhileStmt(whileStmt *ast.WhileStmt) {
	condBlock := newBlock()
	bodyBlock := newBlock()
	exitBlock := newBlock()

	g.block.NewBr(condBlock)

	g.startBlock(condBlock, "while.cond")
	condVal := g.genExpr(whileStmt.Cond)
	g.block.NewCondBr(condVal, bodyBlock, exitBlock)

	g.loopExits = append(g.loopExits, exitBlock)

	g.startBlock(bodyBlock, "while.body")
	g.genStmts(whileStmt.Body)
	g.branchTo(condBlock)

	g.loopExits = g.loopExits[:len(g.loopExits)-1]

	g.startBlock(exitBlock, "while.end")
}
