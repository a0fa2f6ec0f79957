package ast

// Stmt is the interface for all statements.
type Stmt interface {
	ASTNode

	stmtNode()
}

// Assignment is a statement of the form `designator := expr`.
type Assignment struct {
	ASTBase

	Target *Designator
	Value  Expr
}

// CallStmt is a subprogram call used as a statement.
type CallStmt struct {
	ASTBase

	Call *Call
}

// CondBranch is a single conditional branch of an IF statement: the IF branch
// itself or one of its ELSIF branches.
type CondBranch struct {
	ASTBase

	Cond Expr
	Body []Stmt
}

// IfStmt is an IF statement with optional ELSIF and ELSE branches.
type IfStmt struct {
	ASTBase

	// The conditional branches: the first is the IF branch and the rest are
	// the ELSIF branches.
	CondBranches []*CondBranch

	// The ELSE branch.  This is `nil` if there is no ELSE.
	ElseBranch []Stmt
}

// WhileStmt is a WHILE loop.
type WhileStmt struct {
	ASTBase

	Cond Expr
	Body []Stmt
}

// ExitStmt is an EXIT statement: it leaves the innermost loop.
type ExitStmt struct {
	ASTBase
}

// ReturnStmt is a RETURN statement.
type ReturnStmt struct {
	ASTBase

	// The returned value.  This is `nil` for a bare RETURN.
	Value Expr
}

func (*Assignment) stmtNode() {}
func (*CallStmt) stmtNode() {}
func (*IfStmt) stmtNode() {}
func (*WhileStmt) stmtNode() {}
func (*ExitStmt) stmtNode() {}
func (*ReturnStmt) stmtNode() {}
