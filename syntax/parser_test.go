package syntax

import (
	"testing"

	"github.com/nalgeon/be"

	"beblang/ast"
	"beblang/report"
	"beblang/types"
)

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()

	mod, err := ParseString(src)
	be.Err(t, err, nil)
	return mod
}

func TestParseEmptyModule(t *testing.T) {
	mod := mustParse(t, "MODULE Empty; END Empty.")

	be.Equal(t, mod.Name.Name, "Empty")
	be.Equal(t, len(mod.Vars), 0)
	be.Equal(t, len(mod.Body), 0)
}

func TestParseVarBlock(t *testing.T) {
	mod := mustParse(t, `
MODULE Vars;
VAR
	x, y: INTEGER;
	grid: ARRAY 3 OF ARRAY 4 OF REAL;
END Vars.`)

	be.Equal(t, len(mod.Vars), 2)
	be.Equal(t, len(mod.Vars[0].Names), 2)
	be.Equal(t, mod.Vars[0].Names[1].Name, "y")
	be.True(t, types.Equals(mod.Vars[0].Type, types.Integer))
	be.True(t, types.Equals(mod.Vars[1].Type, types.NewArray(types.NewArray(types.Real, 4), 3)))
}

func TestParseSubprograms(t *testing.T) {
	mod := mustParse(t, `
MODULE Procs;
PROCEDURE Even(n: INTEGER): BOOLEAN;
PROCEDURE Odd(n: INTEGER): BOOLEAN;
BEGIN
	RETURN ~Even(n)
END Odd;
PROCEDURE Log(a, b: INTEGER; s: STRING);
VAR tmp: INTEGER;
BEGIN
END Log;
END Procs.`)

	be.Equal(t, len(mod.Subprograms), 3)

	decl, ok := mod.Subprograms[0].(*ast.SubprogramDecl)
	be.True(t, ok)
	be.Equal(t, decl.Heading.Name.Name, "Even")
	be.True(t, types.Equals(decl.Heading.ReturnType, types.Boolean))

	odd, ok := mod.Subprograms[1].(*ast.Subprogram)
	be.True(t, ok)
	be.Equal(t, len(odd.Body), 1)

	log, ok := mod.Subprograms[2].(*ast.Subprogram)
	be.True(t, ok)
	be.Equal(t, len(log.Heading.Params), 2)
	be.True(t, types.Equals(log.Heading.ReturnType, types.Void))
	be.Equal(t, len(log.Vars), 1)
	be.Equal(t, len(log.Body), 0)
}

func TestParseStatements(t *testing.T) {
	mod := mustParse(t, `
MODULE Stmts;
VAR a: ARRAY 3 OF INTEGER; i: INTEGER;
BEGIN
	a[1] := 10;
	IF i = 0 THEN i := 1 ELSIF i = 1 THEN i := 2 ELSE i := 3 END;
	WHILE i < 3 DO i := i + 1; EXIT END;
	PrintInteger(i);
	RETURN
END Stmts.`)

	be.Equal(t, len(mod.Body), 5)

	assign := mod.Body[0].(*ast.Assignment)
	be.Equal(t, assign.Target.Name.Name, "a")
	be.Equal(t, len(assign.Target.Selectors), 1)

	ifStmt := mod.Body[1].(*ast.IfStmt)
	be.Equal(t, len(ifStmt.CondBranches), 2)
	be.Equal(t, len(ifStmt.ElseBranch), 1)

	while := mod.Body[2].(*ast.WhileStmt)
	be.Equal(t, len(while.Body), 2)
	_, ok := while.Body[1].(*ast.ExitStmt)
	be.True(t, ok)

	call := mod.Body[3].(*ast.CallStmt)
	be.Equal(t, call.Call.Callee.Name, "PrintInteger")
	be.Equal(t, len(call.Call.Args), 1)

	ret := mod.Body[4].(*ast.ReturnStmt)
	be.True(t, ret.Value == nil)
}

func TestParseExpressionShape(t *testing.T) {
	mod := mustParse(t, `
MODULE Exprs;
BEGIN
	x := -a + b * c MOD 2 OR d;
	y := (a + 1) >= 2.5;
	z := ~done & "s" # "t"
END Exprs.`)

	simple := mod.Body[0].(*ast.Assignment).Value.(*ast.SimpleExpr)
	be.True(t, simple.Negate)
	be.Equal(t, len(simple.Terms), 3)
	be.Equal(t, simple.Ops, []ast.Operator{ast.OpAdd, ast.OpOr})

	term := simple.Terms[1].(*ast.Term)
	be.Equal(t, term.Ops, []ast.Operator{ast.OpMul, ast.OpMod})

	cmp := mod.Body[1].(*ast.Assignment).Value.(*ast.Comparison)
	be.Equal(t, cmp.Op, ast.OpGtEq)
	_, ok := cmp.Left.(*ast.ParenExpr)
	be.True(t, ok)
	lit := cmp.Right.(*ast.Literal)
	be.Equal(t, lit.RealValue, 2.5)

	neq := mod.Body[2].(*ast.Assignment).Value.(*ast.Comparison)
	be.Equal(t, neq.Op, ast.OpNeq)
	and := neq.Left.(*ast.Term)
	be.Equal(t, and.Ops, []ast.Operator{ast.OpAnd})
	_, ok = and.Factors[0].(*ast.NotExpr)
	be.True(t, ok)
}

func TestParseAssignsUniqueNodeIDs(t *testing.T) {
	mod := mustParse(t, `
MODULE Ids;
VAR x: INTEGER;
BEGIN
	x := 1 + 2;
	x := x * 3
END Ids.`)

	seen := make(map[ast.NodeID]bool)
	record := func(n ast.ASTNode) {
		be.True(t, !seen[n.ID()])
		be.True(t, int(n.ID()) < mod.NodeCount)
		seen[n.ID()] = true
	}

	record(mod)
	record(mod.Vars[0])
	for _, stmt := range mod.Body {
		assign := stmt.(*ast.Assignment)
		record(assign)
		record(assign.Target)
		record(assign.Value)
	}
}

func TestParseEndNameMismatch(t *testing.T) {
	_, err := ParseString("MODULE A; END B.")

	cerr, ok := err.(*report.LocalCompileError)
	be.True(t, ok)
	be.Equal(t, cerr.Kind, report.SyntaxError)
}

func TestParseUnexpectedToken(t *testing.T) {
	_, err := ParseString("MODULE A; BEGIN x := := 1 END A.")

	be.True(t, err != nil)
	be.True(t, !IsIncomplete(err))
}

func TestParseIncomplete(t *testing.T) {
	_, err := ParseString("MODULE A;\nBEGIN\n  IF x THEN")

	be.True(t, IsIncomplete(err))
}
