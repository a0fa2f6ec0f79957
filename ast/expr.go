package ast

import (
	"beblang/types"
)

// Expr is the interface for all expressions.
type Expr interface {
	ASTNode

	exprNode()
}

// Operator is the kind of an operator token used in an expression.
type Operator int

// Enumeration of operators.
const (
	OpEq Operator = iota
	OpNeq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpAdd
	OpSub
	OpOr
	OpMul
	OpDiv
	OpMod
	OpAnd
	OpNot
)

var opNames = [...]string{
	OpEq:   "=",
	OpNeq:  "#",
	OpLt:   "<",
	OpLtEq: "<=",
	OpGt:   ">",
	OpGtEq: ">=",
	OpAdd:  "+",
	OpSub:  "-",
	OpOr:   "OR",
	OpMul:  "*",
	OpDiv:  "/",
	OpMod:  "MOD",
	OpAnd:  "AND",
	OpNot:  "~",
}

func (op Operator) String() string {
	return opNames[op]
}

// IsLogical returns whether the operator is a boolean logical operator.
func (op Operator) IsLogical() bool {
	return op == OpOr || op == OpAnd
}

// IsOrdering returns whether the operator is an ordering comparison.
func (op Operator) IsOrdering() bool {
	return OpLt <= op && op <= OpGtEq
}

// -----------------------------------------------------------------------------

// Comparison is a relational expression: `left op right` where op is one of
// the comparison operators.
type Comparison struct {
	ASTBase

	Left  Expr
	Op    Operator
	Right Expr
}

// SimpleExpr is an additive chain: an optionally negated sequence of terms
// joined by `+`, `-`, or `OR`.  `Ops[i]` joins `Terms[i]` and `Terms[i+1]`.
type SimpleExpr struct {
	ASTBase

	Negate bool
	Terms  []Expr
	Ops    []Operator
}

// Term is a multiplicative chain: a sequence of factors joined by `*`, `/`,
// `MOD`, or `AND`.  `Ops[i]` joins `Factors[i]` and `Factors[i+1]`.
type Term struct {
	ASTBase

	Factors []Expr
	Ops     []Operator
}

// NotExpr is a boolean negation: `~ factor`.
type NotExpr struct {
	ASTBase

	Operand Expr
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	ASTBase

	Inner Expr
}

// Designator is a reference to a variable with zero or more index selectors:
// eg. `a[i][j]`.
type Designator struct {
	ASTBase

	Name      *Ident
	Selectors []Expr
}

// Call is a subprogram call.
type Call struct {
	ASTBase

	Callee *Ident
	Args   []Expr
}

// Literal is a literal value.  The field matching the type of the literal
// holds its value.
type Literal struct {
	ASTBase

	Type types.PrimitiveType

	IntValue  int64
	RealValue float64
	StrValue  string
	BoolValue bool
}

func (*Comparison) exprNode() {}
func (*SimpleExpr) exprNode() {}
func (*Term) exprNode() {}
func (*NotExpr) exprNode() {}
func (*ParenExpr) exprNode() {}
func (*Designator) exprNode() {}
func (*Call) exprNode() {}
func (*Literal) exprNode() {}
