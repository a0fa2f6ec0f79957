package syntax

import (
	"strconv"

	"beblang/ast"
	"beblang/types"
)

// relOps maps the relational operator tokens to their operators.
var relOps = map[int]ast.Operator{
	TOK_EQ:   ast.OpEq,
	TOK_NEQ:  ast.OpNeq,
	TOK_LT:   ast.OpLt,
	TOK_LTEQ: ast.OpLtEq,
	TOK_GT:   ast.OpGt,
	TOK_GTEQ: ast.OpGtEq,
}

// addOps maps the additive operator tokens to their operators.
var addOps = map[int]ast.Operator{
	TOK_PLUS:  ast.OpAdd,
	TOK_MINUS: ast.OpSub,
	TOK_OR:    ast.OpOr,
}

// mulOps maps the multiplicative operator tokens to their operators.
var mulOps = map[int]ast.Operator{
	TOK_STAR: ast.OpMul,
	TOK_DIV:  ast.OpDiv,
	TOK_MOD:  ast.OpMod,
	TOK_AND:  ast.OpAnd,
	TOK_AMP:  ast.OpAnd,
}

// expr = simple_expr [rel_op simple_expr] ;
func (p *Parser) parseExpr() ast.Expr {
	startSpan := p.tok.Span
	left := p.parseSimpleExpr()

	if op, ok := relOps[p.tok.Kind]; ok {
		p.next()
		right := p.parseSimpleExpr()

		return &ast.Comparison{
			ASTBase: p.newBase(startSpan),
			Left:    left,
			Op:      op,
			Right:   right,
		}
	}

	return left
}

// simple_expr = ['-'] term {add_op term} ;
//
// A simple expression with a single term and no negation collapses into the
// term itself.
func (p *Parser) parseSimpleExpr() ast.Expr {
	startSpan := p.tok.Span

	negate := false
	if p.has(TOK_MINUS) {
		negate = true
		p.next()
	}

	terms := []ast.Expr{p.parseTerm()}
	var ops []ast.Operator

	for {
		op, ok := addOps[p.tok.Kind]
		if !ok {
			break
		}

		p.next()
		ops = append(ops, op)
		terms = append(terms, p.parseTerm())
	}

	if !negate && len(terms) == 1 {
		return terms[0]
	}

	return &ast.SimpleExpr{
		ASTBase: p.newBase(startSpan),
		Negate:  negate,
		Terms:   terms,
		Ops:     ops,
	}
}

// term = factor {mul_op factor} ;
func (p *Parser) parseTerm() ast.Expr {
	startSpan := p.tok.Span

	factors := []ast.Expr{p.parseFactor()}
	var ops []ast.Operator

	for {
		op, ok := mulOps[p.tok.Kind]
		if !ok {
			break
		}

		p.next()
		ops = append(ops, op)
		factors = append(factors, p.parseFactor())
	}

	if len(factors) == 1 {
		return factors[0]
	}

	return &ast.Term{
		ASTBase: p.newBase(startSpan),
		Factors: factors,
		Ops:     ops,
	}
}

// factor = literal | designator | call | '(' expr ')' | '~' factor ;
func (p *Parser) parseFactor() ast.Expr {
	startSpan := p.tok.Span

	switch p.tok.Kind {
	case TOK_TILDE:
		p.next()
		operand := p.parseFactor()

		return &ast.NotExpr{
			ASTBase: p.newBase(startSpan),
			Operand: operand,
		}
	case TOK_LPAREN:
		p.next()
		inner := p.parseExpr()
		p.want(TOK_RPAREN)

		return &ast.ParenExpr{
			ASTBase: p.newBase(startSpan),
			Inner:   inner,
		}
	case TOK_IDENT:
		name := p.parseIdent()

		if p.has(TOK_LPAREN) {
			return p.parseCallArgs(name)
		}

		return p.parseSelectors(name)
	default:
		return p.parseLiteral()
	}
}

// call = ident '(' [expr {',' expr}] ')' ;
//
// The identifier has already been consumed.
func (p *Parser) parseCallArgs(callee *ast.Ident) *ast.Call {
	p.want(TOK_LPAREN)

	var args []ast.Expr
	if !p.has(TOK_RPAREN) {
		args = append(args, p.parseExpr())

		for p.has(TOK_COMMA) {
			p.next()
			args = append(args, p.parseExpr())
		}
	}

	p.want(TOK_RPAREN)

	return &ast.Call{
		ASTBase: p.newBase(callee.Span),
		Callee:  callee,
		Args:    args,
	}
}

// designator = ident {'[' expr ']'} ;
//
// The identifier has already been consumed.
func (p *Parser) parseSelectors(name *ast.Ident) *ast.Designator {
	var selectors []ast.Expr
	for p.has(TOK_LBRACKET) {
		p.next()
		selectors = append(selectors, p.parseExpr())
		p.want(TOK_RBRACKET)
	}

	return &ast.Designator{
		ASTBase:   p.newBase(name.Span),
		Name:      name,
		Selectors: selectors,
	}
}

// literal = int_lit | real_lit | string_lit | 'TRUE' | 'FALSE' ;
func (p *Parser) parseLiteral() *ast.Literal {
	tok := p.tok
	lit := &ast.Literal{}

	switch tok.Kind {
	case TOK_INTLIT:
		value, err := strconv.ParseInt(tok.Value, 10, 32)
		if err != nil {
			p.error(tok.Span, "integer literal out of range: `%s`", tok.Value)
		}

		lit.Type = types.Integer
		lit.IntValue = value
	case TOK_REALLIT:
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			p.error(tok.Span, "invalid real literal: `%s`", tok.Value)
		}

		lit.Type = types.Real
		lit.RealValue = value
	case TOK_STRINGLIT:
		lit.Type = types.String
		lit.StrValue = tok.Value
	case TOK_TRUE, TOK_FALSE:
		lit.Type = types.Boolean
		lit.BoolValue = tok.Kind == TOK_TRUE
	default:
		p.reject()
	}

	p.next()
	lit.ASTBase = p.newBase(tok.Span)
	return lit
}
