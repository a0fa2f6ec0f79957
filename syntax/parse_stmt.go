package syntax

import (
	"beblang/ast"
)

// stmts = [stmt] {';' [stmt]} ;
func (p *Parser) parseStmts() []ast.Stmt {
	var stmts []ast.Stmt

	for {
		if !p.hasOneOf(TOK_SEMI, TOK_END, TOK_ELSE, TOK_ELSIF, TOK_EOF) {
			stmts = append(stmts, p.parseStmt())
		}

		if p.has(TOK_SEMI) {
			p.next()
		} else {
			break
		}
	}

	return stmts
}

// stmt = assignment | call_stmt | if_stmt | while_stmt | exit_stmt | return_stmt ;
func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Kind {
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_WHILE:
		return p.parseWhileStmt()
	case TOK_EXIT:
		startSpan := p.tok.Span
		p.next()
		return &ast.ExitStmt{ASTBase: p.newBase(startSpan)}
	case TOK_RETURN:
		return p.parseReturnStmt()
	case TOK_IDENT:
		return p.parseAssignOrCall()
	}

	p.reject()
	return nil
}

// assignment = designator ':=' expr ;
// call_stmt = ident ['(' [expr_list] ')'] ;
func (p *Parser) parseAssignOrCall() ast.Stmt {
	startSpan := p.tok.Span
	name := p.parseIdent()

	if p.has(TOK_LPAREN) {
		call := p.parseCallArgs(name)

		return &ast.CallStmt{
			ASTBase: p.newBase(startSpan),
			Call:    call,
		}
	}

	target := p.parseSelectors(name)
	if p.has(TOK_ASSIGN) {
		p.next()
		value := p.parseExpr()

		return &ast.Assignment{
			ASTBase: p.newBase(startSpan),
			Target:  target,
			Value:   value,
		}
	}

	if len(target.Selectors) > 0 {
		p.reject()
	}

	// A bare identifier is a call to a subprogram with no arguments.
	return &ast.CallStmt{
		ASTBase: p.newBase(startSpan),
		Call: &ast.Call{
			ASTBase: p.newBase(startSpan),
			Callee:  name,
		},
	}
}

// if_stmt = 'IF' expr 'THEN' stmts {'ELSIF' expr 'THEN' stmts} ['ELSE' stmts] 'END' ;
func (p *Parser) parseIfStmt() *ast.IfStmt {
	startSpan := p.tok.Span

	var condBranches []*ast.CondBranch
	for len(condBranches) == 0 || p.has(TOK_ELSIF) {
		branchStart := p.tok.Span
		p.next()

		cond := p.parseExpr()
		p.want(TOK_THEN)
		body := p.parseStmts()

		condBranches = append(condBranches, &ast.CondBranch{
			ASTBase: p.newBase(branchStart),
			Cond:    cond,
			Body:    body,
		})
	}

	var elseBranch []ast.Stmt
	if p.has(TOK_ELSE) {
		p.next()

		// An empty ELSE still has to be distinguishable from no ELSE at all.
		elseBranch = p.parseStmts()
		if elseBranch == nil {
			elseBranch = []ast.Stmt{}
		}
	}

	p.want(TOK_END)

	return &ast.IfStmt{
		ASTBase:      p.newBase(startSpan),
		CondBranches: condBranches,
		ElseBranch:   elseBranch,
	}
}

// while_stmt = 'WHILE' expr 'DO' stmts 'END' ;
func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	startSpan := p.want(TOK_WHILE).Span

	cond := p.parseExpr()
	p.want(TOK_DO)
	body := p.parseStmts()
	p.want(TOK_END)

	return &ast.WhileStmt{
		ASTBase: p.newBase(startSpan),
		Cond:    cond,
		Body:    body,
	}
}

// return_stmt = 'RETURN' [expr] ;
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	startSpan := p.want(TOK_RETURN).Span

	var value ast.Expr
	if !p.hasOneOf(TOK_SEMI, TOK_END, TOK_ELSE, TOK_ELSIF) {
		value = p.parseExpr()
	}

	return &ast.ReturnStmt{
		ASTBase: p.newBase(startSpan),
		Value:   value,
	}
}
