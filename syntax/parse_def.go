package syntax

import (
	"strconv"

	"beblang/ast"
	"beblang/types"
)

// module = 'MODULE' ident ';' [var_block] {subprogram} ['BEGIN' stmts] 'END' ident '.' ;
func (p *Parser) parseModule() *ast.Module {
	startSpan := p.want(TOK_MODULE).Span

	name := p.parseIdent()
	p.want(TOK_SEMI)

	var vars []*ast.VarDecl
	if p.has(TOK_VAR) {
		vars = p.parseVarBlock()
	}

	var subprograms []ast.ASTNode
	for p.has(TOK_PROCEDURE) {
		subprograms = append(subprograms, p.parseSubprogram())
	}

	var body []ast.Stmt
	if p.has(TOK_BEGIN) {
		p.next()
		body = p.parseStmts()
	}

	p.want(TOK_END)
	p.parseEndName(name)
	p.want(TOK_DOT)

	if !p.has(TOK_EOF) {
		p.reject()
	}

	return &ast.Module{
		ASTBase:     p.newBase(startSpan),
		Name:        name,
		Vars:        vars,
		Subprograms: subprograms,
		Body:        body,
	}
}

// var_block = 'VAR' {var_decl ';'} ;
func (p *Parser) parseVarBlock() []*ast.VarDecl {
	p.want(TOK_VAR)

	var vars []*ast.VarDecl
	for p.has(TOK_IDENT) {
		vars = append(vars, p.parseVarDecl())
		p.want(TOK_SEMI)
	}

	return vars
}

// var_decl = ident {',' ident} ':' type ;
func (p *Parser) parseVarDecl() *ast.VarDecl {
	startSpan := p.tok.Span

	names := []*ast.Ident{p.parseIdent()}
	for p.has(TOK_COMMA) {
		p.next()
		names = append(names, p.parseIdent())
	}

	p.want(TOK_COLON)
	typ := p.parseType()

	return &ast.VarDecl{
		ASTBase: p.newBase(startSpan),
		Names:   names,
		Type:    typ,
	}
}

// type = 'INTEGER' | 'REAL' | 'STRING' | 'BOOLEAN' | 'ARRAY' int_lit 'OF' type ;
func (p *Parser) parseType() types.DataType {
	switch p.tok.Kind {
	case TOK_INTEGER:
		p.next()
		return types.Integer
	case TOK_REAL:
		p.next()
		return types.Real
	case TOK_STRING:
		p.next()
		return types.String
	case TOK_BOOLEAN:
		p.next()
		return types.Boolean
	case TOK_ARRAY:
		p.next()

		sizeTok := p.want(TOK_INTLIT)
		size, err := strconv.Atoi(sizeTok.Value)
		if err != nil || size < 1 {
			p.error(sizeTok.Span, "invalid array size: `%s`", sizeTok.Value)
		}

		p.want(TOK_OF)
		return types.NewArray(p.parseType(), size)
	}

	p.reject()
	return nil
}

// subprogram = heading ';' [[var_block] 'BEGIN' stmts 'END' ident ';'] ;
//
// A heading which is not followed by a body is a forward declaration.
func (p *Parser) parseSubprogram() ast.ASTNode {
	startSpan := p.tok.Span

	heading := p.parseSubprogramHeading()
	p.want(TOK_SEMI)

	if !p.hasOneOf(TOK_VAR, TOK_BEGIN) {
		return &ast.SubprogramDecl{
			ASTBase: p.newBase(startSpan),
			Heading: heading,
		}
	}

	var vars []*ast.VarDecl
	if p.has(TOK_VAR) {
		vars = p.parseVarBlock()
	}

	p.want(TOK_BEGIN)
	body := p.parseStmts()
	p.want(TOK_END)
	p.parseEndName(heading.Name)
	p.want(TOK_SEMI)

	return &ast.Subprogram{
		ASTBase: p.newBase(startSpan),
		Heading: heading,
		Vars:    vars,
		Body:    body,
	}
}

// heading = 'PROCEDURE' ident ['(' [var_decl {';' var_decl}] ')'] [':' type] ;
func (p *Parser) parseSubprogramHeading() *ast.SubprogramHeading {
	startSpan := p.want(TOK_PROCEDURE).Span
	name := p.parseIdent()

	var params []*ast.VarDecl
	if p.has(TOK_LPAREN) {
		p.next()

		if !p.has(TOK_RPAREN) {
			params = append(params, p.parseVarDecl())

			for p.has(TOK_SEMI) {
				p.next()
				params = append(params, p.parseVarDecl())
			}
		}

		p.want(TOK_RPAREN)
	}

	var returnType types.DataType = types.Void
	if p.has(TOK_COLON) {
		p.next()
		returnType = p.parseType()
	}

	return &ast.SubprogramHeading{
		ASTBase:    p.newBase(startSpan),
		Name:       name,
		Params:     params,
		ReturnType: returnType,
	}
}

// -----------------------------------------------------------------------------

// parseIdent parses a single identifier.
func (p *Parser) parseIdent() *ast.Ident {
	tok := p.want(TOK_IDENT)
	return &ast.Ident{Name: tok.Value, Span: tok.Span}
}

// parseEndName parses the name closing a module or subprogram and checks that
// it matches the opening name.
func (p *Parser) parseEndName(opening *ast.Ident) {
	closing := p.parseIdent()
	if closing.Name != opening.Name {
		p.error(closing.Span, "expected `END %s` but got `END %s`", opening.Name, closing.Name)
	}
}
