package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"beblang/ast"
	"beblang/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is the parser for a Beblang source file.  It is a recursive descent
// parser: all parsing functions assume that they begin with the parser centered
// on the first token of their production and must consume all tokens
// (including the last) of their production, leaving the parser on the next
// token.  Syntax errors are raised as panics of *report.LocalCompileError and
// caught at the boundary of Parse.  Parsers are created once per file.
type Parser struct {
	// lexer is the Lexer this parser is using to lex the source file.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// lookbehind is the token the parser was positioned on before the current
	// token.
	lookbehind *Token

	// ids assigns node IDs to the AST nodes as they are created.
	ids *ast.IDGen
}

// NewParser creates a new parser for the given source reader.
func NewParser(r io.Reader) *Parser {
	return &Parser{
		lexer: NewLexer(bufio.NewReader(r)),
		ids:   &ast.IDGen{},
	}
}

// Parse parses a module.  It returns a *report.LocalCompileError if the source
// has a syntax error.
func (p *Parser) Parse() (mod *ast.Module, err error) {
	defer func() {
		if x := recover(); x != nil {
			if cerr, ok := x.(*report.LocalCompileError); ok {
				mod = nil
				err = cerr
			} else {
				panic(x)
			}
		}
	}()

	// Move the parser onto the first token.
	p.next()

	mod = p.parseModule()
	mod.NodeCount = p.ids.Count()
	return mod, nil
}

// ParseString parses a module from a string of source text.
func ParseString(src string) (*ast.Module, error) {
	return NewParser(strings.NewReader(src)).Parse()
}

// IsIncomplete returns whether the error returned by Parse was caused by the
// input ending early: ie. more input might make the source valid.
func IsIncomplete(err error) bool {
	if cerr, ok := err.(*report.LocalCompileError); ok {
		return cerr.Kind == report.UnexpectedEOF
	}

	return false
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	tok, err := p.lexer.NextToken()
	if err != nil {
		if cerr, ok := err.(*report.LocalCompileError); ok {
			panic(cerr)
		}

		panic(report.Raise(report.SyntaxError, nil, "failed to read source: %s", err))
	}

	p.lookbehind = p.tok
	p.tok = tok
}

// has returns true if the parser is on a token of a given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// hasOneOf returns if the parser's current token kind is one of given kinds.
func (p *Parser) hasOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// want asserts that the parser is on a token of the given kind, moves the
// parser forward, and returns the matched token.  Any other token is rejected.
func (p *Parser) want(kind int) *Token {
	if !p.has(kind) {
		p.reject()
	}

	tok := p.tok
	p.next()
	return tok
}

// newBase creates a new AST base with a fresh node ID spanning from the start
// span to the end of the last consumed token.
func (p *Parser) newBase(start *report.TextSpan) ast.ASTBase {
	return p.ids.NewBaseOver(start, p.lookbehind.Span)
}

// -----------------------------------------------------------------------------

// reject raises an unexpected token error on the current token.
func (p *Parser) reject() {
	if p.has(TOK_EOF) {
		panic(report.Raise(report.UnexpectedEOF, p.tok.Span, "unexpected end of file"))
	}

	panic(report.Raise(report.SyntaxError, p.tok.Span, "unexpected token: `%s`", tokenText(p.tok)))
}

// error raises a syntax error on the given span.
func (p *Parser) error(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(report.SyntaxError, span, msg, args...))
}

// tokenText returns the text of a token for display in error messages.
func tokenText(tok *Token) string {
	if tok.Kind == TOK_STRINGLIT {
		return fmt.Sprintf("%q", tok.Value)
	}

	return tok.Value
}
