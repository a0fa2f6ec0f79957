package syntax

import "beblang/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.
	Value string

	// The text span over which the token exists.  This may not directly
	// correspond to its value: eg. the value of a string token has the
	// surrounding quotes trimmed off and its escape sequences decoded.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_MODULE = iota
	TOK_VAR
	TOK_PROCEDURE
	TOK_BEGIN
	TOK_END

	TOK_IF
	TOK_THEN
	TOK_ELSIF
	TOK_ELSE
	TOK_WHILE
	TOK_DO
	TOK_EXIT
	TOK_RETURN

	TOK_ARRAY
	TOK_OF
	TOK_INTEGER
	TOK_REAL
	TOK_STRING
	TOK_BOOLEAN

	TOK_TRUE
	TOK_FALSE

	TOK_OR
	TOK_AND
	TOK_MOD

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_AMP
	TOK_TILDE

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_ASSIGN

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_COMMA
	TOK_DOT
	TOK_SEMI
	TOK_COLON

	TOK_IDENT
	TOK_INTLIT
	TOK_REALLIT
	TOK_STRINGLIT

	TOK_EOF
)
