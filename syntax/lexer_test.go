package syntax

import (
	"bufio"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func lexAll(t *testing.T, src string) []*Token {
	t.Helper()

	l := NewLexer(bufio.NewReader(strings.NewReader(src)))

	var toks []*Token
	for {
		tok, err := l.NextToken()
		be.Err(t, err, nil)

		if tok.Kind == TOK_EOF {
			return toks
		}

		toks = append(toks, tok)
	}
}

func tokenKinds(toks []*Token) []int {
	kinds := make([]int, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}

	return kinds
}

func TestLexKeywordsAndIdents(t *testing.T) {
	toks := lexAll(t, "MODULE Foo; VAR x: INTEGER;")

	be.Equal(t, tokenKinds(toks), []int{
		TOK_MODULE, TOK_IDENT, TOK_SEMI, TOK_VAR, TOK_IDENT, TOK_COLON, TOK_INTEGER, TOK_SEMI,
	})
	be.Equal(t, toks[1].Value, "Foo")
}

func TestLexOperators(t *testing.T) {
	toks := lexAll(t, ":= = # < <= > >= + - * / & ~ : ( ) [ ]")

	be.Equal(t, tokenKinds(toks), []int{
		TOK_ASSIGN, TOK_EQ, TOK_NEQ, TOK_LT, TOK_LTEQ, TOK_GT, TOK_GTEQ,
		TOK_PLUS, TOK_MINUS, TOK_STAR, TOK_DIV, TOK_AMP, TOK_TILDE, TOK_COLON,
		TOK_LPAREN, TOK_RPAREN, TOK_LBRACKET, TOK_RBRACKET,
	})
}

func TestLexNumbers(t *testing.T) {
	toks := lexAll(t, "42 3.14 2.5E-3 7")

	be.Equal(t, tokenKinds(toks), []int{TOK_INTLIT, TOK_REALLIT, TOK_REALLIT, TOK_INTLIT})
	be.Equal(t, toks[0].Value, "42")
	be.Equal(t, toks[1].Value, "3.14")
	be.Equal(t, toks[2].Value, "2.5E-3")
}

func TestLexStringEscapes(t *testing.T) {
	toks := lexAll(t, `"a\tb\n\"q\"\\"`)

	be.Equal(t, len(toks), 1)
	be.Equal(t, toks[0].Kind, TOK_STRINGLIT)
	be.Equal(t, toks[0].Value, "a\tb\n\"q\"\\")
}

func TestLexNestedComments(t *testing.T) {
	toks := lexAll(t, "x (* outer (* inner *) still outer *) y")

	be.Equal(t, tokenKinds(toks), []int{TOK_IDENT, TOK_IDENT})
	be.Equal(t, toks[1].Value, "y")
}

func TestLexSpans(t *testing.T) {
	toks := lexAll(t, "a\n  bc")

	be.Equal(t, toks[1].Span.StartLine, 1)
	be.Equal(t, toks[1].Span.StartCol, 2)
	be.Equal(t, toks[1].Span.EndCol, 4)
}

func TestLexUnclosedString(t *testing.T) {
	l := NewLexer(bufio.NewReader(strings.NewReader(`"abc`)))

	_, err := l.NextToken()
	be.True(t, IsIncomplete(err))
}
