package syntax

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"beblang/report"
)

// Lexer is responsible for tokenizing a source file.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer for the given source file.
func NewLexer(file *bufio.Reader) *Lexer {
	return &Lexer{
		file:    file,
		tokBuff: &strings.Builder{},
		line:    0,
		col:     0,
	}
}

// NextToken retrieves the next token from the input file. If the file has
// ended, this will be an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '(':
			if tok, err := l.lexCommentOrParen(); tok != nil || err != nil {
				return tok, err
			}
		case '"':
			return l.lexStringLit()
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF), nil
}

// -----------------------------------------------------------------------------

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	"/": TOK_DIV,
	"&": TOK_AMP,
	"~": TOK_TILDE,

	"=":  TOK_EQ,
	"#":  TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	":=": TOK_ASSIGN,

	// Opening parentheses are handled with comment logic.
	")": TOK_RPAREN,
	"[": TOK_LBRACKET,
	"]": TOK_RBRACKET,
	",": TOK_COMMA,
	".": TOK_DOT,
	";": TOK_SEMI,
	":": TOK_COLON,
}

// lexPunctOrOper lexes a punctuation or operator symbol.
func (l *Lexer) lexPunctOrOper() (*Token, error) {
	l.mark()
	l.eat()

	kind, ok := symbolPatterns[l.tokBuff.String()]
	if !ok {
		return nil, report.Raise(report.SyntaxError, l.getSpan(), "unknown rune: `%s`", l.tokBuff.String())
	}

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if c == -1 {
			break
		}

		if _kind, ok := symbolPatterns[l.tokBuff.String()+string(c)]; ok {
			l.eat()
			kind = _kind
		} else {
			break
		}
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// keywordPatterns maps keyword strings (patterns) to their keyword token kind.
// Keywords are case-sensitive and always upper case.
var keywordPatterns = map[string]int{
	"MODULE":    TOK_MODULE,
	"VAR":       TOK_VAR,
	"PROCEDURE": TOK_PROCEDURE,
	"BEGIN":     TOK_BEGIN,
	"END":       TOK_END,

	"IF":     TOK_IF,
	"THEN":   TOK_THEN,
	"ELSIF":  TOK_ELSIF,
	"ELSE":   TOK_ELSE,
	"WHILE":  TOK_WHILE,
	"DO":     TOK_DO,
	"EXIT":   TOK_EXIT,
	"RETURN": TOK_RETURN,

	"ARRAY":   TOK_ARRAY,
	"OF":      TOK_OF,
	"INTEGER": TOK_INTEGER,
	"REAL":    TOK_REAL,
	"STRING":  TOK_STRING,
	"BOOLEAN": TOK_BOOLEAN,

	"TRUE":  TOK_TRUE,
	"FALSE": TOK_FALSE,

	"OR":  TOK_OR,
	"AND": TOK_AND,
	"MOD": TOK_MOD,
}

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if !isFirstIdentChar(c) && !isDecimalDigit(c) {
			break
		}

		l.eat()
	}

	var kind int
	if _kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		kind = _kind
	} else {
		kind = TOK_IDENT
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// lexNumericLit lexes an integer or real literal.  Real literals must have at
// least one digit after the decimal point and may have a decimal exponent: eg.
// `1.5`, `2.0E-3`.
func (l *Lexer) lexNumericLit() (*Token, error) {
	l.mark()
	l.eat()

	kind := TOK_INTLIT
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if isDecimalDigit(c) {
			l.eat()
		} else if c == '.' && kind == TOK_INTLIT {
			kind = TOK_REALLIT
			l.eat()

			if err := l.eatDigits(); err != nil {
				return nil, err
			}
		} else if (c == 'E' || c == 'e') && kind == TOK_REALLIT {
			l.eat()

			c, err = l.peek()
			if err != nil {
				return nil, err
			}

			if c == '-' || c == '+' {
				l.eat()
			}

			if err := l.eatDigits(); err != nil {
				return nil, err
			}

			break
		} else {
			break
		}
	}

	return l.makeToken(kind), nil
}

// eatDigits consumes a non-empty run of decimal digits.
func (l *Lexer) eatDigits() error {
	c, err := l.peek()
	if err != nil {
		return err
	} else if !isDecimalDigit(c) {
		return report.Raise(report.SyntaxError, l.getSpan(), "incomplete numeric literal")
	}

	for isDecimalDigit(c) {
		l.eat()

		if c, err = l.peek(); err != nil {
			return err
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// lexStringLit lexes a string literal.  The escape sequences of the literal are
// decoded as it is lexed.
func (l *Lexer) lexStringLit() (*Token, error) {
	l.mark()
	l.skip()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		switch c {
		case -1:
			return nil, report.Raise(report.UnexpectedEOF, l.getSpan(), "unclosed string literal")
		case '"':
			l.skip()
			return l.makeToken(TOK_STRINGLIT), nil
		case '\\':
			l.skip()
			if err = l.eatEscapeSequence(); err != nil {
				return nil, err
			}
		case '\n':
			return nil, report.Raise(report.SyntaxError, l.getSpan(), "string literal cannot contain a newline")
		default:
			l.eat()
		}
	}
}

// eatEscapeSequence decodes an escape sequence into the token buffer.  This
// assumes the leading `\` has already been consumed.
func (l *Lexer) eatEscapeSequence() error {
	c, err := l.skip()
	if err != nil {
		return err
	}

	switch c {
	case -1:
		return report.Raise(report.UnexpectedEOF, l.getSpan(), "expected escape sequence not end of file")
	case 'n':
		l.tokBuff.WriteRune('\n')
	case 't':
		l.tokBuff.WriteRune('\t')
	case '"', '\\':
		l.tokBuff.WriteRune(c)
	default:
		return report.Raise(report.SyntaxError, l.getSpan(), "unknown escape sequence: `\\%c`", c)
	}

	return nil
}

// -----------------------------------------------------------------------------

// lexCommentOrParen lexes a `(* ... *)` comment or an opening parenthesis.
// Comments may nest.  It returns a nil token if a comment was skipped.
func (l *Lexer) lexCommentOrParen() (*Token, error) {
	l.mark()
	l.eat()

	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	if c != '*' {
		return l.makeToken(TOK_LPAREN), nil
	}

	l.tokBuff.Reset()
	l.skip()

	depth := 1
	for depth > 0 {
		c, err = l.skip()
		if err != nil {
			return nil, err
		}

		switch c {
		case -1:
			return nil, report.Raise(report.UnexpectedEOF, l.getSpan(), "unclosed comment")
		case '*':
			if c, err = l.peek(); err != nil {
				return nil, err
			} else if c == ')' {
				l.skip()
				depth--
			}
		case '(':
			if c, err = l.peek(); err != nil {
				return nil, err
			} else if c == '*' {
				l.skip()
				depth++
			}
		}
	}

	return nil, nil
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start line and column to its current position.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Value: value,
		Span:  l.getSpan(),
	}
}

// getSpan calculates a text span based on the lexer's current state.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
// If the lexer encounters an EOF, -1 is returned as the rune value.
func (l *Lexer) eat() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)
	l.tokBuff.WriteRune(c)

	return c, nil
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the lexer encounters an EOF, -1 is returned as the rune
// value.
func (l *Lexer) skip() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)

	return c, nil
}

// peek returns the next rune in the file without moving the lexer forward or
// writing the rune to the token buffer.  If the lexer encounters an EOF, -1 is
// returned as rune value.
func (l *Lexer) peek() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	if err = l.file.UnreadRune(); err != nil {
		return 0, err
	}

	return c, nil
}

// updatePos updates the lexer's position based on input character.
func (l *Lexer) updatePos(c rune) {
	switch c {
	case '\n':
		l.line++
		l.col = 0
	case '\t':
		l.col += 4
	default:
		l.col++
	}
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isFirstIdentChar returns whether c could be the first rune of an identifier.
func isFirstIdentChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}
