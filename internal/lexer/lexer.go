package lexer

import (
	"io"
	"strings"
	"unicode"

	"chomsky/internal/token"
)

var escapes = map[rune]rune{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'\\': '\\',
	'"':  '"',
	'0':  0,
	'b':  '\b',
	'f':  '\f',
	'v':  '\v',
}

// Scanner turns the characters of a Cursor into tokens. Identifier spellings
// are interned for the lifetime of the scanner, so repeated identifiers in one
// scan share their backing string.
type Scanner struct {
	c      *Cursor
	idents map[string]string
	order  []string
}

func New(c *Cursor) *Scanner {
	return &Scanner{c: c, idents: map[string]string{}}
}

func NewReader(r io.RuneReader) *Scanner { return New(NewCursor(r)) }

func NewString(src string) *Scanner { return New(NewStringCursor(src)) }

// Tokens scans src in one call.
func Tokens(src string, lineSeparators bool) ([]token.Token, error) {
	return NewString(src).Scan(lineSeparators)
}

// Identifiers returns the interned identifier names in first-seen order.
func (s *Scanner) Identifiers() []string {
	return append([]string(nil), s.order...)
}

// Scan consumes the whole source. With lineSeparators set, bare CR/LF
// characters become line separator tokens instead of whitespace. The first
// malformed lexeme aborts the scan; no partial token list is returned.
func (s *Scanner) Scan(lineSeparators bool) ([]token.Token, error) {
	var toks []token.Token
	for !s.c.EOF() {
		tok, ok, err := s.next(lineSeparators)
		if err != nil {
			return nil, err
		}
		if ok {
			toks = append(toks, tok)
		}
	}
	if err := s.c.Err(); err != nil {
		return nil, errorAt(ErrRead, s.c.Row(), s.c.Col(), err.Error())
	}
	return toks, nil
}

func (s *Scanner) next(lineSeparators bool) (token.Token, bool, error) {
	ch := s.c.Top()
	row, col := s.c.Row(), s.c.Col()

	switch {
	case isDigit(ch):
		tok, err := s.scanNumber()
		return tok, err == nil, err

	case ch == '"':
		tok, err := s.scanString()
		return tok, err == nil, err

	case isWordStart(ch):
		return s.scanWord(), true, nil

	case ch == '/':
		// Comment first; a lone '/' falls through to the operator table.
		tok, err := s.scanCommentOrSlash()
		return tok, err == nil, err

	case isOperatorStart(ch):
		s.c.Consume()
		return s.scanOperator(ch, row, col), true, nil

	case lineSeparators && ch == '\r':
		s.c.Consume()
		if s.c.Top() == '\n' {
			s.c.Consume()
			return token.Token{Type: token.CRLF, Line: row, Col: col}, true, nil
		}
		return token.Token{Type: token.CR, Line: row, Col: col}, true, nil

	case lineSeparators && ch == '\n':
		s.c.Consume()
		return token.Token{Type: token.LF, Line: row, Col: col}, true, nil

	case unicode.IsSpace(ch):
		s.c.Consume()
		return token.Token{}, false, nil
	}

	if tt, ok := token.LookupPunctuation(ch); ok {
		s.c.Consume()
		return token.Token{Type: tt, Literal: string(ch), Line: row, Col: col}, true, nil
	}
	return token.Token{}, false, errorAt(ErrUnexpectedChar, row, col, string(ch))
}

func (s *Scanner) scanNumber() (token.Token, error) {
	row, col := s.c.Row(), s.c.Col()

	var b strings.Builder
	if s.c.Top() == '0' {
		b.WriteRune(s.c.Consume())
		if isDigit(s.c.Top()) {
			return token.Token{}, errorAt(ErrNumberPrefix, row, col, "0")
		}
	} else {
		for isDigit(s.c.Top()) {
			b.WriteRune(s.c.Consume())
		}
	}

	if s.c.Top() != '.' {
		return token.Token{Type: token.INT, Literal: b.String(), Line: row, Col: col}, nil
	}

	b.WriteRune(s.c.Consume())
	if !isDigit(s.c.Top()) {
		return token.Token{}, s.postfixError()
	}
	for isDigit(s.c.Top()) {
		b.WriteRune(s.c.Consume())
	}

	lit := b.String()
	switch ch := s.c.Top(); {
	case ch == 'f' || ch == 'F':
		s.c.Consume()
		return token.Token{Type: token.FLOAT, Literal: lit, Raw: lit + string(ch), Line: row, Col: col}, nil
	case ch == EOF || unicode.IsSpace(ch):
		return token.Token{Type: token.DOUBLE, Literal: lit, Line: row, Col: col}, nil
	}
	return token.Token{}, s.postfixError()
}

func (s *Scanner) postfixError() *Error {
	text := "EOF"
	if !s.c.EOF() {
		text = string(s.c.Top())
	}
	return errorAt(ErrNumberPostfix, s.c.Row(), s.c.Col(), text)
}

func (s *Scanner) scanString() (token.Token, error) {
	row, col := s.c.Row(), s.c.Col()
	var raw, val strings.Builder

	raw.WriteRune(s.c.Consume()) // opening quote
	for !s.c.EOF() && s.c.Top() != '"' {
		ch := s.c.Top()
		if ch == '\r' || ch == '\n' {
			return token.Token{}, errorAt(ErrUnterminatedString, s.c.Row(), s.c.Col(), "")
		}
		if ch != '\\' {
			raw.WriteRune(s.c.Consume())
			val.WriteRune(ch)
			continue
		}

		escRow, escCol := s.c.Row(), s.c.Col()
		raw.WriteRune(s.c.Consume())
		next := s.c.Top()
		actual, ok := escapes[next]
		if !ok {
			seq := `\`
			if next != EOF {
				seq += string(next)
			}
			return token.Token{}, errorAt(ErrInvalidEscape, escRow, escCol, seq)
		}
		raw.WriteRune(s.c.Consume())
		val.WriteRune(actual)
	}
	if s.c.EOF() {
		return token.Token{}, errorAt(ErrUnterminatedString, s.c.Row(), s.c.Col(), "")
	}
	raw.WriteRune(s.c.Consume()) // closing quote

	return token.Token{Type: token.STRING, Literal: val.String(), Raw: raw.String(), Line: row, Col: col}, nil
}

func (s *Scanner) scanWord() token.Token {
	row, col := s.c.Row(), s.c.Col()
	var b strings.Builder
	for isWordChar(s.c.Top()) {
		b.WriteRune(s.c.Consume())
	}
	word := b.String()

	if tt, ok := token.LookupKeyword(word); ok {
		return token.Token{Type: tt, Literal: word, Line: row, Col: col}
	}
	if word == "true" || word == "false" {
		return token.Token{Type: token.BOOL, Literal: word, Line: row, Col: col}
	}
	if tt, ok := token.LookupPrimitive(word); ok {
		return token.Token{Type: tt, Literal: word, Line: row, Col: col}
	}
	return token.Token{Type: token.IDENT, Literal: s.intern(word), Line: row, Col: col}
}

func (s *Scanner) intern(name string) string {
	if id, ok := s.idents[name]; ok {
		return id
	}
	s.idents[name] = name
	s.order = append(s.order, name)
	return name
}

func (s *Scanner) scanCommentOrSlash() (token.Token, error) {
	row, col := s.c.Row(), s.c.Col()
	s.c.Consume() // '/'

	switch s.c.Top() {
	case '/':
		s.c.Consume()
		var b strings.Builder
		for !s.c.EOF() && s.c.Top() != '\n' {
			b.WriteRune(s.c.Consume())
		}
		// The newline stays for the next token.
		lit := b.String()
		return token.Token{Type: token.LINE_COMMENT, Literal: lit, Raw: "//" + lit, Line: row, Col: col}, nil

	case '*':
		s.c.Consume()
		var b strings.Builder
		for !s.c.EOF() {
			if s.c.Top() != '*' {
				b.WriteRune(s.c.Consume())
				continue
			}
			star := s.c.Consume()
			if s.c.Top() == '/' {
				s.c.Consume()
				lit := b.String()
				return token.Token{Type: token.BLOCK_COMMENT, Literal: lit, Raw: "/*" + lit + "*/", Line: row, Col: col}, nil
			}
			b.WriteRune(star)
		}
		return token.Token{}, errorAt(ErrUnterminatedComment, row, col, "")
	}

	return s.scanOperator('/', row, col), nil
}

// scanOperator finishes an operator whose first character has already been
// consumed.
func (s *Scanner) scanOperator(first rune, row, col int) token.Token {
	if s.c.Top() != EOF {
		two := string(first) + string(s.c.Top())
		if tt, ok := token.LookupOperator(two); ok {
			s.c.Consume()
			return token.Token{Type: tt, Literal: two, Line: row, Col: col}
		}
	}
	tt, _ := token.LookupOperator(string(first))
	return token.Token{Type: tt, Literal: string(first), Line: row, Col: col}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isWordStart(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isWordChar(ch rune) bool {
	return isWordStart(ch) || isDigit(ch)
}

func isOperatorStart(ch rune) bool {
	switch ch {
	case '!', '+', '-', '*', '<', '>', '=':
		return true
	}
	return false
}
