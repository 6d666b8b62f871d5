package lexer

import "fmt"

type ErrorKind int

const (
	ErrUnterminatedString ErrorKind = iota + 1
	ErrInvalidEscape
	ErrUnexpectedChar
	ErrNumberPrefix
	ErrNumberPostfix
	ErrUnterminatedComment
	ErrRead
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnterminatedString:
		return "unterminated string"
	case ErrInvalidEscape:
		return "invalid escape"
	case ErrUnexpectedChar:
		return "unexpected character"
	case ErrNumberPrefix:
		return "unsupported number prefix"
	case ErrNumberPostfix:
		return "unsupported number postfix"
	case ErrUnterminatedComment:
		return "unterminated comment"
	case ErrRead:
		return "read error"
	}
	return "unknown"
}

// Error is a scanner failure at a 1-based row/column. Text holds the
// offending escape sequence, character, prefix or postfix, depending on Kind.
type Error struct {
	Kind ErrorKind
	Row  int
	Col  int
	Text string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Row, e.Col, e.Message())
}

// Message is the error description without the position prefix.
func (e *Error) Message() string {
	switch e.Kind {
	case ErrUnterminatedString:
		return `string literal must be closed with '"'`
	case ErrInvalidEscape:
		return fmt.Sprintf("invalid escape sequence: %s", e.Text)
	case ErrUnexpectedChar:
		return fmt.Sprintf("unexpected character: %q", e.Text)
	case ErrNumberPrefix:
		return fmt.Sprintf("unsupported number literal prefix: %s", e.Text)
	case ErrNumberPostfix:
		return fmt.Sprintf("unsupported number literal postfix: %s", e.Text)
	case ErrUnterminatedComment:
		return "multi-line comment is not closed with '*/'"
	case ErrRead:
		return "reading source: " + e.Text
	}
	return e.Kind.String()
}

func errorAt(kind ErrorKind, row, col int, text string) *Error {
	return &Error{Kind: kind, Row: row, Col: col, Text: text}
}
