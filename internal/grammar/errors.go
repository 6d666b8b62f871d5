package grammar

import "fmt"

type ErrorKind int

const (
	ErrMissingBracket ErrorKind = iota + 1
	ErrMissingComma
	ErrMissingArrow
	ErrIncompleteSet
	ErrUnexpectedToken
	ErrUndefinedLetter
	ErrNoNonTerminal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrMissingBracket:
		return "missing bracket"
	case ErrMissingComma:
		return "missing comma"
	case ErrMissingArrow:
		return "missing '>'"
	case ErrIncompleteSet:
		return "incomplete set"
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrUndefinedLetter:
		return "undefined letter"
	case ErrNoNonTerminal:
		return "no non-terminal on left side"
	}
	return "unknown"
}

// Error is a structural failure of a grammar description or a violated
// classifier precondition. Producer is set only for ErrNoNonTerminal.
type Error struct {
	Kind     ErrorKind
	Detail   string
	Producer *Producer
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrMissingBracket:
		return fmt.Sprintf("missing %s", e.Detail)
	case ErrMissingComma:
		return fmt.Sprintf("missing ',' %s", e.Detail)
	case ErrMissingArrow:
		return fmt.Sprintf("producer %s has no '>'", e.Detail)
	case ErrIncompleteSet:
		return fmt.Sprintf("incomplete %s", e.Detail)
	case ErrUnexpectedToken:
		return fmt.Sprintf("unexpected token %s", e.Detail)
	case ErrUndefinedLetter:
		return fmt.Sprintf("undefined letter: %s", e.Detail)
	case ErrNoNonTerminal:
		return fmt.Sprintf("left side must contain at least one non-terminal: %s", e.Producer)
	}
	return e.Kind.String()
}
