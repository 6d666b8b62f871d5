package parser

import (
	"fmt"

	"chomsky/internal/token"
)

type ErrorKind int

const (
	ErrExpectToken ErrorKind = iota + 1
	ErrExpectType
	ErrExpectIdentifier
	ErrExpectSeparator
	ErrMustInitialize
	ErrRedefined
	ErrUndefinedPrimitive
	ErrUnexpectedState
)

func (k ErrorKind) String() string {
	switch k {
	case ErrExpectToken:
		return "expected token"
	case ErrExpectType:
		return "expected type"
	case ErrExpectIdentifier:
		return "expected identifier"
	case ErrExpectSeparator:
		return "expected statement separator"
	case ErrMustInitialize:
		return "variable must be initialized"
	case ErrRedefined:
		return "redefined identifier"
	case ErrUndefinedPrimitive:
		return "undefined primitive type"
	case ErrUnexpectedState:
		return "unexpected parse state"
	}
	return "unknown"
}

// Error is a parse failure. Index is the 0-based position of Token in the
// comment-free token sequence the parser was given.
type Error struct {
	Kind   ErrorKind
	Index  int
	Token  token.Token
	Want   token.Type // ErrExpectToken only
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (at token %d)", e.Message(), e.Index)
}

func (e *Error) Message() string {
	switch e.Kind {
	case ErrExpectToken:
		return fmt.Sprintf("expected %q, got %s", string(e.Want), e.Token)
	case ErrExpectType:
		return fmt.Sprintf("expected a type, got %s", e.Token)
	case ErrExpectIdentifier:
		return fmt.Sprintf("expected an identifier, got %s", e.Token)
	case ErrExpectSeparator:
		return "statements must be separated by ';' or a new line"
	case ErrMustInitialize:
		return fmt.Sprintf("variable %s must be initialized", e.Detail)
	case ErrRedefined:
		return fmt.Sprintf("identifier %s is already defined in this scope", e.Detail)
	case ErrUndefinedPrimitive:
		return fmt.Sprintf("undefined primitive type: %s", e.Token.Literal)
	case ErrUnexpectedState:
		if e.Detail != "" {
			return e.Detail
		}
		return fmt.Sprintf("unexpected %s", e.Token)
	}
	return e.Kind.String()
}
