package diag

import (
	"errors"
	"fmt"

	"chomsky/internal/grammar"
	"chomsky/internal/lexer"
	"chomsky/internal/parser"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

type Range struct {
	Line   int // 1-based
	Col    int // 1-based
	Length int // best-effort; can be 1 if unknown
}

type Diagnostic struct {
	Code     string
	Message  string
	Severity Severity
	Range    Range
}

func (d Diagnostic) Format(path string) string {
	if d.Code != "" {
		return fmt.Sprintf("%s:%d:%d: %s %s: %s", path, d.Range.Line, d.Range.Col, d.Severity.String(), d.Code, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", path, d.Range.Line, d.Range.Col, d.Severity.String(), d.Message)
}

// FromError converts a scanner, grammar or parser error into a Diagnostic.
// Codes are S0xx for the scanner, G0xx for grammars and P0xx for the parser.
// Grammar errors carry no position and are reported at 1:1. Any other error
// keeps its text and gets no code.
func FromError(err error) Diagnostic {
	d := Diagnostic{Severity: SeverityError, Range: Range{Line: 1, Col: 1, Length: 1}}

	var se *lexer.Error
	var ge *grammar.Error
	var pe *parser.Error
	switch {
	case errors.As(err, &se):
		d.Code = fmt.Sprintf("S%03d", int(se.Kind))
		d.Message = se.Message()
		d.Range = Range{Line: atLeastOne(se.Row), Col: atLeastOne(se.Col), Length: 1}
		if se.Kind == lexer.ErrInvalidEscape {
			d.Range.Length = len([]rune(se.Text))
		}
	case errors.As(err, &ge):
		d.Code = fmt.Sprintf("G%03d", int(ge.Kind))
		d.Message = ge.Error()
	case errors.As(err, &pe):
		d.Code = fmt.Sprintf("P%03d", int(pe.Kind))
		d.Message = pe.Message()
		d.Range = Range{Line: atLeastOne(pe.Token.Line), Col: atLeastOne(pe.Token.Col), Length: atLeastOne(pe.Token.Len())}
	default:
		d.Message = err.Error()
	}
	return d
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
