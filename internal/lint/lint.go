package lint

import (
	"chomsky/internal/ast"
	"chomsky/internal/diag"
)

type Options struct {
	CheckShadowing bool
}

func DefaultOptions() Options {
	return Options{CheckShadowing: true}
}

type Linter struct {
	opts Options
}

func New() *Linter {
	return &Linter{opts: DefaultOptions()}
}

func NewWithOptions(opts Options) *Linter {
	return &Linter{opts: opts}
}

func Run(program *ast.Statements) []diag.Diagnostic {
	return New().Run(program)
}

func RunWithOptions(program *ast.Statements, opts Options) []diag.Diagnostic {
	return NewWithOptions(opts).Run(program)
}

func (l *Linter) Run(program *ast.Statements) []diag.Diagnostic {
	if program == nil {
		return nil
	}
	r := &Runner{sc: newScope(nil), opts: l.opts}
	r.walkStatements(program)
	return r.diags
}
