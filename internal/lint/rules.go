package lint

import (
	"fmt"

	"chomsky/internal/ast"
	"chomsky/internal/diag"
	"chomsky/internal/numlit"
	"chomsky/internal/scope"
	"chomsky/internal/token"
)

type scopeLevel struct {
	parent *scopeLevel
	names  map[string]bool
}

func newScope(parent *scopeLevel) *scopeLevel {
	return &scopeLevel{parent: parent, names: map[string]bool{}}
}

func (s *scopeLevel) lookup(name string) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.names[name] {
			return true
		}
	}
	return false
}

type Runner struct {
	diags []diag.Diagnostic
	sc    *scopeLevel
	opts  Options
}

func (r *Runner) warn(tok token.Token, code string, msg string) {
	r.diags = append(r.diags, diag.Diagnostic{
		Code:     code,
		Message:  msg,
		Severity: diag.SeverityWarning,
		Range: diag.Range{
			Line:   tok.Line,
			Col:    tok.Col,
			Length: tokLength(tok),
		},
	})
}

func tokLength(tok token.Token) int {
	if n := tok.Len(); n > 0 {
		return n
	}
	return 1
}

func (r *Runner) push() { r.sc = newScope(r.sc) }
func (r *Runner) pop()  { r.sc = r.sc.parent }

func (r *Runner) declare(name string, tok token.Token) {
	if r.opts.CheckShadowing && r.sc.parent != nil && r.sc.parent.lookup(name) {
		r.warn(tok, "L004", fmt.Sprintf("variable '%s' shadows outer variable", name))
	}
	r.sc.names[name] = true
}

func (r *Runner) walkStatements(stmts *ast.Statements) {
	if stmts == nil {
		return
	}
	for _, st := range stmts.List {
		r.walkStmt(st)
	}
}

func (r *Runner) walkStmt(st ast.Statement) {
	switch n := st.(type) {
	case *ast.VariableDeclaration:
		r.checkType(n.Token, n.Type)
		if n.Type.Kind == scope.Primitive && n.Type.String() == "void" {
			r.warn(n.Token, "L003", fmt.Sprintf("variable '%s' cannot have type void", n.Name))
		} else if lit, ok := n.Initializer.(*ast.Literal); ok {
			if !assignable(n.Type, lit.Token) {
				r.warn(lit.Token, "L002", fmt.Sprintf("cannot initialize %s '%s' with %s", n.Type, n.Name, lit.Token.Kind()))
			} else if overflows(n.Type, lit.Token) {
				r.warn(lit.Token, "L005", fmt.Sprintf("literal %s overflows %s", lit.Token.Literal, n.Type))
			}
		}
		r.declare(n.Name, n.Ident)

	case *ast.FunctionDeclaration:
		r.checkType(n.Token, n.ReturnType)
		r.push()
		r.walkStatements(n.Body.Statements)
		r.pop()

	case *ast.Block:
		r.push()
		r.walkStatements(n.Statements)
		r.pop()
	}
}

func (r *Runner) checkType(tok token.Token, t *scope.Type) {
	if t != nil && t.Kind == scope.Unresolved {
		r.warn(tok, "L001", fmt.Sprintf("type '%s' is never defined", t))
	}
}

// assignable reports whether a literal fits the declared primitive type.
// Unresolved types accept anything.
func assignable(t *scope.Type, lit token.Token) bool {
	if t.Kind != scope.Primitive {
		return true
	}
	switch t.String() {
	case "boolean":
		return lit.Is(token.BOOL)
	case "byte", "short", "int", "long":
		return lit.Is(token.INT)
	case "float":
		return lit.Is(token.INT) || lit.Is(token.FLOAT)
	case "double":
		return lit.IsNumber()
	case "char":
		return lit.Is(token.STRING) && len([]rune(lit.Literal)) == 1
	}
	return false
}

// overflows reports whether a number literal lies outside the range of the
// numeric primitive it initializes.
func overflows(t *scope.Type, lit token.Token) bool {
	if t.Kind != scope.Primitive || !lit.IsNumber() {
		return false
	}
	w, ok := numlit.WidthOf(t.String())
	return ok && !numlit.Fits(lit.Literal, w)
}
