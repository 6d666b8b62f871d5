package parser

import (
	"errors"
	"testing"

	"chomsky/internal/ast"
	"chomsky/internal/lexer"
	"chomsky/internal/scope"
	"chomsky/internal/token"
)

func newParser(t *testing.T, src string, lineSeparators bool) *Parser {
	t.Helper()
	toks, err := lexer.Tokens(src, lineSeparators)
	if err != nil {
		t.Fatalf("scan %q: %v", src, err)
	}
	return New(toks, lineSeparators)
}

func parse(t *testing.T, src string) *ast.Statements {
	t.Helper()
	stmts, err := newParser(t, src, false).Parse()
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return stmts
}

func TestFunctionWithVariable(t *testing.T) {
	stmts := parse(t, "void main(){ int a = 5; }")
	if len(stmts.List) != 1 {
		t.Fatalf("statements: %d", len(stmts.List))
	}
	fn, ok := stmts.List[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("not a function: %T", stmts.List[0])
	}
	if fn.Name.Full != "main" || fn.ReturnType.String() != "void" || len(fn.Arguments) != 0 {
		t.Fatalf("function = %s %s args=%d", fn.ReturnType, fn.Name, len(fn.Arguments))
	}
	body := fn.Body.Statements.List
	if len(body) != 1 {
		t.Fatalf("body: %d statements", len(body))
	}
	v, ok := body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("not a variable: %T", body[0])
	}
	lit, ok := v.Initializer.(*ast.Literal)
	if !ok {
		t.Fatalf("initializer: %T", v.Initializer)
	}
	if v.Name != "a" || v.Type.String() != "int" || !lit.Token.Is(token.INT) || lit.Token.Literal != "5" {
		t.Fatalf("variable = %s", v)
	}
}

func TestNestedFunctionsDescription(t *testing.T) {
	src := `void main(){
    int SalHe = 121;
    int nestedFun(){
        int SalHe2 = "String"; // outer names are not visible here yet
    }
    boolean hi = true;
}`
	want := `void main(){
    int SalHe = 121;
    int nestedFun(){
        int SalHe2 = "String";
    }
    boolean hi = true;
}`
	if got := parse(t, src).String(); got != want {
		t.Fatalf("description mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestStatementForms(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"int a = 5;", "int a = 5;"},
		{"int a = 5; double d = 1.5 ; boolean b = false;", "int a = 5;\ndouble d = 1.5;\nboolean b = false;"},
		{";;int a = 1;;", "int a = 1;"},
		{"void f(){};", "void f(){\n}"},
		{"void f(){} void g(){}", "void f(){\n}\nvoid g(){\n}"},
		{"float f = 2.50f;", "float f = 2.5;"},
		{`char c = "x";`, `char c = "x";`},
		{"int a = 1; void f(){ int a = 2; }", "int a = 1;\nvoid f(){\n    int a = 2;\n}"},
		{"int f = 1; void f(){}", "int f = 1;\nvoid f(){\n}"},
		{"/* header */ int a = 5; // trailing", "int a = 5;"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := parse(t, tt.src).String(); got != tt.want {
			t.Errorf("%q: got %q want %q", tt.src, got, tt.want)
		}
	}
}

func TestLineSeparators(t *testing.T) {
	src := "int a = 5\nint b = 6\r\nvoid main(){\n  int c = 7\n}\n"
	stmts, err := newParser(t, src, true).Parse()
	if err != nil {
		t.Fatal(err)
	}
	want := "int a = 5;\nint b = 6;\nvoid main(){\n    int c = 7;\n}"
	if got := stmts.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	_, err = newParser(t, "int a = 5\nint b = 6", false).Parse()
	var pe *Error
	if !errors.As(err, &pe) || pe.Kind != ErrExpectSeparator {
		t.Fatalf("without line separators: %v", err)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		src   string
		kind  ErrorKind
		index int
	}{
		{"int a = 5 int b = 6;", ErrExpectSeparator, 4},
		{"int a = 1; int a = 2;", ErrRedefined, 6},
		{"int a;", ErrMustInitialize, 2},
		{"int a = b;", ErrUnexpectedState, 3},
		{"int a = ;", ErrUnexpectedState, 3},
		{"5;", ErrExpectType, 0},
		{"int 5 = 1;", ErrExpectIdentifier, 1},
		{"void main() { int a = 5;", ErrExpectToken, 10},
		{"void main() int a = 5;", ErrExpectToken, 4},
		{"void main( { }", ErrExpectToken, 3},
		{"void main(){ int a = 5 }", ErrExpectSeparator, 9},
		{"}", ErrUnexpectedState, 0},
		{"if", ErrExpectType, 0},
	}

	for _, tt := range tests {
		_, err := newParser(t, tt.src, false).Parse()
		var pe *Error
		if !errors.As(err, &pe) {
			t.Fatalf("%q: expected *Error, got %v", tt.src, err)
		}
		if pe.Kind != tt.kind || pe.Index != tt.index {
			t.Errorf("%q: got %v at %d (%v), want %v at %d", tt.src, pe.Kind, pe.Index, pe, tt.kind, tt.index)
		}
	}
}

func TestExpectTokenNamesWantedToken(t *testing.T) {
	_, err := newParser(t, "void main() int a = 5;", false).Parse()
	var pe *Error
	if !errors.As(err, &pe) || pe.Want != token.LBRACE {
		t.Fatalf("got %v", err)
	}
	if !pe.Token.Is(token.INT_TYPE) {
		t.Fatalf("offending token = %s", pe.Token)
	}
}

func TestUndefinedPrimitive(t *testing.T) {
	p := newParser(t, "int a = 1;", false)
	p.global = scope.New()
	_, err := p.Parse()
	var pe *Error
	if !errors.As(err, &pe) || pe.Kind != ErrUndefinedPrimitive || pe.Index != 0 {
		t.Fatalf("got %v", err)
	}
}

func TestFailedAttemptRestoresStream(t *testing.T) {
	for _, src := range []string{"int a = b;", "void main() {", "int a;", "x y z"} {
		p := newParser(t, src, false)
		if _, err := p.parseDeclaration(p.global); err == nil {
			t.Fatalf("%q: expected error", src)
		}
		if p.s.Tell() != -1 || p.s.Depth() != 0 {
			t.Fatalf("%q: stream left at %d with %d checkpoints", src, p.s.Tell(), p.s.Depth())
		}
	}

	p := newParser(t, "int a = 1; int a = 2;", false)
	if _, err := p.Parse(); err == nil {
		t.Fatal("expected error")
	}
	if p.s.Tell() != -1 || p.s.Depth() != 0 {
		t.Fatalf("stream left at %d with %d checkpoints", p.s.Tell(), p.s.Depth())
	}
}

func TestScopes(t *testing.T) {
	p := newParser(t, "int a = 5; Foo b = 1; void main(){ int c = 2; }", false)
	if _, err := p.Parse(); err != nil {
		t.Fatal(err)
	}
	g := p.Global()

	sym, ok := g.ResolveLocal("a")
	if !ok {
		t.Fatal("a not registered")
	}
	if v, ok := sym.(*ast.VariableDeclaration); !ok || v.Name != "a" {
		t.Fatalf("a bound to %T", sym)
	}

	typ, ok := g.ResolveType("Foo")
	if !ok || typ.Kind != scope.Unresolved {
		t.Fatalf("Foo = %+v %v", typ, ok)
	}
	if sym, _ := g.ResolveLocal("b"); sym.(*ast.VariableDeclaration).Type != typ {
		t.Fatal("b does not use the placeholder type")
	}

	for _, name := range []string{"c", "main"} {
		if _, ok := g.Resolve(name); ok {
			t.Errorf("%s leaked into the global scope", name)
		}
	}
}

func TestUnresolvedTypeIsReused(t *testing.T) {
	p := newParser(t, "Foo a = 1; Foo b = 2;", false)
	stmts, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	a := stmts.List[0].(*ast.VariableDeclaration)
	b := stmts.List[1].(*ast.VariableDeclaration)
	if a.Type != b.Type {
		t.Fatal("second use of Foo created a new type")
	}
}
