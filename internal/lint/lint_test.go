package lint

import (
	"testing"

	"chomsky/internal/ast"
	"chomsky/internal/lexer"
	"chomsky/internal/parser"
)

func parse(t *testing.T, src string) *ast.Statements {
	t.Helper()
	toks, err := lexer.Tokens(src, false)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	stmts, err := parser.New(toks, false).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return stmts
}

func codes(t *testing.T, src string, opts Options) []string {
	t.Helper()
	var out []string
	for _, d := range RunWithOptions(parse(t, src), opts) {
		out = append(out, d.Code)
	}
	return out
}

func TestRules(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"clean", "int a = 1; double d = 2 ; float f = 1.5f; boolean b = true; char c = \"x\";", nil},
		{"unresolved type", "Foo a = 1;", []string{"L001"}},
		{"unresolved return type", "Foo make(){}", []string{"L001"}},
		{"mismatch", "int a = \"x\";", []string{"L002"}},
		{"char needs one character", "char c = \"xy\";", []string{"L002"}},
		{"float from double", "float f = 1.5 ;", []string{"L002"}},
		{"void variable", "void v = 1;", []string{"L003"}},
		{"byte overflow", "byte b = 200;", []string{"L005"}},
		{"int overflow", "int i = 2147483648;", []string{"L005"}},
		{"long holds it", "long l = 2147483648;", nil},
		{"shadowing", "int a = 1; void f(){ int a = 2; }", []string{"L004"}},
		{"nested shadowing", "void f(){ int a = 1; void g(){ int a = 2; } }", []string{"L004"}},
		{"siblings do not shadow", "void f(){ int a = 1; } void g(){ int a = 2; }", nil},
	}

	for _, tt := range tests {
		got := codes(t, tt.src, DefaultOptions())
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %v want %v", tt.name, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: got %v want %v", tt.name, got, tt.want)
			}
		}
	}
}

func TestShadowingCanBeDisabled(t *testing.T) {
	got := codes(t, "int a = 1; void f(){ int a = 2; }", Options{CheckShadowing: false})
	if len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestWarningPosition(t *testing.T) {
	diags := Run(parse(t, "void f(){\n  int a = \"no\";\n}"))
	if len(diags) != 1 {
		t.Fatalf("got %v", diags)
	}
	d := diags[0]
	if d.Range.Line != 2 || d.Range.Col != 11 || d.Range.Length != 4 {
		t.Fatalf("range = %+v", d.Range)
	}
	if d.Message != "cannot initialize int 'a' with StringLiteral" {
		t.Fatalf("message = %q", d.Message)
	}
}

func TestNilProgram(t *testing.T) {
	if diags := Run(nil); diags != nil {
		t.Fatalf("got %v", diags)
	}
}
