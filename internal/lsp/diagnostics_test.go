package lsp

import (
	"testing"

	"chomsky/internal/analysis"
	"chomsky/internal/diag"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestToLspDiagnostics(t *testing.T) {
	ds := []diag.Diagnostic{
		{Code: "P004", Message: "missing separator", Severity: diag.SeverityError, Range: diag.Range{Line: 2, Col: 3, Length: 2}},
		{Code: "L001", Message: "unused", Severity: diag.SeverityWarning, Range: diag.Range{Line: 1, Col: 1, Length: 0}},
		{Message: "plain", Severity: diag.SeverityInfo, Range: diag.Range{Line: 1, Col: 1, Length: 1}},
	}
	got := ToLspDiagnostics("x\n  ab", ds)
	if len(got) != 3 {
		t.Fatalf("got %d diagnostics", len(got))
	}

	want := protocol.Range{Start: protocol.Position{Line: 1, Character: 2}, End: protocol.Position{Line: 1, Character: 4}}
	if got[0].Range != want || diagnosticCode(got[0]) != "P004" || *got[0].Severity != protocol.DiagnosticSeverityError {
		t.Fatalf("first = %+v", got[0])
	}
	if *got[0].Source != "chomsky" {
		t.Fatalf("source = %q", *got[0].Source)
	}
	if *got[1].Severity != protocol.DiagnosticSeverityWarning || got[1].Range.End.Character != 1 {
		t.Fatalf("second = %+v", got[1])
	}
	if got[2].Code != nil || *got[2].Severity != protocol.DiagnosticSeverityInformation {
		t.Fatalf("third = %+v", got[2])
	}
}

func TestDiagnose(t *testing.T) {
	opts := analysis.DefaultOptions()
	tests := []struct {
		path string
		text string
		code string
		rng  protocol.Range
	}{
		{"a.c", "int a = 5 int b = 6;", "P004", protocol.Range{Start: protocol.Position{Line: 0, Character: 10}, End: protocol.Position{Line: 0, Character: 13}}},
		{"a.c", "Foo a = 1;", "L001", protocol.Range{Start: protocol.Position{Line: 0, Character: 0}, End: protocol.Position{Line: 0, Character: 3}}},
		{"g.grammar", "({S},{a},{S > b},S)", "G006", protocol.Range{Start: protocol.Position{Line: 0, Character: 0}, End: protocol.Position{Line: 0, Character: 1}}},
	}
	for _, tt := range tests {
		got := Diagnose(Document{Path: tt.path, Text: tt.text}, opts)
		if len(got) != 1 {
			t.Fatalf("%q: got %d diagnostics: %+v", tt.text, len(got), got)
		}
		if diagnosticCode(got[0]) != tt.code || got[0].Range != tt.rng {
			t.Errorf("%q: got %s at %+v, want %s at %+v", tt.text, diagnosticCode(got[0]), got[0].Range, tt.code, tt.rng)
		}
	}

	if got := Diagnose(Document{Path: "ok.c", Text: "int a = 1;"}, opts); len(got) != 0 {
		t.Fatalf("clean file: %+v", got)
	}
}
