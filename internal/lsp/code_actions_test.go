package lsp

import (
	"testing"

	"chomsky/internal/analysis"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestCodeActions(t *testing.T) {
	tests := []struct {
		text    string
		title   string
		at      protocol.Position
		newText string
	}{
		{"int a = 5 int b = 6;", "Insert ';'", protocol.Position{Line: 0, Character: 9}, ";"},
		{"int a = 5\n\n  int b = 6;", "Insert ';'", protocol.Position{Line: 0, Character: 9}, ";"},
		{"int a;", "Initialize with 0", protocol.Position{Line: 0, Character: 5}, " = 0"},
	}
	for _, tt := range tests {
		uri := "file:///w/prog.c"
		doc := Document{URI: uri, Path: "/w/prog.c", Text: tt.text}
		actions := CodeActions(doc, Diagnose(doc, analysis.DefaultOptions()))
		if len(actions) != 1 {
			t.Fatalf("%q: got %d actions", tt.text, len(actions))
		}
		a := actions[0]
		if a.Title != tt.title || a.Kind == nil || *a.Kind != protocol.CodeActionKindQuickFix {
			t.Fatalf("%q: action = %+v", tt.text, a)
		}
		edits := a.Edit.Changes[protocol.DocumentUri(uri)]
		if len(edits) != 1 {
			t.Fatalf("%q: edits = %+v", tt.text, edits)
		}
		if edits[0].Range.Start != tt.at || edits[0].Range.End != tt.at || edits[0].NewText != tt.newText {
			t.Errorf("%q: edit = %+v, want %q at %+v", tt.text, edits[0], tt.newText, tt.at)
		}
	}
}

func TestCodeActionsIgnoreOtherCodes(t *testing.T) {
	doc := Document{URI: "file:///w/prog.c", Path: "/w/prog.c", Text: "Foo a = 1;"}
	if actions := CodeActions(doc, Diagnose(doc, analysis.DefaultOptions())); len(actions) != 0 {
		t.Fatalf("got %+v", actions)
	}
}
