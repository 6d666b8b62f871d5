package main

import (
	"testing"

	"chomsky/internal/lsp"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const testURI = "file:///w/prog.c"

func openDoc(t *testing.T, text string) {
	t.Helper()
	store = lsp.NewStore()
	store.Set(testURI, text, 1)
}

func docID() protocol.TextDocumentIdentifier {
	return protocol.TextDocumentIdentifier{URI: testURI}
}

func TestSemanticTokensHandler(t *testing.T) {
	openDoc(t, "int a = 5;")
	got, err := textDocumentSemanticTokensFull(nil, &protocol.SemanticTokensParams{TextDocument: docID()})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Data) != 20 {
		t.Fatalf("data = %v", got.Data)
	}

	store = lsp.NewStore()
	got, _ = textDocumentSemanticTokensFull(nil, &protocol.SemanticTokensParams{TextDocument: docID()})
	if got == nil || len(got.Data) != 0 {
		t.Fatalf("unknown document: %+v", got)
	}
}

func TestCodeActionHandler(t *testing.T) {
	openDoc(t, "int a = 5 int b = 6;")
	doc, _ := store.Get(testURI)
	params := &protocol.CodeActionParams{
		TextDocument: docID(),
		Context:      protocol.CodeActionContext{Diagnostics: lsp.Diagnose(doc, currentOptions())},
	}
	res, err := textDocumentCodeAction(nil, params)
	if err != nil {
		t.Fatal(err)
	}
	actions, ok := res.([]protocol.CodeAction)
	if !ok || len(actions) != 1 {
		t.Fatalf("actions = %#v", res)
	}

	params.Context.Diagnostics = nil
	if res, _ := textDocumentCodeAction(nil, params); res != nil {
		t.Fatalf("expected no actions, got %#v", res)
	}
}

func TestDocumentSymbolHandler(t *testing.T) {
	openDoc(t, "void main(){ int a = 1; }")
	res, err := textDocumentDocumentSymbol(nil, &protocol.DocumentSymbolParams{TextDocument: docID()})
	if err != nil {
		t.Fatal(err)
	}
	syms := res.([]protocol.DocumentSymbol)
	if len(syms) != 1 || syms[0].Name != "main" || len(syms[0].Children) != 1 {
		t.Fatalf("symbols = %+v", syms)
	}
}

func TestHoverHandler(t *testing.T) {
	openDoc(t, "int a = 5;")
	params := &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: docID(),
			Position:     protocol.Position{Line: 0, Character: 4},
		},
	}
	h, err := textDocumentHover(nil, params)
	if err != nil || h == nil {
		t.Fatalf("hover = %+v, %v", h, err)
	}
}

func TestExtractFullText(t *testing.T) {
	tests := []struct {
		change any
		want   string
		ok     bool
	}{
		{protocol.TextDocumentContentChangeEventWhole{Text: "a"}, "a", true},
		{protocol.TextDocumentContentChangeEvent{Text: "b"}, "b", true},
		{"c", "", false},
	}
	for _, tt := range tests {
		got, ok := extractFullText(tt.change)
		if got != tt.want || ok != tt.ok {
			t.Errorf("extractFullText(%#v) = %q %v", tt.change, got, ok)
		}
	}
}
