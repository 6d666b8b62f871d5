package lsp

import (
	"strings"
	"unicode"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Diagnostic codes that have a quick fix.
const (
	codeExpectSeparator = "P004"
	codeMustInitialize  = "P005"
)

// CodeActions returns the quick fixes for the diagnostics of a request.
func CodeActions(doc Document, ds []protocol.Diagnostic) []protocol.CodeAction {
	actions := make([]protocol.CodeAction, 0)
	for _, d := range ds {
		switch diagnosticCode(d) {
		case codeExpectSeparator:
			if a, ok := MakeInsertSeparatorAction(doc, d); ok {
				actions = append(actions, a)
			}
		case codeMustInitialize:
			if a, ok := MakeInitializeAction(doc, d); ok {
				actions = append(actions, a)
			}
		}
	}
	return actions
}

func diagnosticCode(d protocol.Diagnostic) string {
	if d.Code == nil {
		return ""
	}
	if s, ok := d.Code.Value.(string); ok {
		return s
	}
	return ""
}

// MakeInsertSeparatorAction inserts ';' right after the last non-blank
// character before the diagnostic.
func MakeInsertSeparatorAction(doc Document, d protocol.Diagnostic) (protocol.CodeAction, bool) {
	at, ok := insertionPoint(doc.Text, d.Range.Start)
	if !ok {
		return protocol.CodeAction{}, false
	}
	return quickFix(doc.URI, "Insert ';'", at, ";", d), true
}

// MakeInitializeAction inserts " = 0" before the token that should have
// been '='.
func MakeInitializeAction(doc Document, d protocol.Diagnostic) (protocol.CodeAction, bool) {
	at, ok := insertionPoint(doc.Text, d.Range.Start)
	if !ok {
		return protocol.CodeAction{}, false
	}
	return quickFix(doc.URI, "Initialize with 0", at, " = 0", d), true
}

// insertionPoint walks back from pos over whitespace and returns the
// position just after the previous character.
func insertionPoint(text string, pos protocol.Position) (protocol.Position, bool) {
	lines := SplitLines(text)
	p, ok := lines.Pos(pos)
	if !ok {
		return protocol.Position{}, false
	}
	end := Offset(text, p)
	trimmed := strings.TrimRightFunc(text[:end], unicode.IsSpace)
	if trimmed == "" {
		return protocol.Position{}, false
	}
	line := strings.Count(trimmed, "\n") + 1
	col := len([]rune(trimmed[strings.LastIndex(trimmed, "\n")+1:])) + 1
	return lines.Range(line, col, 1).Start, true
}

func quickFix(uri, title string, at protocol.Position, text string, d protocol.Diagnostic) protocol.CodeAction {
	edit := protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{
			protocol.DocumentUri(uri): {
				{
					Range:   protocol.Range{Start: at, End: at},
					NewText: text,
				},
			},
		},
	}
	kind := protocol.CodeActionKindQuickFix
	return protocol.CodeAction{
		Title:       title,
		Kind:        &kind,
		Diagnostics: []protocol.Diagnostic{d},
		Edit:        &edit,
	}
}
