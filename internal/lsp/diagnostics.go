package lsp

import (
	"chomsky/internal/analysis"
	"chomsky/internal/diag"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const source = "chomsky"

func ToLspDiagnostics(text string, ds []diag.Diagnostic) []protocol.Diagnostic {
	lines := SplitLines(text)
	out := make([]protocol.Diagnostic, 0, len(ds))
	for _, d := range ds {
		severity := protocol.DiagnosticSeverityError
		switch d.Severity {
		case diag.SeverityWarning:
			severity = protocol.DiagnosticSeverityWarning
		case diag.SeverityInfo:
			severity = protocol.DiagnosticSeverityInformation
		}

		pd := protocol.Diagnostic{
			Range:    lines.Range(d.Range.Line, d.Range.Col, d.Range.Length),
			Severity: &severity,
			Source:   ptrString(source),
			Message:  d.Message,
		}
		if d.Code != "" {
			code := protocol.IntegerOrString{Value: d.Code}
			pd.Code = &code
		}
		out = append(out, pd)
	}
	return out
}

// Diagnose analyses a document and returns its diagnostics in LSP form.
func Diagnose(doc Document, opts analysis.Options) []protocol.Diagnostic {
	r := analysis.File(doc.Path, doc.Text, opts)
	return ToLspDiagnostics(doc.Text, r.Diagnostics)
}

func ptrString(s string) *string { return &s }
