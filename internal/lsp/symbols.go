package lsp

import (
	"chomsky/internal/analysis"
	"chomsky/internal/ast"
	"chomsky/internal/config"
	"chomsky/internal/grammar"
	"chomsky/internal/token"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocumentSymbols outlines a document: functions with their nested
// declarations and variables for source files, non-terminals for grammar
// files. A document that does not analyse has no symbols.
func DocumentSymbols(doc Document, opts analysis.Options) []protocol.DocumentSymbol {
	lines := SplitLines(doc.Text)
	if opts.Files.KindOf(doc.Path) == config.GrammarFile {
		return grammarSymbols(lines, doc.Text)
	}
	res, _ := analysis.Program(doc.Text, opts)
	if res == nil {
		return []protocol.DocumentSymbol{}
	}
	return statementSymbols(lines, res.Program)
}

func statementSymbols(lines Lines, stmts *ast.Statements) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(stmts.List))
	for _, st := range stmts.List {
		switch n := st.(type) {
		case *ast.VariableDeclaration:
			lit := n.Initializer.(*ast.Literal).Token
			out = append(out, protocol.DocumentSymbol{
				Name:           n.Name,
				Detail:         ptrString(n.Type.String()),
				Kind:           protocol.SymbolKindVariable,
				Range:          span(lines, n.Token, lit),
				SelectionRange: tokenRange(lines, n.Ident),
			})
		case *ast.FunctionDeclaration:
			out = append(out, protocol.DocumentSymbol{
				Name:           n.Name.String(),
				Detail:         ptrString(n.ReturnType.String() + " " + n.Name.String() + "()"),
				Kind:           protocol.SymbolKindFunction,
				Range:          span(lines, n.Token, n.Body.Close),
				SelectionRange: tokenRange(lines, n.Ident),
				Children:       statementSymbols(lines, n.Body.Statements),
			})
		}
	}
	return out
}

func grammarSymbols(lines Lines, text string) []protocol.DocumentSymbol {
	res, _ := analysis.Grammar(text)
	if res == nil {
		return []protocol.DocumentSymbol{}
	}
	toks, _ := analysis.Tokens(text, analysis.Options{})
	seen := map[string]bool{}
	out := make([]protocol.DocumentSymbol, 0, len(res.Grammar.NonTerminals))
	for _, tok := range toks {
		expr, err := grammar.LetterExpr(tok)
		if err != nil || seen[expr] {
			continue
		}
		l, ok := res.Grammar.Lookup(expr)
		if !ok || l.Kind != grammar.NonTerminal {
			continue
		}
		seen[expr] = true
		detail := "non-terminal"
		if l == res.Grammar.Start {
			detail = "start symbol"
		}
		r := tokenRange(lines, tok)
		out = append(out, protocol.DocumentSymbol{
			Name:           expr,
			Detail:         ptrString(detail),
			Kind:           protocol.SymbolKindClass,
			Range:          r,
			SelectionRange: r,
		})
	}
	return out
}

func tokenRange(lines Lines, tok token.Token) protocol.Range {
	return lines.Range(tok.Line, tok.Col, tok.Len())
}

// span covers from the start of first to the end of last.
func span(lines Lines, first, last token.Token) protocol.Range {
	return protocol.Range{
		Start: tokenRange(lines, first).Start,
		End:   tokenRange(lines, last).End,
	}
}
