package lsp

import (
	"fmt"
	"strings"

	"chomsky/internal/analysis"
	"chomsky/internal/ast"
	"chomsky/internal/config"
	"chomsky/internal/grammar"
	"chomsky/internal/scope"
	"chomsky/internal/token"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// TokenAt finds the token covering p. Block comments only match on their
// first line.
func TokenAt(toks []token.Token, p Pos) (token.Token, bool) {
	for _, tok := range toks {
		if tok.Line != p.Line {
			continue
		}
		n := tok.Len()
		if n < 1 {
			n = 1
		}
		if p.Col >= tok.Col && p.Col < tok.Col+n {
			return tok, true
		}
	}
	return token.Token{}, false
}

// Hover describes the token under pos: its scanner rendering, plus the
// declaration it names or the grammar letter it spells.
func Hover(doc Document, pos protocol.Position, opts analysis.Options) *protocol.Hover {
	lines := SplitLines(doc.Text)
	p, ok := lines.Pos(pos)
	if !ok {
		return nil
	}
	scanOpts := opts
	scanOpts.KeepComments = true
	scanOpts.ScanLineSeparators = false
	toks, _ := analysis.Tokens(doc.Text, scanOpts)
	tok, ok := TokenAt(toks, p)
	if !ok {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "`%s`", tok.String())
	if detail := hoverDetail(doc, tok, opts); detail != "" {
		b.WriteString("\n\n```\n")
		b.WriteString(detail)
		b.WriteString("\n```")
	}

	r := tokenRange(lines, tok)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: b.String()},
		Range:    &r,
	}
}

func hoverDetail(doc Document, tok token.Token, opts analysis.Options) string {
	if opts.Files.KindOf(doc.Path) == config.GrammarFile {
		return letterDetail(doc.Text, tok)
	}
	res, _ := analysis.Program(doc.Text, opts)
	if res == nil {
		return ""
	}
	return declarationDetail(res.Program, tok)
}

func letterDetail(text string, tok token.Token) string {
	res, _ := analysis.Grammar(text)
	if res == nil {
		return ""
	}
	expr, err := grammar.LetterExpr(tok)
	if err != nil {
		return ""
	}
	l, ok := res.Grammar.Lookup(expr)
	if !ok {
		return ""
	}
	if l == res.Grammar.Start {
		return fmt.Sprintf("%s: start symbol, %s grammar", l.Expr, res.Classification)
	}
	return fmt.Sprintf("%s: %s", l.Expr, l.Kind)
}

func declarationDetail(stmts *ast.Statements, tok token.Token) string {
	same := func(a token.Token) bool { return a.Line == tok.Line && a.Col == tok.Col }
	for _, st := range stmts.List {
		switch n := st.(type) {
		case *ast.VariableDeclaration:
			if same(n.Ident) {
				return n.String()
			}
			if same(n.Token) {
				return typeDetail(n.Type)
			}
		case *ast.FunctionDeclaration:
			if same(n.Ident) {
				return n.ReturnType.String() + " " + n.Name.String() + "()"
			}
			if same(n.Token) {
				return typeDetail(n.ReturnType)
			}
			if d := declarationDetail(n.Body.Statements, tok); d != "" {
				return d
			}
		}
	}
	return ""
}

func typeDetail(t *scope.Type) string {
	if t.Kind == scope.Unresolved {
		return "type " + t.String() + " (never defined)"
	}
	return "primitive type " + t.String()
}
