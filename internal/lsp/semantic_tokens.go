package lsp

import (
	"strings"

	"chomsky/internal/analysis"
	"chomsky/internal/ast"
	"chomsky/internal/config"
	"chomsky/internal/grammar"
	"chomsky/internal/token"
)

type tokKey struct {
	Line int
	Col  int
}

type override struct {
	Type int
	Mods int
}

// SemanticTokensForText returns unencoded semantic tokens for a document.
// Declared names are refined from the parse tree of a source file, or from
// the letter sets of a grammar file. When the document does not parse, the
// lexical classification alone is used; when it does not scan, there are no
// tokens.
func SemanticTokensForText(path, text string, opts analysis.Options) []SemTok {
	scanOpts := opts
	scanOpts.KeepComments = true
	scanOpts.ScanLineSeparators = false
	toks, diags := analysis.Tokens(text, scanOpts)
	if len(diags) > 0 {
		return nil
	}

	var overrides map[tokKey]override
	if opts.Files.KindOf(path) == config.GrammarFile {
		overrides = grammarOverrides(text, toks)
	} else if res, _ := analysis.Program(text, opts); res != nil {
		overrides = declarationOverrides(res.Program)
	}

	lines := SplitLines(text)
	sem := make([]SemTok, 0, len(toks))
	for _, tok := range toks {
		typ, mods, ok := Classify(tok)
		if o, found := overrides[tokKey{tok.Line, tok.Col}]; found {
			typ, mods, ok = o.Type, o.Mods, true
		}
		if !ok {
			continue
		}
		sem = append(sem, spans(lines, tok, typ, mods)...)
	}
	return sem
}

// spans splits a token over the lines it covers; only block comments span
// more than one.
func spans(lines Lines, tok token.Token, typ, mods int) []SemTok {
	text := tok.Raw
	if text == "" {
		text = tok.Literal
	}
	parts := strings.Split(text, "\n")
	out := make([]SemTok, 0, len(parts))
	for i, part := range parts {
		line, col := tok.Line+i, 1
		if i == 0 {
			col = tok.Col
		}
		n := len([]rune(strings.TrimSuffix(part, "\r")))
		if n == 0 {
			continue
		}
		r := lines.Range(line, col, n)
		out = append(out, SemTok{
			Line:   r.Start.Line,
			Start:  r.Start.Character,
			Length: r.End.Character - r.Start.Character,
			Type:   typ,
			Mods:   mods,
		})
	}
	return out
}

func declarationOverrides(prog *ast.Statements) map[tokKey]override {
	out := map[tokKey]override{}
	var walk func(*ast.Statements)
	walk = func(stmts *ast.Statements) {
		for _, st := range stmts.List {
			switch n := st.(type) {
			case *ast.VariableDeclaration:
				markType(out, n.Token)
				out[tokKey{n.Ident.Line, n.Ident.Col}] = override{ttVariable, modDecl}
			case *ast.FunctionDeclaration:
				markType(out, n.Token)
				out[tokKey{n.Ident.Line, n.Ident.Col}] = override{ttFunction, modDecl}
				walk(n.Body.Statements)
			}
		}
	}
	walk(prog)
	return out
}

func markType(out map[tokKey]override, tok token.Token) {
	if tok.Is(token.IDENT) {
		out[tokKey{tok.Line, tok.Col}] = override{ttType, 0}
	}
}

// grammarOverrides highlights non-terminals as types and terminals as
// strings wherever their spelling appears.
func grammarOverrides(text string, toks []token.Token) map[tokKey]override {
	res, _ := analysis.Grammar(text)
	if res == nil {
		return nil
	}
	g := res.Grammar
	out := map[tokKey]override{}
	for _, tok := range toks {
		expr, err := grammar.LetterExpr(tok)
		if err != nil {
			continue
		}
		l, ok := g.Lookup(expr)
		if !ok {
			continue
		}
		if l.Kind == grammar.NonTerminal {
			out[tokKey{tok.Line, tok.Col}] = override{ttType, 0}
		} else {
			out[tokKey{tok.Line, tok.Col}] = override{ttString, 0}
		}
	}
	return out
}
