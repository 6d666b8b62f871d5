// Package render prints analysis results as plain text or YAML.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"chomsky/internal/analysis"
	"chomsky/internal/ast"
	"chomsky/internal/token"
)

type Format string

const (
	Text Format = "text"
	YAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case Text, "":
		return Text, nil
	case YAML:
		return YAML, nil
	}
	return "", errors.Errorf("unknown output format %q", s)
}

type tokenDoc struct {
	Line       int      `yaml:"line"`
	Col        int      `yaml:"col"`
	Kind       string   `yaml:"kind"`
	Attributes []string `yaml:"attributes,omitempty"`
}

// Tokens writes one token per line in text form, or a YAML sequence.
func Tokens(w io.Writer, toks []token.Token, f Format) error {
	if f == YAML {
		docs := make([]tokenDoc, len(toks))
		for i, t := range toks {
			docs[i] = tokenDoc{Line: t.Line, Col: t.Col, Kind: t.Kind(), Attributes: t.Attributes()}
		}
		return encodeYAML(w, docs)
	}
	for _, t := range toks {
		if _, err := fmt.Fprintf(w, "%4d:%-3d  %s\n", t.Line, t.Col, t); err != nil {
			return err
		}
	}
	return nil
}

type grammarDoc struct {
	Classification string   `yaml:"classification"`
	Type           int      `yaml:"type"`
	Abbrev         string   `yaml:"abbrev"`
	NonTerminals   []string `yaml:"non_terminals"`
	Terminals      []string `yaml:"terminals"`
	Producers      []string `yaml:"producers"`
	Start          string   `yaml:"start"`
}

// Grammar writes the classification of a grammar followed by the grammar.
func Grammar(w io.Writer, res *analysis.GrammarResult, f Format) error {
	g, c := res.Grammar, res.Classification
	if f == YAML {
		doc := grammarDoc{
			Classification: c.String(),
			Type:           c.Type(),
			Abbrev:         c.Abbrev(),
			Start:          g.Start.Expr,
		}
		for _, l := range g.NonTerminals {
			doc.NonTerminals = append(doc.NonTerminals, l.Expr)
		}
		for _, l := range g.Terminals {
			doc.Terminals = append(doc.Terminals, l.Expr)
		}
		for _, p := range g.Producers {
			doc.Producers = append(doc.Producers, p.String())
		}
		return encodeYAML(w, doc)
	}
	_, err := fmt.Fprintf(w, "%s (Type-%d, %s)\n%s\n", c, c.Type(), c.Abbrev(), g)
	return err
}

type nodeDoc struct {
	Kind  string    `yaml:"kind"`
	Type  string    `yaml:"type"`
	Name  string    `yaml:"name"`
	Line  int       `yaml:"line"`
	Value string    `yaml:"value,omitempty"`
	Body  []nodeDoc `yaml:"body,omitempty"`
}

// Program writes the description of a parsed program, or its tree as YAML.
func Program(w io.Writer, prog *ast.Statements, f Format) error {
	if f == YAML {
		return encodeYAML(w, statementDocs(prog))
	}
	if s := prog.String(); s != "" {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	return nil
}

func statementDocs(stmts *ast.Statements) []nodeDoc {
	if stmts == nil {
		return nil
	}
	var docs []nodeDoc
	for _, st := range stmts.List {
		switch n := st.(type) {
		case *ast.VariableDeclaration:
			docs = append(docs, nodeDoc{
				Kind:  "variable",
				Type:  n.Type.String(),
				Name:  n.Name,
				Line:  n.Token.Line,
				Value: n.Initializer.String(),
			})
		case *ast.FunctionDeclaration:
			docs = append(docs, nodeDoc{
				Kind: "function",
				Type: n.ReturnType.String(),
				Name: n.Name.Full,
				Line: n.Token.Line,
				Body: statementDocs(n.Body.Statements),
			})
		}
	}
	return docs
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return enc.Close()
}
