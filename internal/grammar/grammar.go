// Package grammar reads production-rule descriptions of the form
//
//	( {NT1, NT2, ...}, {T1, T2, ...}, { L1 L2 > R1 R2, L3 > , ... }, Start )
//
// and places the described grammar in the Chomsky hierarchy.
package grammar

import (
	"strings"
)

type LetterKind int

const (
	Terminal LetterKind = iota
	NonTerminal
)

func (k LetterKind) String() string {
	if k == NonTerminal {
		return "NonTerminal"
	}
	return "Terminal"
}

// Letter is a grammar symbol. Two letters are equal when kind and expression
// match, so Letter values compare with ==.
type Letter struct {
	Kind LetterKind
	Expr string
}

func T(expr string) Letter  { return Letter{Kind: Terminal, Expr: expr} }
func NT(expr string) Letter { return Letter{Kind: NonTerminal, Expr: expr} }

func (l Letter) IsTerminal() bool { return l.Kind == Terminal }

func (l Letter) String() string {
	return "<" + l.Kind.String() + ", " + l.Expr + ">"
}

// Producer is one rewrite rule. An empty Right is an epsilon production.
type Producer struct {
	Left  []Letter
	Right []Letter
}

func (p Producer) String() string {
	var b strings.Builder
	b.WriteString(joinLetters(p.Left))
	b.WriteString(" >")
	if len(p.Right) > 0 {
		b.WriteString(" ")
		b.WriteString(joinLetters(p.Right))
	}
	return b.String()
}

type Grammar struct {
	NonTerminals []Letter
	Terminals    []Letter
	Producers    []Producer
	Start        Letter
}

// Lookup finds a declared letter by expression. Non-terminals shadow
// terminals spelled the same way.
func (g *Grammar) Lookup(expr string) (Letter, bool) {
	for _, l := range g.NonTerminals {
		if l.Expr == expr {
			return l, true
		}
	}
	for _, l := range g.Terminals {
		if l.Expr == expr {
			return l, true
		}
	}
	return Letter{}, false
}

func (g *Grammar) declares(l Letter) bool {
	set := g.Terminals
	if l.Kind == NonTerminal {
		set = g.NonTerminals
	}
	for _, d := range set {
		if d == l {
			return true
		}
	}
	return false
}

// Validate checks that the start symbol and every letter used by a producer
// are declared.
func (g *Grammar) Validate() error {
	if !g.declares(g.Start) {
		return &Error{Kind: ErrUndefinedLetter, Detail: g.Start.Expr}
	}
	for _, p := range g.Producers {
		for _, side := range [][]Letter{p.Left, p.Right} {
			for _, l := range side {
				if !g.declares(l) {
					return &Error{Kind: ErrUndefinedLetter, Detail: l.Expr}
				}
			}
		}
	}
	return nil
}

// String renders the grammar back in description syntax.
func (g *Grammar) String() string {
	var b strings.Builder
	b.WriteString("({")
	b.WriteString(joinExprs(g.NonTerminals))
	b.WriteString("}, {")
	b.WriteString(joinExprs(g.Terminals))
	b.WriteString("}, {")
	for i, p := range g.Producers {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString("}, ")
	b.WriteString(g.Start.Expr)
	b.WriteString(")")
	return b.String()
}

func joinLetters(ls []Letter) string {
	return joinWith(ls, " ")
}

func joinExprs(ls []Letter) string {
	return joinWith(ls, ", ")
}

func joinWith(ls []Letter, sep string) string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = l.Expr
	}
	return strings.Join(parts, sep)
}
