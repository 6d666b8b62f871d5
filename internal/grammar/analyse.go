package grammar

import (
	"chomsky/internal/lexer"
	"chomsky/internal/token"
)

// Analyse scans and parses a grammar description.
func Analyse(src string) (*Grammar, error) {
	toks, err := lexer.Tokens(src, false)
	if err != nil {
		return nil, err
	}
	return AnalyseTokens(toks)
}

// AnalyseTokens parses a grammar description from already scanned tokens.
// Comments are ignored. Every letter a producer or the start symbol names
// must have been declared in one of the two sets.
func AnalyseTokens(toks []token.Token) (*Grammar, error) {
	a := &analyser{s: token.NewStream(token.WithoutComments(toks))}
	return a.grammar()
}

type analyser struct {
	s *token.Stream
	g Grammar
}

func (a *analyser) grammar() (*Grammar, error) {
	if !a.accept(token.LPAREN) {
		return nil, &Error{Kind: ErrMissingBracket, Detail: "'('"}
	}

	nts, err := a.letterSet(NonTerminal, "non-terminal set")
	if err != nil {
		return nil, err
	}
	a.g.NonTerminals = nts

	if !a.accept(token.COMMA) {
		return nil, &Error{Kind: ErrMissingComma, Detail: "between the non-terminal and terminal sets"}
	}

	ts, err := a.letterSet(Terminal, "terminal set")
	if err != nil {
		return nil, err
	}
	a.g.Terminals = ts

	if !a.accept(token.COMMA) {
		return nil, &Error{Kind: ErrMissingComma, Detail: "between the terminal set and the producers"}
	}

	producers, err := a.producers()
	if err != nil {
		return nil, err
	}
	a.g.Producers = producers

	if !a.accept(token.COMMA) {
		return nil, &Error{Kind: ErrMissingComma, Detail: "between the producers and the start symbol"}
	}

	if a.s.EOF() {
		return nil, &Error{Kind: ErrIncompleteSet, Detail: "grammar: start symbol missing"}
	}
	start, err := a.letter()
	if err != nil {
		return nil, err
	}
	a.g.Start = start

	if !a.accept(token.RPAREN) {
		return nil, &Error{Kind: ErrMissingBracket, Detail: "')'"}
	}

	g := a.g
	return &g, nil
}

func (a *analyser) accept(tt token.Type) bool {
	if a.s.Top().Type != tt {
		return false
	}
	a.s.Consume()
	return true
}

// letterSet reads { e1, e2, ... }. A trailing comma before '}' is accepted
// and duplicates collapse into one letter.
func (a *analyser) letterSet(kind LetterKind, what string) ([]Letter, error) {
	if !a.accept(token.LBRACE) {
		return nil, &Error{Kind: ErrMissingBracket, Detail: "'{' opening the " + what}
	}

	var out []Letter
	seen := map[Letter]bool{}
	for {
		if a.s.EOF() {
			return nil, &Error{Kind: ErrIncompleteSet, Detail: what}
		}
		if a.accept(token.RBRACE) {
			return out, nil
		}

		expr, err := LetterExpr(a.s.Consume())
		if err != nil {
			return nil, err
		}
		l := Letter{Kind: kind, Expr: expr}
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}

		switch {
		case a.s.EOF():
			return nil, &Error{Kind: ErrIncompleteSet, Detail: what}
		case a.accept(token.RBRACE):
			return out, nil
		case a.accept(token.COMMA):
		default:
			return nil, &Error{Kind: ErrMissingComma, Detail: "between letters of the " + what}
		}
	}
}

// producers reads { l... > r..., ... }.
func (a *analyser) producers() ([]Producer, error) {
	if !a.accept(token.LBRACE) {
		return nil, &Error{Kind: ErrMissingBracket, Detail: "'{' opening the producer set"}
	}

	var out []Producer
	for {
		if a.s.EOF() {
			return nil, &Error{Kind: ErrIncompleteSet, Detail: "producer set"}
		}
		if a.accept(token.RBRACE) {
			return out, nil
		}

		var p Producer
		for !a.accept(token.GT) {
			switch top := a.s.Top(); {
			case a.s.EOF():
				return nil, &Error{Kind: ErrIncompleteSet, Detail: "producer set"}
			case top.Type == token.COMMA || top.Type == token.RBRACE:
				return nil, &Error{Kind: ErrMissingArrow, Detail: joinLetters(p.Left)}
			}
			l, err := a.letter()
			if err != nil {
				return nil, err
			}
			p.Left = append(p.Left, l)
		}

		for !a.s.EOF() {
			top := a.s.Top()
			if top.Type == token.COMMA || top.Type == token.RBRACE {
				break
			}
			l, err := a.letter()
			if err != nil {
				return nil, err
			}
			p.Right = append(p.Right, l)
		}
		if a.s.EOF() {
			return nil, &Error{Kind: ErrIncompleteSet, Detail: "producer set"}
		}
		out = append(out, p)

		// ',' continues (a trailing one is fine), '}' is picked up at the top.
		a.accept(token.COMMA)
	}
}

// letter consumes one token and resolves it against the declared sets.
func (a *analyser) letter() (Letter, error) {
	expr, err := LetterExpr(a.s.Consume())
	if err != nil {
		return Letter{}, err
	}
	l, ok := a.g.Lookup(expr)
	if !ok {
		return Letter{}, &Error{Kind: ErrUndefinedLetter, Detail: expr}
	}
	return l, nil
}

// LetterExpr is the expression a token names inside a grammar description:
// an identifier's name, a quoted string, or a number's value.
func LetterExpr(tok token.Token) (string, error) {
	switch tok.Type {
	case token.IDENT:
		return tok.Literal, nil
	case token.STRING:
		return `"` + tok.Literal + `"`, nil
	case token.INT, token.FLOAT, token.DOUBLE:
		return tok.Value(), nil
	}
	return "", &Error{Kind: ErrUnexpectedToken, Detail: tok.String()}
}
