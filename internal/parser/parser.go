// Package parser builds declarations and blocks from a token sequence while
// filling a chain of lexical scopes.
//
// Every speculative step brackets its work with Stream.Save and either
// Stream.Drop on success or Stream.Restore on failure, so a failed attempt
// never leaves the stream advanced.
package parser

import (
	"chomsky/internal/ast"
	"chomsky/internal/scope"
	"chomsky/internal/token"
)

type Parser struct {
	s              *token.Stream
	lineSeparators bool
	global         *scope.Scope
}

// New returns a parser over tokens with comments removed. When
// lineSeparators is set, line separator tokens end statements like ';'.
func New(tokens []token.Token, lineSeparators bool) *Parser {
	return &Parser{
		s:              token.NewStream(token.WithoutComments(tokens)),
		lineSeparators: lineSeparators,
		global:         scope.NewGlobal(),
	}
}

// Global is the root scope, seeded with the primitive types. After Parse it
// also holds every top-level variable.
func (p *Parser) Global() *scope.Scope { return p.global }

/* -------------------- program -------------------- */

// Parse reads the whole token sequence as top-level statements.
func (p *Parser) Parse() (*ast.Statements, error) {
	stmts, err := p.parseStatements(p.global)
	if err != nil {
		return nil, err
	}
	if !p.s.EOF() {
		return nil, p.errorAtTop(ErrUnexpectedState, "unmatched '}'")
	}
	return stmts, nil
}

/* -------------------- statements -------------------- */

func (p *Parser) parseStatements(sc *scope.Scope) (*ast.Statements, error) {
	p.s.Save()
	stmts := &ast.Statements{}
	for !p.s.EOF() && !p.s.Top().Is(token.RBRACE) {
		if !p.isSeparator(p.s.Top()) {
			decl, err := p.parseDeclaration(sc)
			if err != nil {
				p.s.Restore()
				return nil, err
			}
			stmts.List = append(stmts.List, decl)
		}
		if p.s.EOF() {
			break
		}

		// A function body is closed by its block; anything else needs a separator.
		if n := len(stmts.List); n > 0 {
			if _, ok := stmts.List[n-1].(*ast.FunctionDeclaration); ok && !p.isSeparator(p.s.Top()) {
				continue
			}
		}
		if !p.isSeparator(p.s.Top()) {
			err := p.errorAtTop(ErrExpectSeparator, "")
			p.s.Restore()
			return nil, err
		}
		p.s.Consume()
	}
	p.s.Drop()
	return stmts, nil
}

func (p *Parser) parseBlock(sc *scope.Scope) (*ast.Block, error) {
	p.s.Save()
	lbrace, err := p.expect(token.LBRACE)
	if err != nil {
		p.s.Restore()
		return nil, err
	}
	stmts, err := p.parseStatements(sc)
	if err != nil {
		p.s.Restore()
		return nil, err
	}
	rbrace, err := p.expect(token.RBRACE)
	if err != nil {
		p.s.Restore()
		return nil, err
	}
	p.s.Drop()
	return &ast.Block{Token: lbrace, Statements: stmts, Close: rbrace}, nil
}

/* -------------------- declarations -------------------- */

// parseDeclaration tries a variable declaration and falls back to a function
// declaration. When both fail and no '(' follows the name, the input was
// meant as a variable and the variable error is returned.
func (p *Parser) parseDeclaration(sc *scope.Scope) (ast.Declaration, error) {
	v, varErr := p.parseVariableDeclaration(sc)
	if varErr == nil {
		return v, nil
	}
	f, fnErr := p.parseFunctionDeclaration(sc)
	if fnErr == nil {
		return f, nil
	}
	if fe, ok := fnErr.(*Error); ok && fe.Kind == ErrExpectToken && fe.Want == token.LPAREN {
		return nil, varErr
	}
	return nil, fnErr
}

func (p *Parser) parseVariableDeclaration(sc *scope.Scope) (*ast.VariableDeclaration, error) {
	p.s.Save()

	typeTok := p.s.Consume()
	typ, err := p.resolveType(sc, typeTok)
	if err != nil {
		p.s.Restore()
		return nil, err
	}
	name, err := p.expectNewIdentifier(sc)
	if err != nil {
		p.s.Restore()
		return nil, err
	}
	if assign := p.s.Consume(); !assign.Is(token.ASSIGN) {
		err := p.errorAt(ErrMustInitialize, p.s.Tell(), assign)
		err.Detail = name.Literal
		p.s.Restore()
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		p.s.Restore()
		return nil, err
	}
	p.s.Drop()

	decl := &ast.VariableDeclaration{Token: typeTok, Type: typ, Ident: name, Name: name.Literal, Initializer: value}
	sc.Define(name.Literal, decl)
	return decl, nil
}

func (p *Parser) parseFunctionDeclaration(outer *scope.Scope) (*ast.FunctionDeclaration, error) {
	p.s.Save()

	sc := scope.NewEnclosed(outer)

	typeTok := p.s.Consume()
	ret, err := p.resolveType(sc, typeTok)
	if err != nil {
		p.s.Restore()
		return nil, err
	}
	name, err := p.expectNewIdentifier(sc)
	if err != nil {
		p.s.Restore()
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		p.s.Restore()
		return nil, err
	}
	// TODO: parse the parameter list into Arguments once typed parameters are declared in sc.
	if _, err := p.expect(token.RPAREN); err != nil {
		p.s.Restore()
		return nil, err
	}
	body, err := p.parseBlock(sc)
	if err != nil {
		p.s.Restore()
		return nil, err
	}
	p.s.Drop()

	return &ast.FunctionDeclaration{
		Token:      typeTok,
		ReturnType: ret,
		Ident:      name,
		Name:       scope.NewQualifier(name.Literal),
		Arguments:  []*ast.Argument{},
		Body:       body,
	}, nil
}

/* -------------------- expressions -------------------- */

// parseExpression accepts a single literal.
func (p *Parser) parseExpression() (ast.Expression, error) {
	p.s.Save()
	tok := p.s.Consume()
	if !tok.IsLiteral() {
		err := p.errorAt(ErrUnexpectedState, p.s.Tell(), tok)
		err.Detail = "only literal expressions are supported, got " + tok.String()
		p.s.Restore()
		return nil, err
	}
	p.s.Drop()
	return &ast.Literal{Token: tok}, nil
}

/* -------------------- helpers -------------------- */

// resolveType maps an already consumed type token to its Type. An unknown
// identifier is registered in sc as an unresolved type.
func (p *Parser) resolveType(sc *scope.Scope, tok token.Token) (*scope.Type, error) {
	idx := p.s.Tell()
	switch {
	case tok.Type.Class() == token.ClassPrimitive:
		typ, ok := sc.ResolveType(tok.Literal)
		if !ok {
			return nil, p.errorAt(ErrUndefinedPrimitive, idx, tok)
		}
		return typ, nil
	case tok.Is(token.IDENT):
		if typ, ok := sc.ResolveType(tok.Literal); ok {
			return typ, nil
		}
		typ := &scope.Type{Kind: scope.Unresolved, Qualifier: scope.NewQualifier(tok.Literal)}
		sc.Define(tok.Literal, typ)
		return typ, nil
	}
	return nil, p.errorAt(ErrExpectType, idx, tok)
}

// expectNewIdentifier consumes an identifier that is not yet bound in sc
// itself. Bindings in outer scopes may be shadowed.
func (p *Parser) expectNewIdentifier(sc *scope.Scope) (token.Token, error) {
	tok := p.s.Consume()
	if !tok.Is(token.IDENT) {
		return tok, p.errorAt(ErrExpectIdentifier, p.s.Tell(), tok)
	}
	if _, ok := sc.ResolveLocal(tok.Literal); ok {
		err := p.errorAt(ErrRedefined, p.s.Tell(), tok)
		err.Detail = tok.Literal
		return tok, err
	}
	return tok, nil
}

func (p *Parser) expect(t token.Type) (token.Token, error) {
	if !p.s.Top().Is(t) {
		err := p.errorAtTop(ErrExpectToken, "")
		err.Want = t
		return p.s.Top(), err
	}
	return p.s.Consume(), nil
}

func (p *Parser) isSeparator(tok token.Token) bool {
	return tok.Is(token.SEMICOLON) || (p.lineSeparators && tok.IsLineSeparator())
}

func (p *Parser) errorAt(kind ErrorKind, idx int, tok token.Token) *Error {
	return &Error{Kind: kind, Index: idx, Token: tok}
}

func (p *Parser) errorAtTop(kind ErrorKind, detail string) *Error {
	return &Error{Kind: kind, Index: p.s.Tell() + 1, Token: p.s.Top(), Detail: detail}
}
