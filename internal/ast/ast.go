package ast

import (
	"bytes"
	"strings"

	"chomsky/internal/scope"
	"chomsky/internal/token"
)

type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Declaration is a statement that introduces a name.
type Declaration interface {
	Statement
	declarationNode()
}

/* -------------------- Statements -------------------- */

type Statements struct {
	List []Statement
}

func (*Statements) statementNode() {}
func (s *Statements) TokenLiteral() string {
	if len(s.List) > 0 {
		return s.List[0].TokenLiteral()
	}
	return ""
}
func (s *Statements) String() string {
	parts := make([]string, len(s.List))
	for i, st := range s.List {
		parts[i] = st.String()
	}
	return strings.Join(parts, "\n")
}

type Block struct {
	Token      token.Token // '{'
	Statements *Statements
	Close      token.Token // '}'
}

func (*Block) statementNode()         {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	if body := b.Statements.String(); body != "" {
		for _, line := range strings.Split(body, "\n") {
			out.WriteString("    ")
			out.WriteString(line)
			out.WriteString("\n")
		}
	}
	out.WriteString("}")
	return out.String()
}

/* -------------------- Declarations -------------------- */

type VariableDeclaration struct {
	Token       token.Token // the type token
	Type        *scope.Type
	Ident       token.Token
	Name        string
	Initializer Expression
}

func (*VariableDeclaration) statementNode()               {}
func (*VariableDeclaration) declarationNode()             {}
func (*VariableDeclaration) SymbolKind() scope.SymbolKind { return scope.DeclSymbol }
func (v *VariableDeclaration) TokenLiteral() string       { return v.Token.Literal }
func (v *VariableDeclaration) String() string {
	return v.Type.String() + " " + v.Name + " = " + v.Initializer.String() + ";"
}

// Argument is a function parameter. Parameter lists are not parsed yet, so
// FunctionDeclaration.Arguments is always empty.
type Argument struct {
	Type *scope.Type
	Name string
}

func (a *Argument) String() string { return a.Type.String() + " " + a.Name }

type FunctionDeclaration struct {
	Token      token.Token // the return type token
	ReturnType *scope.Type
	Ident      token.Token
	Name       *scope.Qualifier
	Arguments  []*Argument
	Body       *Block
}

func (*FunctionDeclaration) statementNode()               {}
func (*FunctionDeclaration) declarationNode()             {}
func (*FunctionDeclaration) SymbolKind() scope.SymbolKind { return scope.DeclSymbol }
func (f *FunctionDeclaration) TokenLiteral() string       { return f.Token.Literal }
func (f *FunctionDeclaration) String() string {
	args := make([]string, len(f.Arguments))
	for i, a := range f.Arguments {
		args[i] = a.String()
	}
	return f.ReturnType.String() + " " + f.Name.String() + "(" + strings.Join(args, ", ") + ")" + f.Body.String()
}

/* -------------------- Expressions -------------------- */

// Literal wraps a literal token; it is the only expression form.
type Literal struct {
	Token token.Token
}

func (*Literal) expressionNode()        {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }

// String renders the literal's first attribute: the numeric value, the quoted
// string, or true/false.
func (l *Literal) String() string {
	attrs := l.Token.Attributes()
	if len(attrs) == 0 {
		return ""
	}
	return attrs[0]
}
