package token

import (
	"strconv"
	"strings"
)

type Type string

// Token is a single lexeme. Literal carries the payload: the identifier name,
// the decoded string value, the number text, the keyword/type/operator
// spelling, or the comment body. Raw, Line and Col take no part in equality.
type Token struct {
	Type    Type
	Literal string
	// Raw preserves the original lexeme when Literal is normalized (strings, floats, comments).
	Raw  string
	Line int
	Col  int
}

const (
	// Special
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	// Identifiers + literals
	IDENT  Type = "IDENT"
	STRING Type = "STRING"
	BOOL   Type = "BOOL"
	INT    Type = "INT"
	FLOAT  Type = "FLOAT"
	DOUBLE Type = "DOUBLE"

	// Punctuation
	LPAREN    Type = "("
	RPAREN    Type = ")"
	LBRACKET  Type = "["
	RBRACKET  Type = "]"
	LBRACE    Type = "{"
	RBRACE    Type = "}"
	SEMICOLON Type = ";"
	COMMA     Type = ","

	// Keywords
	WHILE Type = "WHILE"
	WHEN  Type = "WHEN"
	DO    Type = "DO"
	IF    Type = "IF"
	ELSE  Type = "ELSE"

	// Primitive types
	VOID        Type = "VOID"
	BOOLEAN     Type = "BOOLEAN"
	CHAR        Type = "CHAR"
	BYTE        Type = "BYTE"
	SHORT       Type = "SHORT"
	INT_TYPE    Type = "INT_TYPE"
	LONG        Type = "LONG"
	FLOAT_TYPE  Type = "FLOAT_TYPE"
	DOUBLE_TYPE Type = "DOUBLE_TYPE"

	// Operators
	BANG   Type = "!"
	PLUS   Type = "+"
	INC    Type = "++"
	MINUS  Type = "-"
	DEC    Type = "--"
	STAR   Type = "*"
	SLASH  Type = "/"
	ASSIGN Type = "="
	EQ     Type = "=="
	NE     Type = "!="
	GT     Type = ">"
	LT     Type = "<"

	// Comments
	LINE_COMMENT  Type = "LINE_COMMENT"
	BLOCK_COMMENT Type = "BLOCK_COMMENT"

	// Line separators
	CRLF Type = "CRLF"
	LF   Type = "LF"
	CR   Type = "CR"
)

// Class groups token types into the variant families of the language.
type Class int

const (
	ClassSpecial Class = iota
	ClassIdentifier
	ClassLiteral
	ClassPunctuation
	ClassKeyword
	ClassPrimitive
	ClassOperator
	ClassComment
	ClassLineSeparator
)

var keywords = map[string]Type{
	"while": WHILE,
	"when":  WHEN,
	"do":    DO,
	"if":    IF,
	"else":  ELSE,
}

var primitives = map[string]Type{
	"void":    VOID,
	"boolean": BOOLEAN,
	"char":    CHAR,
	"byte":    BYTE,
	"short":   SHORT,
	"int":     INT_TYPE,
	"long":    LONG,
	"float":   FLOAT_TYPE,
	"double":  DOUBLE_TYPE,
}

// PrimitiveNames lists the primitive type spellings in declaration order.
var PrimitiveNames = []string{"void", "boolean", "char", "byte", "short", "int", "long", "float", "double"}

var punctuation = map[rune]Type{
	'(': LPAREN,
	')': RPAREN,
	'[': LBRACKET,
	']': RBRACKET,
	'{': LBRACE,
	'}': RBRACE,
	';': SEMICOLON,
	',': COMMA,
}

var operators = map[string]Type{
	"!":  BANG,
	"+":  PLUS,
	"++": INC,
	"-":  MINUS,
	"--": DEC,
	"*":  STAR,
	"/":  SLASH,
	"=":  ASSIGN,
	"==": EQ,
	"!=": NE,
	">":  GT,
	"<":  LT,
}

var lineSeparators = map[Type]string{
	CRLF: "\r\n",
	LF:   "\n",
	CR:   "\r",
}

func LookupKeyword(word string) (Type, bool) {
	tt, ok := keywords[word]
	return tt, ok
}

func LookupPrimitive(word string) (Type, bool) {
	tt, ok := primitives[word]
	return tt, ok
}

func LookupPunctuation(ch rune) (Type, bool) {
	tt, ok := punctuation[ch]
	return tt, ok
}

func LookupOperator(op string) (Type, bool) {
	tt, ok := operators[op]
	return tt, ok
}

func (t Type) Class() Class {
	switch t {
	case IDENT:
		return ClassIdentifier
	case STRING, BOOL, INT, FLOAT, DOUBLE:
		return ClassLiteral
	case LPAREN, RPAREN, LBRACKET, RBRACKET, LBRACE, RBRACE, SEMICOLON, COMMA:
		return ClassPunctuation
	case WHILE, WHEN, DO, IF, ELSE:
		return ClassKeyword
	case VOID, BOOLEAN, CHAR, BYTE, SHORT, INT_TYPE, LONG, FLOAT_TYPE, DOUBLE_TYPE:
		return ClassPrimitive
	case BANG, PLUS, INC, MINUS, DEC, STAR, SLASH, ASSIGN, EQ, NE, GT, LT:
		return ClassOperator
	case LINE_COMMENT, BLOCK_COMMENT:
		return ClassComment
	case CRLF, LF, CR:
		return ClassLineSeparator
	}
	return ClassSpecial
}

func (t Token) Is(tt Type) bool { return t.Type == tt }

func (t Token) IsLiteral() bool       { return t.Type.Class() == ClassLiteral }
func (t Token) IsComment() bool       { return t.Type.Class() == ClassComment }
func (t Token) IsLineSeparator() bool { return t.Type.Class() == ClassLineSeparator }
func (t Token) IsNumber() bool        { return t.Type == INT || t.Type == FLOAT || t.Type == DOUBLE }

// Equal reports structural equality: same variant, same payload.
func (t Token) Equal(other Token) bool {
	return t.Type == other.Type && t.Literal == other.Literal
}

// Equal compares two token sequences structurally.
func Equal(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// WithoutComments returns a copy of toks with every comment token removed.
func WithoutComments(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		if t.IsComment() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Kind names the variant the way String renders it.
func (t Token) Kind() string {
	switch t.Type {
	case IDENT:
		return "Identifier"
	case STRING:
		return "StringLiteral"
	case BOOL:
		return "BooleanLiteral"
	case INT:
		return "IntegerLiteral"
	case FLOAT:
		return "FloatLiteral"
	case DOUBLE:
		return "DoubleLiteral"
	case LINE_COMMENT:
		return "SingleLineComment"
	case BLOCK_COMMENT:
		return "MultilineComment"
	}
	switch t.Type.Class() {
	case ClassPunctuation:
		return "Punctuation"
	case ClassKeyword:
		return "Keyword"
	case ClassPrimitive:
		return "Primitive"
	case ClassOperator:
		return "Operator"
	case ClassLineSeparator:
		return "LineSeparator"
	}
	return string(t.Type)
}

// Attributes returns the rendered payload of the token, in order.
func (t Token) Attributes() []string {
	switch t.Type {
	case EOF:
		return nil
	case STRING:
		return []string{`"` + t.Literal + `"`}
	case INT, FLOAT, DOUBLE:
		return []string{t.Value(), `"` + t.Literal + `"`}
	case CRLF, LF, CR:
		return []string{string(t.Type)}
	}
	return []string{t.Literal}
}

// Value renders the numeric value of a number literal; other tokens render
// their payload unchanged.
func (t Token) Value() string {
	switch t.Type {
	case INT:
		if v, err := strconv.ParseInt(t.Literal, 10, 64); err == nil {
			return strconv.FormatInt(v, 10)
		}
	case FLOAT:
		if v, err := strconv.ParseFloat(t.Literal, 32); err == nil {
			return strconv.FormatFloat(v, 'f', -1, 32)
		}
	case DOUBLE:
		if v, err := strconv.ParseFloat(t.Literal, 64); err == nil {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return t.Literal
}

// String renders <Kind> or <Kind, attr1, attr2>.
func (t Token) String() string {
	attrs := t.Attributes()
	if len(attrs) == 0 {
		return "<" + t.Kind() + ">"
	}
	return "<" + t.Kind() + ", " + strings.Join(attrs, ", ") + ">"
}

// Len is the number of characters the token occupied in the source.
func (t Token) Len() int {
	if t.Raw != "" {
		return len([]rune(t.Raw))
	}
	if t.IsLineSeparator() {
		return len(lineSeparators[t.Type])
	}
	return len([]rune(t.Literal))
}
