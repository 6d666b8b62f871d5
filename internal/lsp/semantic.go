package lsp

import (
	"chomsky/internal/token"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// semantic token type indices (must match Legend order)
const (
	ttKeyword  = 0
	ttString   = 1
	ttNumber   = 2
	ttOperator = 3
	ttFunction = 4
	ttVariable = 5
	ttType     = 6
	ttComment  = 7
)

const (
	modDecl           = 1 << 0
	modDefaultLibrary = 1 << 1
)

func Legend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{
		TokenTypes: []string{
			string(protocol.SemanticTokenTypeKeyword),
			string(protocol.SemanticTokenTypeString),
			string(protocol.SemanticTokenTypeNumber),
			string(protocol.SemanticTokenTypeOperator),
			string(protocol.SemanticTokenTypeFunction),
			string(protocol.SemanticTokenTypeVariable),
			string(protocol.SemanticTokenTypeType),
			string(protocol.SemanticTokenTypeComment),
		},
		TokenModifiers: []string{
			string(protocol.SemanticTokenModifierDeclaration),
			string(protocol.SemanticTokenModifierDefaultLibrary),
		},
	}
}

// SemTok is a semantic token in LSP coordinates: 0-based line, UTF-16
// start and length.
type SemTok struct {
	Line   uint32
	Start  uint32
	Length uint32
	Type   int
	Mods   int
}

// Classify maps a token to its semantic type and modifiers from its class
// alone. Punctuation and line separators are not highlighted.
func Classify(tok token.Token) (typ, mods int, ok bool) {
	switch tok.Type.Class() {
	case token.ClassKeyword:
		return ttKeyword, 0, true
	case token.ClassPrimitive:
		return ttType, modDefaultLibrary, true
	case token.ClassOperator:
		return ttOperator, 0, true
	case token.ClassComment:
		return ttComment, 0, true
	case token.ClassIdentifier:
		return ttVariable, 0, true
	case token.ClassLiteral:
		switch tok.Type {
		case token.STRING:
			return ttString, 0, true
		case token.BOOL:
			return ttKeyword, 0, true
		}
		return ttNumber, 0, true
	}
	return 0, 0, false
}
