package lsp

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Pos is a 1-based line and rune column, the way tokens and diagnostics
// count.
type Pos struct {
	Line int
	Col  int
}

// Lines splits a document for repeated position conversions.
type Lines []string

func SplitLines(text string) Lines {
	return strings.Split(text, "\n")
}

func (ls Lines) line(n int) (string, bool) {
	if n < 1 || n > len(ls) {
		return "", false
	}
	return ls[n-1], true
}

func runeWidth(r rune) uint32 {
	if n := utf16.RuneLen(r); n > 0 {
		return uint32(n)
	}
	return 1
}

// utf16Col converts a 1-based rune column into a 0-based UTF-16 offset.
func utf16Col(lineText string, col int) uint32 {
	var count uint32
	i := 1
	for _, r := range lineText {
		if i >= col {
			break
		}
		count += runeWidth(r)
		i++
	}
	if i < col {
		// Past the end of the line, e.g. the position after the last token.
		count += uint32(col - i)
	}
	return count
}

// runeCol converts a 0-based UTF-16 offset into a 1-based rune column.
func runeCol(lineText string, ch uint32) int {
	var count uint32
	col := 1
	for _, r := range lineText {
		w := runeWidth(r)
		if count+w > ch {
			return col
		}
		count += w
		col++
	}
	return col
}

// Range converts a 1-based start and a rune length into an LSP range on a
// single line. Lengths below one are widened to one character.
func (ls Lines) Range(line, col, length int) protocol.Range {
	text, _ := ls.line(line)
	start := protocol.Position{Character: utf16Col(text, col)}
	if line > 0 {
		start.Line = uint32(line - 1)
	}
	if length < 1 {
		length = 1
	}
	end := protocol.Position{Line: start.Line, Character: utf16Col(text, col+length)}
	if end.Character <= start.Character {
		end.Character = start.Character + 1
	}
	return protocol.Range{Start: start, End: end}
}

// Pos converts an LSP position back to a token position.
func (ls Lines) Pos(p protocol.Position) (Pos, bool) {
	text, ok := ls.line(int(p.Line) + 1)
	if !ok {
		return Pos{}, false
	}
	return Pos{Line: int(p.Line) + 1, Col: runeCol(text, p.Character)}, true
}

// Offset is the byte offset of a 1-based position in text.
func Offset(text string, p Pos) int {
	line := 1
	i := 0
	for line < p.Line && i < len(text) {
		if text[i] == '\n' {
			line++
		}
		i++
	}
	col := 1
	for col < p.Col && i < len(text) && text[i] != '\n' {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
		col++
	}
	return i
}
