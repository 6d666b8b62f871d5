package lsp

import "sort"

// EncodeSemanticTokens produces the relative five-integer encoding of
// textDocument/semanticTokens: delta line, delta start, length, type and
// modifiers.
func EncodeSemanticTokens(toks []SemTok) []uint32 {
	sort.SliceStable(toks, func(i, j int) bool {
		if toks[i].Line != toks[j].Line {
			return toks[i].Line < toks[j].Line
		}
		return toks[i].Start < toks[j].Start
	})

	data := make([]uint32, 0, 5*len(toks))
	var prevLine, prevStart uint32
	for _, t := range toks {
		if t.Length == 0 {
			continue
		}
		deltaStart := t.Start
		if t.Line == prevLine {
			deltaStart = t.Start - prevStart
		}
		data = append(data, t.Line-prevLine, deltaStart, t.Length, uint32(t.Type), uint32(t.Mods))
		prevLine, prevStart = t.Line, t.Start
	}
	return data
}
