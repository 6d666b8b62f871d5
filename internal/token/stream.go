package token

// Stream is a backtracking cursor over a finite token sequence.
//
// Save pushes the current position onto a checkpoint stack; every Save must be
// paired with exactly one Restore (rewind) or Drop (commit) on every path,
// error paths included.
type Stream struct {
	tokens      []Token
	pos         int // index of the next token to consume
	checkpoints []int
}

func NewStream(tokens []Token) *Stream {
	return &Stream{tokens: tokens}
}

func (s *Stream) EOF() bool { return s.pos >= len(s.tokens) }

// Top returns the next token without consuming it; past the end it returns
// an EOF token.
func (s *Stream) Top() Token {
	if s.EOF() {
		return s.eofToken()
	}
	return s.tokens[s.pos]
}

// Consume returns the next token and advances past it.
func (s *Stream) Consume() Token {
	tok := s.Top()
	if !s.EOF() {
		s.pos++
	}
	return tok
}

// Tell is the index of the last consumed token (-1 before the first Consume).
func (s *Stream) Tell() int { return s.pos - 1 }

func (s *Stream) Save() {
	s.checkpoints = append(s.checkpoints, s.pos)
}

// Restore pops the newest checkpoint and rewinds to it. It returns the
// position that was abandoned.
func (s *Stream) Restore() int {
	abandoned := s.pos
	s.pos = s.pop()
	return abandoned
}

// Drop pops the newest checkpoint and keeps the current position.
func (s *Stream) Drop() {
	s.pop()
}

// Depth is the number of open checkpoints.
func (s *Stream) Depth() int { return len(s.checkpoints) }

func (s *Stream) Len() int { return len(s.tokens) }

func (s *Stream) pop() int {
	n := len(s.checkpoints)
	if n == 0 {
		panic("token: Restore/Drop without matching Save")
	}
	p := s.checkpoints[n-1]
	s.checkpoints = s.checkpoints[:n-1]
	return p
}

func (s *Stream) eofToken() Token {
	tok := Token{Type: EOF}
	if n := len(s.tokens); n > 0 {
		last := s.tokens[n-1]
		tok.Line = last.Line
		tok.Col = last.Col + last.Len()
	}
	return tok
}
