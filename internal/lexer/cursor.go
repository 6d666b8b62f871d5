package lexer

import (
	"io"
	"strings"
)

// EOF is the sentinel Top returns once the source is exhausted. It is never a
// valid input character.
const EOF rune = -1

// Cursor gives one-character lookahead over a rune source.
//
// Row and Col locate the character currently under Top: Row is 1 on the first
// character (0 for an empty source), Col starts at 1 and drops back to 0 when
// the character under Top is a newline, so the first character of the next
// line is at column 1. At EOF the position stays on the last character.
type Cursor struct {
	r   io.RuneReader
	err error

	ch   rune
	row  int
	col  int
	read int
}

func NewCursor(r io.RuneReader) *Cursor {
	c := &Cursor{r: r}
	c.advance()
	if c.ch != EOF {
		c.row = 1
	}
	return c
}

func NewStringCursor(src string) *Cursor {
	return NewCursor(strings.NewReader(src))
}

func (c *Cursor) advance() {
	ch, _, err := c.r.ReadRune()
	if err != nil {
		if err != io.EOF {
			c.err = err
		}
		c.ch = EOF
		return
	}
	c.ch = ch
	if ch == '\n' {
		c.row++
		c.col = -1
	}
	c.col++
}

// Top returns the current character without advancing.
func (c *Cursor) Top() rune { return c.ch }

// Consume returns the current character and advances by one.
func (c *Cursor) Consume() rune {
	old := c.ch
	if old != EOF {
		c.read++
		c.advance()
	}
	return old
}

func (c *Cursor) EOF() bool { return c.ch == EOF }

func (c *Cursor) Row() int { return c.row }
func (c *Cursor) Col() int { return c.col }

// Tell is the number of characters consumed so far.
func (c *Cursor) Tell() int { return c.read }

// Err reports a read failure of the underlying source, which the cursor
// otherwise treats as end of input.
func (c *Cursor) Err() error { return c.err }
