package lexer

import "unicode/utf8"

// eof is the sentinel value of cursor.ch once the cursor has run off
// the end of its range. It cannot collide with a decoded rune.
const eof = -1

// cursor is the source cursor: it owns a reference to the source
// bytes and a pair of offsets (pos, nextPos) plus a one-character
// lookahead cache (ch). end narrows the range the
// cursor is willing to read past — normally len(src), but narrower
// when [Lexer.Retokenize] anchors a lexer on a sub-range of a larger
// file.
type cursor struct {
	src []byte
	end int // exclusive upper bound, end <= len(src)

	pos     int  // offset of the current character
	nextPos int  // offset of the next character
	ch      rune // current character, eof past the end
}

func newCursor(src []byte, start, end int) *cursor {
	c := &cursor{src: src, end: end, pos: start, nextPos: start, ch: eof}
	c.bump()
	return c
}

// bump advances to the next character. It is idempotent once ch has
// become eof: pos and nextPos both sit at end and further calls are
// no-ops.
func (c *cursor) bump() {
	if c.nextPos >= c.end {
		c.pos = c.end
		c.nextPos = c.end
		c.ch = eof
		return
	}
	r, w := utf8.DecodeRune(c.src[c.nextPos:c.end])
	c.pos = c.nextPos
	c.ch = r
	c.nextPos += w
}

// peek1 returns the character at nextPos without moving the cursor.
func (c *cursor) peek1() rune {
	if c.nextPos >= c.end {
		return eof
	}
	r, _ := utf8.DecodeRune(c.src[c.nextPos:c.end])
	return r
}

// peek2 returns the character following peek1, without moving the cursor.
func (c *cursor) peek2() rune {
	if c.nextPos >= c.end {
		return eof
	}
	_, w := utf8.DecodeRune(c.src[c.nextPos:c.end])
	idx := c.nextPos + w
	if idx >= c.end {
		return eof
	}
	r, _ := utf8.DecodeRune(c.src[idx:c.end])
	return r
}

// isEOF reports whether the cursor has run off the end of its range.
func (c *cursor) isEOF() bool {
	return c.ch == eof
}

// slice returns the raw bytes of the source in [lo, hi).
func (c *cursor) slice(lo, hi int) []byte {
	return c.src[lo:hi]
}
