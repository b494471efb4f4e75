package lexer

import (
	"fmt"
	"strings"

	"github.com/corelang/lexcore/token"
	"github.com/corelang/lexcore/unescape"
)

// scanQuoteOrLifetime disambiguates a lifetime from a character
// literal. The opening quote has not yet been consumed. If an
// ident-start (or digit) follows and the character after that is not
// itself a closing quote, this is a lifetime; otherwise it's a
// character literal.
func (l *Lexer) scanQuoteOrLifetime(start int) rawToken {
	l.cur.bump() // opening '\''

	if (isIdentStart(l.cur.ch) || isDecDigit(l.cur.ch)) && l.cur.peek1() != '\'' {
		startsWithDigit := isDecDigit(l.cur.ch)
		nameStart := l.cur.pos
		l.scanIdentRun()

		if l.cur.ch == '\'' {
			// A closing quote after all: not a lifetime, but a
			// character literal whose body happens to look like an
			// identifier (e.g. 'ab').
			bodyEnd := l.cur.pos
			l.cur.bump()
			body := string(l.cur.slice(nameStart, bodyEnd))
			sym := l.intern(body)
			l.validateEscapes(nameStart, body, unescape.ModeChar)
			return rawToken{kind: token.Literal, lit: token.Lit{Kind: token.Char, Symbol: sym}}
		}

		if startsWithDigit {
			span, _ := l.mkSpan(start, l.cur.pos)
			l.recoverable(span, "lifetimes cannot start with a number")
		}
		sym := l.intern("'" + string(l.cur.slice(nameStart, l.cur.pos)))
		return rawToken{kind: token.Lifetime, sym: sym}
	}

	return l.scanCharLiteral(start)
}

// scanCharLiteral scans a single-quoted literal body: it scans until
// a matching unescaped `'`, honoring `\\` and `\'` as two-character
// skip sequences. `'''` is specially accepted as a recovery form for
// `'\''`.
func (l *Lexer) scanCharLiteral(start int) rawToken {
	bodyStart := l.cur.pos

	if l.cur.ch == '\'' && l.cur.peek1() == '\'' {
		l.cur.bump() // second quote
		l.cur.bump() // closing (third) quote
		span, _ := l.mkSpan(start, l.cur.pos)
		l.recoverable(span, "character literal may only contain one codepoint; escape the quote as `\\'`")
		sym := l.intern(`\'`)
		return rawToken{kind: token.Literal, lit: token.Lit{Kind: token.Char, Symbol: sym}}
	}

	for {
		switch {
		case l.cur.isEOF(), l.cur.ch == '\n' && l.cur.peek1() != '\'':
			span, _ := l.mkSpan(start, l.cur.pos)
			l.fatal(span, "unterminated character literal")
		case l.cur.ch == '/' && l.cur.pos != bodyStart:
			span, _ := l.mkSpan(start, l.cur.pos)
			l.fatal(span, "unterminated character literal")
		case l.cur.ch == '\\':
			l.cur.bump()
			if !l.cur.isEOF() {
				l.cur.bump()
			}
		case l.cur.ch == '\'':
			bodyEnd := l.cur.pos
			l.cur.bump()
			body := string(l.cur.slice(bodyStart, bodyEnd))
			sym := l.intern(body)
			l.validateEscapes(bodyStart, body, unescape.ModeChar)
			return rawToken{kind: token.Literal, lit: token.Lit{Kind: token.Char, Symbol: sym}}
		default:
			l.cur.bump()
		}
	}
}

// scanByteLiteral scans a b'...' literal body; the opening b' has
// already been consumed.
func (l *Lexer) scanByteLiteral(start int) rawToken {
	bodyStart := l.cur.pos
	for {
		switch {
		case l.cur.isEOF(), l.cur.ch == '\n' && l.cur.peek1() != '\'':
			span, _ := l.mkSpan(start, l.cur.pos)
			l.fatal(span, "unterminated byte literal")
		case l.cur.ch == '\\':
			l.cur.bump()
			if !l.cur.isEOF() {
				l.cur.bump()
			}
		case l.cur.ch == '\'':
			bodyEnd := l.cur.pos
			l.cur.bump()
			body := string(l.cur.slice(bodyStart, bodyEnd))
			sym := l.intern(body)
			l.validateEscapes(bodyStart, body, unescape.ModeByte)
			return rawToken{kind: token.Literal, lit: token.Lit{Kind: token.Byte, Symbol: sym}}
		default:
			l.cur.bump()
		}
	}
}

// scanDoubleQuoted scans a "-delimited string: it reads until an
// unescaped ", honoring \" and \\ as two-character skip sequences.
// The opening quote has already been consumed.
func (l *Lexer) scanDoubleQuoted(start int, isByte bool) rawToken {
	bodyStart := l.cur.pos
	what := "string"
	if isByte {
		what = "byte string"
	}
	for {
		switch {
		case l.cur.isEOF():
			span, _ := l.mkSpan(start, l.cur.pos)
			l.fatal(span, "unterminated "+what+" literal")
		case l.cur.ch == '\\':
			l.cur.bump()
			if !l.cur.isEOF() {
				l.cur.bump()
			}
		case l.cur.ch == '"':
			bodyEnd := l.cur.pos
			l.cur.bump()
			body := string(l.cur.slice(bodyStart, bodyEnd))
			sym := l.intern(body)
			mode, litKind := unescape.ModeStr, token.Str
			if isByte {
				mode, litKind = unescape.ModeByteStr, token.ByteStr
			}
			l.validateEscapes(bodyStart, body, mode)
			return rawToken{kind: token.Literal, lit: token.Lit{Kind: litKind, Symbol: sym}}
		default:
			l.cur.bump()
		}
	}
}

// maxRawHashes is the largest number of '#' fence characters a raw
// string may use: a literal's hash count fits in a 16-bit field.
const maxRawHashes = 65535

// scanRawQuoted scans a raw string or raw byte string: `r`/`br` has
// been consumed; the cursor sits on the first '#' of the fence, or
// directly on the opening '"' if there is none.
func (l *Lexer) scanRawQuoted(start int, isByte bool) rawToken {
	nHashes := 0
	for l.cur.ch == '#' {
		nHashes++
		l.cur.bump()
	}
	if nHashes > maxRawHashes {
		span, _ := l.mkSpan(start, l.cur.pos)
		l.fatal(span, fmt.Sprintf("too many `#` symbols: raw strings may be delimited by up to %d `#` symbols", maxRawHashes))
	}
	if l.cur.ch != '"' {
		span, _ := l.mkSpan(start, l.cur.nextPos)
		l.fatal(span, "found invalid character; only `#` is allowed in raw string delimitation")
	}
	l.cur.bump() // opening '"'
	bodyStart := l.cur.pos

	for {
		switch {
		case l.cur.isEOF():
			span, _ := l.mkSpan(start, l.cur.pos)
			l.fatal(span, fmt.Sprintf("unterminated raw string literal; expected a closing `\"%s`", strings.Repeat("#", nHashes)))
		case l.cur.ch == '\r' && l.cur.peek1() != '\n':
			span, _ := l.mkSpan(l.cur.pos, l.cur.nextPos)
			l.recoverable(span, "bare CR not allowed in raw string; use \\r instead")
			l.cur.bump()
		case l.cur.ch == '"' && l.matchClosingHashes(nHashes):
			bodyEnd := l.cur.pos
			l.cur.bump()
			for i := 0; i < nHashes; i++ {
				l.cur.bump()
			}
			body := l.cur.slice(bodyStart, bodyEnd)
			if isByte {
				if i := firstNonASCII(body); i >= 0 {
					span, _ := l.mkSpan(bodyStart+i, bodyStart+i+1)
					l.recoverable(span, "non-ASCII character in raw byte string literal")
				}
			}
			sym := l.intern(string(body))
			litKind := token.StrRaw
			if isByte {
				litKind = token.ByteStrRaw
			}
			suffix, _ := l.scanOptionalSuffix()
			return rawToken{kind: token.Literal, lit: token.Lit{Kind: litKind, Symbol: sym, HashCount: uint16(nHashes)}, suffix: suffix}
		default:
			l.cur.bump()
		}
	}
}

// matchClosingHashes reports whether the cursor (positioned on a '"')
// is followed by n '#' characters, without consuming anything. Bytes
// after those n are not examined.
func (l *Lexer) matchClosingHashes(n int) bool {
	lo := l.cur.nextPos
	hi := lo + n
	if hi > l.cur.end {
		return false
	}
	for i := lo; i < hi; i++ {
		if l.cur.src[i] != '#' {
			return false
		}
	}
	return true
}

func firstNonASCII(b []byte) int {
	for i, c := range b {
		if c > 0x7F {
			return i
		}
	}
	return -1
}

// validateEscapes runs body through the mode-appropriate unescape
// validator, turning each reported error into a recoverable diagnostic
// positioned at its exact offset within the literal.
func (l *Lexer) validateEscapes(bodyStart int, body string, mode unescape.Mode) {
	var validate func(string, unescape.Callback)
	switch mode {
	case unescape.ModeChar:
		validate = unescape.Char
	case unescape.ModeByte:
		validate = unescape.Byte
	case unescape.ModeStr:
		validate = unescape.Str
	case unescape.ModeByteStr:
		validate = unescape.ByteStr
	default:
		return
	}
	validate(body, func(r unescape.Range, _ rune, err error) {
		if err == nil {
			return
		}
		span, _ := l.mkSpan(bodyStart+r.Start, bodyStart+r.End)
		l.recoverable(span, err.Error())
	})
}
