package lexer

import (
	"unicode"

	"github.com/corelang/lexcore/token"
)

// isIdentStart reports whether c can begin an identifier: "_", an
// ASCII letter, or any non-ASCII character satisfying Unicode
// XID_Start. Go's unicode package does not ship XID_Start directly,
// but XID is UAX #31's closure of ID under NFKC; approximating it as
// letters, letter-numbers, and the Other_ID_Start carve-outs is the
// standard construction and needs no third-party Unicode database
// (see DESIGN.md).
func isIdentStart(c rune) bool {
	if c < 0 {
		return false
	}
	if c == '_' {
		return true
	}
	if c <= unicode.MaxASCII {
		return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
	}
	return unicode.IsLetter(c) || unicode.Is(unicode.Nl, c) || unicode.Is(unicode.Other_ID_Start, c)
}

// isIdentContinue reports whether c can continue an identifier:
// "ASCII alphanumerics, _, or XID_Continue".
func isIdentContinue(c rune) bool {
	if c < 0 {
		return false
	}
	if c == '_' {
		return true
	}
	if c <= unicode.MaxASCII {
		return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
	}
	return unicode.IsLetter(c) || unicode.IsDigit(c) ||
		unicode.Is(unicode.Mn, c) || unicode.Is(unicode.Mc, c) ||
		unicode.Is(unicode.Nl, c) || unicode.Is(unicode.Pc, c) ||
		unicode.Is(unicode.Other_ID_Start, c) || unicode.Is(unicode.Other_ID_Continue, c)
}

// scanIdentRun consumes the run of ident-continue characters starting
// at the cursor (which must already be positioned on the first
// character of the identifier), leaving the cursor on the first
// character that cannot continue it.
func (l *Lexer) scanIdentRun() {
	l.cur.bump()
	for isIdentContinue(l.cur.ch) {
		l.cur.bump()
	}
}

// scanIdentOrRawIdent scans an identifier or raw identifier. The
// current character is known to be ident-start (or the
// raw-ident-introducing 'r'); on entry the 'r#' prefix, if any, has
// not yet been consumed.
func (l *Lexer) scanIdentOrRawIdent(rawStart int, isRaw bool) (sym token.Symbol, raw bool) {
	if isRaw {
		l.cur.bump() // 'r'
		l.cur.bump() // '#'
	}

	start := l.cur.pos
	l.scanIdentRun()
	text := string(l.cur.slice(start, l.cur.pos))
	sym = l.intern(text)

	if isRaw {
		span, _ := l.mkSpan(rawStart, l.cur.pos)
		if isReservedNeverRaw(text) {
			l.recoverable(span, "`r#"+text+"` cannot be a raw identifier")
		}
		l.RawIdentifierSpans = append(l.RawIdentifierSpans, span)
	}

	return sym, isRaw
}

// isReservedNeverRaw reports whether name is a reserved word that can
// never be written as a raw identifier. "_" can't name anything and
// "r#_" especially makes no sense; "crate"/"self"/"super"/"Self" are
// path-relative keywords whose meaning a raw prefix cannot escape.
func isReservedNeverRaw(name string) bool {
	switch name {
	case "_", "crate", "self", "super", "Self":
		return true
	default:
		return false
	}
}

// scanOptionalSuffix scans an ident-shaped suffix following a
// literal body (e.g. the "u32" in 2u32). A bare "_" suffix is
// reported and dropped (returns zero Symbol, false).
func (l *Lexer) scanOptionalSuffix() (sym token.Symbol, present bool) {
	if !isIdentStart(l.cur.ch) {
		return 0, false
	}
	start := l.cur.pos
	l.scanIdentRun()
	text := string(l.cur.slice(start, l.cur.pos))
	if text == "_" {
		span, _ := l.mkSpan(start, l.cur.pos)
		l.recoverable(span, "underscore literal suffix is not allowed")
		return 0, false
	}
	return l.intern(text), true
}
