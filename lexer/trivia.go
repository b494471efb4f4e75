package lexer

import "unicode"

// isPatternWhiteSpace reports whether c counts as whitespace: any
// character with the Unicode Pattern_White_Space property, which the
// stdlib unicode package ships as a stable, forward-compatible table
// (see DESIGN.md for why no third-party Unicode package is needed).
func isPatternWhiteSpace(c rune) bool {
	return c >= 0 && unicode.Is(unicode.Pattern_White_Space, c)
}

// scanWhitespaceOrComment: if the cursor sits on trivia (whitespace,
// a line/block comment, or a leading shebang) it is consumed and the
// resulting token returned; otherwise ok is false and the cursor is
// untouched.
func (l *Lexer) scanWhitespaceOrComment() (tok rawToken, ok bool) {
	switch {
	case l.cur.ch == '/' || l.cur.ch == '#':
		return l.scanCommentOrShebang()
	case isPatternWhiteSpace(l.cur.ch):
		start := l.cur.pos
		for isPatternWhiteSpace(l.cur.ch) {
			l.cur.bump()
		}
		return rawToken{kind: trivWhitespace, lo: start, hi: l.cur.pos}, true
	default:
		return rawToken{}, false
	}
}

// scanCommentOrShebang handles the '/' and '#' entry points: line
// comments, block comments, and a file-leading shebang. '#![' at the
// start of a file is an inner attribute opener, not a shebang or a
// comment.
func (l *Lexer) scanCommentOrShebang() (rawToken, bool) {
	if l.cur.ch == '/' {
		switch l.cur.peek1() {
		case '/':
			return l.scanLineComment(), true
		case '*':
			return l.scanBlockComment(), true
		}
		return rawToken{}, false
	}

	// l.cur.ch == '#'
	if l.cur.peek1() == '!' {
		if l.cur.peek2() == '[' {
			return rawToken{}, false // inner attribute, handled by the dispatcher
		}
		if l.cur.pos == l.startOffset {
			start := l.cur.pos
			for l.cur.ch != '\n' && !l.cur.isEOF() {
				l.cur.bump()
			}
			sym := l.intern(string(l.cur.slice(start, l.cur.pos)))
			return rawToken{kind: trivShebang, lo: start, hi: l.cur.pos, sym: sym}, true
		}
	}
	return rawToken{}, false
}

// scanLineComment handles the "//" branch. A "///" line comment is a
// doc comment unless immediately followed by a fourth '/'; "//!" is
// always a doc comment. A bare '\r' inside a doc comment's body is a
// recoverable error.
func (l *Lexer) scanLineComment() rawToken {
	start := l.cur.pos
	l.cur.bump() // first '/'
	l.cur.bump() // second '/'

	isDoc := (l.cur.ch == '/' && l.cur.peek1() != '/') || l.cur.ch == '!'

	for !l.cur.isEOF() {
		switch l.cur.ch {
		case '\n':
			goto done
		case '\r':
			if l.cur.peek1() == '\n' {
				goto done
			}
			if isDoc {
				span, _ := l.mkSpan(l.cur.pos, l.cur.nextPos)
				l.recoverable(span, "bare CR not allowed in doc-comment")
			}
		}
		l.cur.bump()
	}
done:
	if isDoc {
		sym := l.intern(string(l.cur.slice(start, l.cur.pos)))
		return rawToken{kind: trivDocComment, lo: start, hi: l.cur.pos, sym: sym}
	}
	return rawToken{kind: trivComment, lo: start, hi: l.cur.pos}
}

// scanBlockComment handles the "/*" branch: arbitrary nesting depth,
// doc-comment classification, CRLF normalization inside doc comments,
// and a fatal unterminated error.
func (l *Lexer) scanBlockComment() rawToken {
	start := l.cur.pos
	l.cur.bump() // '/'
	l.cur.bump() // '*'

	level := 1
	hasCR := false
	for level > 0 {
		if l.cur.isEOF() {
			span, _ := l.mkSpan(start, l.cur.pos)
			l.fatal(span, "unterminated block comment")
		}
		switch {
		case l.cur.ch == '/' && l.cur.peek1() == '*':
			level++
			l.cur.bump()
		case l.cur.ch == '*' && l.cur.peek1() == '/':
			level--
			l.cur.bump()
		case l.cur.ch == '\r':
			hasCR = true
		}
		l.cur.bump()
	}

	text := string(l.cur.slice(start, l.cur.pos))
	if !isBlockDocComment(text) {
		return rawToken{kind: trivComment, lo: start, hi: l.cur.pos}
	}
	if hasCR {
		text = l.translateCRLF(start, text, "bare CR not allowed in block doc-comment")
	}
	return rawToken{kind: trivDocComment, lo: start, hi: l.cur.pos, sym: l.intern(text)}
}

// isBlockDocComment reports whether s (a complete "/*...*/" comment,
// delimiters included) is a doc comment: starts with "/**" (but not
// "/***") or "/*!", and is at least 5 bytes long so that "/**/" is
// excluded.
func isBlockDocComment(s string) bool {
	if len(s) < 5 {
		return false
	}
	if s[2] == '!' {
		return true
	}
	return s[2] == '*' && s[3] != '*'
}

// translateCRLF converts CRLF to LF within a doc-comment body,
// reporting a recoverable error on any bare '\r'.
func (l *Lexer) translateCRLF(start int, s, errMsg string) string {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\r' {
			buf = append(buf, s[i])
			continue
		}
		if i+1 < len(s) && s[i+1] == '\n' {
			continue
		}
		span, _ := l.mkSpan(start+i, start+i+1)
		l.recoverable(span, errMsg)
	}
	return string(buf)
}
