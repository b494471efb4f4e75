package lexer

import (
	"fmt"

	"github.com/corelang/lexcore/token"
)

// nextTokenInner is the root dispatch table. The cursor sits on the
// first character of the token, not yet consumed; trivia and EOF have
// already been ruled out by the caller.
func (l *Lexer) nextTokenInner() rawToken {
	ch := l.cur.ch
	start := l.cur.pos

	switch {
	case ch == 'r':
		return l.scanRPrefixed(start)
	case ch == 'b':
		return l.scanBPrefixed(start)
	case isIdentStart(ch):
		sym, raw := l.scanIdentOrRawIdent(start, false)
		return rawToken{kind: token.Ident, sym: sym, isRaw: raw}
	case isDecDigit(ch):
		lit := l.scanNumber()
		suffix, _ := l.scanOptionalSuffix()
		return rawToken{kind: token.Literal, lit: lit, suffix: suffix}
	case ch == '\'':
		return l.scanQuoteOrLifetime(start)
	case ch == '"':
		l.cur.bump()
		return l.scanDoubleQuoted(start, false)
	}

	l.cur.bump()
	switch ch {
	case ';':
		return rawToken{kind: token.Semi}
	case ',':
		return rawToken{kind: token.Comma}
	case '.':
		if l.cur.ch != '.' {
			return rawToken{kind: token.Dot}
		}
		l.cur.bump()
		switch l.cur.ch {
		case '.':
			l.cur.bump()
			return rawToken{kind: token.DotDotDot}
		case '=':
			l.cur.bump()
			return rawToken{kind: token.DotDotEq}
		default:
			return rawToken{kind: token.DotDot}
		}
	case '(':
		return rawToken{kind: token.OpenDelim, delim: token.Paren}
	case ')':
		return rawToken{kind: token.CloseDelim, delim: token.Paren}
	case '[':
		return rawToken{kind: token.OpenDelim, delim: token.Bracket}
	case ']':
		return rawToken{kind: token.CloseDelim, delim: token.Bracket}
	case '{':
		return rawToken{kind: token.OpenDelim, delim: token.Brace}
	case '}':
		return rawToken{kind: token.CloseDelim, delim: token.Brace}
	case '@':
		return rawToken{kind: token.At}
	case '#':
		return rawToken{kind: token.Pound}
	case '~':
		return rawToken{kind: token.Tilde}
	case '?':
		return rawToken{kind: token.Question}
	case ':':
		if l.cur.ch == ':' {
			l.cur.bump()
			return rawToken{kind: token.ModSep}
		}
		return rawToken{kind: token.Colon}
	case '$':
		return rawToken{kind: token.Dollar}
	case '=':
		switch l.cur.ch {
		case '=':
			l.cur.bump()
			return rawToken{kind: token.EqEq}
		case '>':
			l.cur.bump()
			return rawToken{kind: token.FatArrow}
		default:
			return rawToken{kind: token.Eq}
		}
	case '!':
		if l.cur.ch == '=' {
			l.cur.bump()
			return rawToken{kind: token.Ne}
		}
		return rawToken{kind: token.Not}
	case '<':
		switch l.cur.ch {
		case '=':
			l.cur.bump()
			return rawToken{kind: token.Le}
		case '<':
			l.cur.bump()
			if l.cur.ch == '=' {
				l.cur.bump()
				return rawToken{kind: token.BinOpEq, op: token.Shl}
			}
			return rawToken{kind: token.BinOp, op: token.Shl}
		case '-':
			l.cur.bump()
			return rawToken{kind: token.LArrow}
		default:
			return rawToken{kind: token.Lt}
		}
	case '>':
		switch l.cur.ch {
		case '=':
			l.cur.bump()
			return rawToken{kind: token.Ge}
		case '>':
			l.cur.bump()
			if l.cur.ch == '=' {
				l.cur.bump()
				return rawToken{kind: token.BinOpEq, op: token.Shr}
			}
			return rawToken{kind: token.BinOp, op: token.Shr}
		default:
			return rawToken{kind: token.Gt}
		}
	case '-':
		switch l.cur.ch {
		case '>':
			l.cur.bump()
			return rawToken{kind: token.RArrow}
		case '=':
			l.cur.bump()
			return rawToken{kind: token.BinOpEq, op: token.Minus}
		default:
			return rawToken{kind: token.BinOp, op: token.Minus}
		}
	case '&':
		switch l.cur.ch {
		case '&':
			l.cur.bump()
			return rawToken{kind: token.AndAnd}
		case '=':
			l.cur.bump()
			return rawToken{kind: token.BinOpEq, op: token.And}
		default:
			return rawToken{kind: token.BinOp, op: token.And}
		}
	case '|':
		switch l.cur.ch {
		case '|':
			l.cur.bump()
			return rawToken{kind: token.OrOr}
		case '=':
			l.cur.bump()
			return rawToken{kind: token.BinOpEq, op: token.Or}
		default:
			return rawToken{kind: token.BinOp, op: token.Or}
		}
	case '+':
		if l.cur.ch == '=' {
			l.cur.bump()
			return rawToken{kind: token.BinOpEq, op: token.Plus}
		}
		return rawToken{kind: token.BinOp, op: token.Plus}
	case '*':
		if l.cur.ch == '=' {
			l.cur.bump()
			return rawToken{kind: token.BinOpEq, op: token.Star}
		}
		return rawToken{kind: token.BinOp, op: token.Star}
	case '/':
		if l.cur.ch == '=' {
			l.cur.bump()
			return rawToken{kind: token.BinOpEq, op: token.Slash}
		}
		return rawToken{kind: token.BinOp, op: token.Slash}
	case '%':
		if l.cur.ch == '=' {
			l.cur.bump()
			return rawToken{kind: token.BinOpEq, op: token.Percent}
		}
		return rawToken{kind: token.BinOp, op: token.Percent}
	case '^':
		if l.cur.ch == '=' {
			l.cur.bump()
			return rawToken{kind: token.BinOpEq, op: token.Caret}
		}
		return rawToken{kind: token.BinOp, op: token.Caret}
	}

	return l.scanUnknown(start, ch)
}

// scanRPrefixed disambiguates the three things an 'r' can start: a raw
// string/raw byte... no, a raw string `r"...", r#"...#`, a raw
// identifier `r#name`, or a plain identifier spelled with a leading
// 'r' (e.g. "return"). A lone '#' after 'r' is a raw identifier only
// when an ident-start character (not another '#' or '"') follows it.
func (l *Lexer) scanRPrefixed(start int) rawToken {
	switch l.cur.peek1() {
	case '"':
		l.cur.bump() // 'r'
		return l.scanRawQuoted(start, false)
	case '#':
		switch {
		case l.cur.peek2() == '"' || l.cur.peek2() == '#':
			l.cur.bump() // 'r'
			return l.scanRawQuoted(start, false)
		case isIdentStart(l.cur.peek2()):
			sym, raw := l.scanIdentOrRawIdent(start, true)
			return rawToken{kind: token.Ident, sym: sym, isRaw: raw}
		default:
			l.cur.bump() // 'r'
			return l.scanRawQuoted(start, false)
		}
	default:
		sym, raw := l.scanIdentOrRawIdent(start, false)
		return rawToken{kind: token.Ident, sym: sym, isRaw: raw}
	}
}

// scanBPrefixed disambiguates a byte literal `b'..'`, a byte string
// `b"..."` or `br"..."`/`br#"...#`, and a plain identifier spelled
// with a leading 'b' (e.g. "break").
func (l *Lexer) scanBPrefixed(start int) rawToken {
	switch l.cur.peek1() {
	case '\'':
		l.cur.bump() // 'b'
		l.cur.bump() // '\''
		return l.scanByteLiteral(start)
	case '"':
		l.cur.bump() // 'b'
		l.cur.bump() // '"'
		return l.scanDoubleQuoted(start, true)
	case 'r':
		if l.cur.peek2() == '"' || l.cur.peek2() == '#' {
			l.cur.bump() // 'b'
			l.cur.bump() // 'r'
			return l.scanRawQuoted(start, true)
		}
		sym, raw := l.scanIdentOrRawIdent(start, false)
		return rawToken{kind: token.Ident, sym: sym, isRaw: raw}
	default:
		sym, raw := l.scanIdentOrRawIdent(start, false)
		return rawToken{kind: token.Ident, sym: sym, isRaw: raw}
	}
}

// scanUnknown handles the fallback branch: an unrecognized
// start-of-token is fatal, with a confusable-character hint when one
// applies.
func (l *Lexer) scanUnknown(start int, ch rune) rawToken {
	span, _ := l.mkSpan(start, l.cur.pos)
	if ascii, ok := confusableSubstitution(ch); ok {
		l.fatal(span, fmt.Sprintf("unknown start of token: %q (did you mean %q?)", ch, ascii))
	}
	l.fatal(span, fmt.Sprintf("unknown start of token: %q", ch))
	return rawToken{}
}
