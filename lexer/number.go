package lexer

import (
	"github.com/corelang/lexcore/token"
)

// digitValue returns c's value in base 36 (0-9, a-z/A-Z), or 36 if c
// is not a valid digit in any supported base — a sentinel larger than
// any real digit value, so a range check against scanRadix suffices.
func digitValue(c rune) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 36
	}
}

// scanDigits consumes a run of digits (in scanRadix, always 16 for
// hex and 10 otherwise) and
// underscores, reporting — but still consuming — any digit that is
// valid in scanRadix but not in the literal's true realRadix. It
// returns the number of actual digit characters seen (underscores
// don't count).
func (l *Lexer) scanDigits(realRadix, scanRadix int) int {
	n := 0
	for {
		c := l.cur.ch
		if c == '_' {
			l.cur.bump()
			continue
		}
		v := digitValue(c)
		if v >= scanRadix {
			return n
		}
		if v >= realRadix {
			span, _ := l.mkSpan(l.cur.pos, l.cur.nextPos)
			l.recoverable(span, "invalid digit for a base "+radixName(realRadix)+" literal")
		}
		n++
		l.cur.bump()
	}
}

func radixName(radix int) string {
	switch radix {
	case 2:
		return "2"
	case 8:
		return "8"
	case 16:
		return "16"
	default:
		return "10"
	}
}

func litName(base int) string {
	switch base {
	case 2:
		return "binary literal"
	case 8:
		return "octal literal"
	case 16:
		return "hexadecimal literal"
	default:
		return "decimal literal"
	}
}

// scanNumber scans an integer or float literal, including radix
// prefixes and an optional float exponent. The current character is
// the leading digit; it has not been consumed yet.
func (l *Lexer) scanNumber() token.Lit {
	start := l.cur.pos
	base := 10

	first := l.cur.ch
	l.cur.bump()

	numDigits := 0
	if first == '0' {
		switch l.cur.ch {
		case 'b':
			base = 2
			l.cur.bump()
			numDigits = l.scanDigits(2, 10)
		case 'o':
			base = 8
			l.cur.bump()
			numDigits = l.scanDigits(8, 10)
		case 'x':
			base = 16
			l.cur.bump()
			numDigits = l.scanDigits(16, 16)
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '_', '.', 'e', 'E':
			numDigits = l.scanDigits(10, 10) + 1
		default:
			sym := l.intern(string(l.cur.slice(start, l.cur.pos)))
			return token.Lit{Kind: token.Integer, Symbol: sym}
		}
	} else {
		numDigits = l.scanDigits(10, 10) + 1
	}

	if numDigits == 0 {
		span, _ := l.mkSpan(start, l.cur.pos)
		l.recoverable(span, "no valid digits found for number")
		return token.Lit{Kind: token.Integer, Symbol: l.intern("0")}
	}

	isFloat := false

	if l.cur.ch == '.' && l.cur.peek1() != '.' && !isIdentStart(l.cur.peek1()) {
		isFloat = true
		l.cur.bump()
		if isDecDigit(l.cur.ch) {
			l.scanDigits(10, 10)
			l.scanFloatExponent()
		}
	} else if l.cur.ch == 'e' || l.cur.ch == 'E' {
		isFloat = true
		l.scanFloatExponent()
	}

	if isFloat && (base == 2 || base == 8 || base == 16) {
		span, _ := l.mkSpan(start, l.cur.pos)
		l.recoverable(span, litName(base)+" is not supported")
	}

	sym := l.intern(string(l.cur.slice(start, l.cur.pos)))
	if isFloat {
		return token.Lit{Kind: token.Float, Symbol: sym}
	}
	return token.Lit{Kind: token.Integer, Symbol: sym}
}

// scanFloatExponent consumes an optional [eE][+-]?digits exponent.
// Absence of any digit after e/E is fatal, after first trying the
// confusable-substitution hook to recover from e.g. a Unicode minus
// sign.
func (l *Lexer) scanFloatExponent() {
	if l.cur.ch != 'e' && l.cur.ch != 'E' {
		return
	}
	l.cur.bump()
	if l.cur.ch == '-' || l.cur.ch == '+' {
		l.cur.bump()
	}
	if l.scanDigits(10, 10) == 0 {
		if ascii, ok := confusableSubstitution(l.cur.ch); ok && ascii == '-' {
			l.cur.bump()
			if l.scanDigits(10, 10) > 0 {
				return
			}
		}
		span, _ := l.mkSpan(l.cur.pos, l.cur.nextPos)
		l.fatal(span, "expected at least one digit in exponent")
	}
}

func isDecDigit(c rune) bool { return '0' <= c && c <= '9' }
