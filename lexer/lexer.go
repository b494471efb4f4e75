// Package lexer implements the core tokenizer: a character-level state
// machine that turns a UTF-8 source buffer into a stream of [token.Token]s
// with precise spans, plus the diagnostics malformed input produces.
// This file holds the peek-buffered stream. The root dispatcher and
// the trivia, number, identifier, and quoted-literal scanners live in
// their own files.
package lexer

import (
	"github.com/corelang/lexcore/diag"
	"github.com/corelang/lexcore/token"
)

// rawToken is the not-yet-spanned result of the root dispatcher or a
// trivia scan: a kind plus whatever payload that kind carries. advance
// turns it into a [token.Token] by running its range through mkSpan.
type rawToken struct {
	kind   token.Kind
	sym    token.Symbol
	isRaw  bool
	delim  token.DelimKind
	op     token.BinOpKind
	lit    token.Lit
	suffix token.Symbol
	lo, hi int
}

const (
	trivWhitespace = token.Whitespace
	trivComment    = token.Comment
	trivDocComment = token.DocComment
	trivShebang    = token.Shebang
)

// matchingDelim records the open and close spans of one matched
// delimiter pair, kept only so a caller recovering from EOF with
// mismatched braces has something to search for a plausible
// candidate.
type matchingDelim struct {
	Kind  token.DelimKind
	Open  token.Span
	Close token.Span
}

// UnmatchedBrace records a closing delimiter that doesn't match the
// top of the open-brace stack, or one still open when EOF is reached.
// For an opener still open at EOF, FoundSpan is the EOF span and
// FoundDelim is left at its zero value.
type UnmatchedBrace struct {
	ExpectedDelim token.DelimKind
	FoundDelim    token.DelimKind
	FoundSpan     token.Span
	UnclosedSpan  *token.Span
}

type openBrace struct {
	kind token.DelimKind
	span token.Span
}

// Lexer is a peek-buffered tokenizer: it always holds one token of
// lookahead so a caller can inspect the next token before consuming
// it. A zero Lexer is not usable; construct one with [New] or
// [Retokenize].
type Lexer struct {
	file        *token.File
	interner    token.Interner
	startOffset int // offset of byte 0 of this lexer's range within file

	cur *cursor

	// OverrideSpan, when set, replaces every effective span this lexer
	// produces — used when retokenizing a macro-expanded fragment so its
	// tokens report the span of the invocation site rather than their
	// own bytes. The raw span of the most recently returned token is
	// always available via [Lexer.SpanRaw].
	OverrideSpan *token.Span

	peekTok     token.Token
	peekRawSpan token.Span
	lastRawSpan token.Span
	// halted is set once a fatal diagnostic has been reported through
	// TryNextToken: the cursor may sit short of the real end of input
	// (a fatal aborts only the token being scanned), so further calls
	// must keep replaying the forged EOF rather than resume scanning.
	halted bool

	Diagnostics diag.Bag
	fatalErrs   diag.Bag

	openBraces         []openBrace
	UnmatchedBraces    []UnmatchedBrace
	matchingDelimSpans []matchingDelim
	RawIdentifierSpans []token.Span
}

// New creates a [Lexer] over the whole of file/src. interner may be
// nil, in which case a private [token.MapInterner] is created.
func New(file *token.File, src []byte, interner token.Interner) *Lexer {
	return newRange(file, src, interner, 0, len(src))
}

// Retokenize constructs a fresh [Lexer] anchored on the sub-range
// [span.Lo, span.Hi) of file/src, for re-lexing a span recovered from
// macro expansion. The returned lexer's OverrideSpan is unset and it
// is primed exactly like one built with [New].
func Retokenize(file *token.File, src []byte, interner token.Interner, span token.Span) *Lexer {
	lo, hi := file.Offset(span.Lo), file.Offset(span.Hi)
	if lo > hi {
		hi = lo
	}
	return newRange(file, src, interner, lo, hi)
}

func newRange(file *token.File, src []byte, interner token.Interner, start, end int) *Lexer {
	if interner == nil {
		interner = token.NewInterner()
	}
	l := &Lexer{
		file:        file,
		interner:    interner,
		startOffset: start,
		cur:         newCursor(src, start, end),
	}
	l.advance()
	return l
}

func (l *Lexer) intern(s string) token.Symbol {
	return l.interner.Intern(s)
}

// mkSpan computes both spans for a token: raw is always [lo, hi)
// with no expansion tag; effective is raw unless OverrideSpan is set.
func (l *Lexer) mkSpan(lo, hi int) (effective, raw token.Span) {
	raw = token.Span{Lo: l.file.Pos(lo), Hi: l.file.Pos(hi)}
	if l.OverrideSpan != nil {
		return *l.OverrideSpan, raw
	}
	return raw, raw
}

func (l *Lexer) position(span token.Span) token.Position {
	return l.file.Position(span.Lo)
}

func (l *Lexer) recoverable(span token.Span, msg string) {
	l.Diagnostics.Recoverable(l.position(span), span, msg)
}

// fatal enqueues a fatal diagnostic and unwinds the current scan
// attempt. A fatal error does not itself terminate the lexer — it is
// buffered and surfaces through [Lexer.TryNextToken] — but scanning
// the rest of the malformed token serves no purpose, so fatal aborts
// the call stack back to [Lexer.advance].
func (l *Lexer) fatal(span token.Span, msg string) {
	l.fatalErrs.Fatal(l.position(span), span, msg)
	panic(fatalSignal{})
}

type fatalSignal struct{}

// EmitFatalErrors returns the buffered fatal diagnostics and clears
// the buffer.
func (l *Lexer) EmitFatalErrors() diag.Bag {
	out := l.fatalErrs
	l.fatalErrs = nil
	return out
}

// advance refills peekTok/peekRawSpan with the next token.
func (l *Lexer) advance() {
	if len(l.fatalErrs) != 0 {
		panic("lexer: advance called with a non-empty fatal-error buffer")
	}

	lineFrom := l.cur.pos
	defer func() {
		r := recover()
		// Record the start of every line walked past while scanning this
		// token, so positions on later lines resolve to the right line.
		for i, b := range l.cur.slice(lineFrom, l.cur.pos) {
			if b == '\n' {
				l.file.AddLine(lineFrom + i + 1)
			}
		}
		if r != nil {
			if _, ok := r.(fatalSignal); !ok {
				panic(r)
			}
			eff, raw := l.mkSpan(l.cur.pos, l.cur.pos)
			l.peekTok = token.Token{Kind: token.EOF, Span: eff}
			l.peekRawSpan = raw
		}
	}()

	if raw, ok := l.scanWhitespaceOrComment(); ok {
		eff, rawSpan := l.mkSpan(raw.lo, l.cur.pos)
		l.peekTok = token.Token{Kind: raw.kind, Span: eff, Sym: raw.sym}
		l.peekRawSpan = rawSpan
		return
	}

	if l.cur.isEOF() {
		eff, raw := l.mkSpan(l.cur.pos, l.cur.pos)
		for _, ob := range l.openBraces {
			unclosed := ob.span
			l.UnmatchedBraces = append(l.UnmatchedBraces, UnmatchedBrace{
				ExpectedDelim: ob.kind,
				FoundSpan:     eff,
				UnclosedSpan:  &unclosed,
			})
		}
		l.openBraces = nil
		l.peekTok = token.Token{Kind: token.EOF, Span: eff}
		l.peekRawSpan = raw
		return
	}

	start := l.cur.pos
	rt := l.nextTokenInner()
	eff, rawSpan := l.mkSpan(start, l.cur.pos)
	tok := token.Token{
		Kind:   rt.kind,
		Span:   eff,
		Sym:    rt.sym,
		IsRaw:  rt.isRaw,
		Delim:  rt.delim,
		Op:     rt.op,
		Lit:    rt.lit,
		Suffix: rt.suffix,
	}
	l.trackDelims(tok, eff)
	l.peekTok = tok
	l.peekRawSpan = rawSpan
}

// trackDelims maintains the open-brace stack and the matched/unmatched
// delimiter bookkeeping, so a downstream token-tree builder has the
// raw material it needs without this lexer building the tree itself.
func (l *Lexer) trackDelims(tok token.Token, span token.Span) {
	switch tok.Kind {
	case token.OpenDelim:
		l.openBraces = append(l.openBraces, openBrace{kind: tok.Delim, span: span})
	case token.CloseDelim:
		if len(l.openBraces) == 0 {
			l.UnmatchedBraces = append(l.UnmatchedBraces, UnmatchedBrace{
				FoundDelim: tok.Delim,
				FoundSpan:  span,
			})
			return
		}
		top := l.openBraces[len(l.openBraces)-1]
		l.openBraces = l.openBraces[:len(l.openBraces)-1]
		if top.kind != tok.Delim {
			unclosed := top.span
			l.UnmatchedBraces = append(l.UnmatchedBraces, UnmatchedBrace{
				ExpectedDelim: top.kind,
				FoundDelim:    tok.Delim,
				FoundSpan:     span,
				UnclosedSpan:  &unclosed,
			})
			return
		}
		l.matchingDelimSpans = append(l.matchingDelimSpans, matchingDelim{
			Kind: tok.Delim, Open: top.span, Close: span,
		})
	}
}

// TryNextToken is the fallible form of [Lexer.NextToken]: it returns
// the buffered fatal diagnostics as an error once any have been
// produced, instead of panicking.
func (l *Lexer) TryNextToken() (token.Token, error) {
	ret := l.peekTok
	l.lastRawSpan = l.peekRawSpan
	if l.halted {
		return ret, nil
	}
	if len(l.fatalErrs) != 0 {
		err := l.EmitFatalErrors()
		// The cursor may sit well short of end (a fatal aborts the scan
		// of one token, not the whole remaining buffer); once reported,
		// the stream must stay unusable rather than resume tokenizing
		// from wherever the aborted scan left off.
		l.halted = true
		return ret, err
	}
	// Any fatal error scanning the *next* token is buffered here but
	// deliberately left unreported: ret is a token that was already
	// scanned successfully and must be returned as such. The buffered
	// diagnostics surface on the following call instead.
	l.advance()
	return ret, nil
}

// NextToken returns the next token and advances the lexer. It panics
// if a fatal diagnostic was produced while scanning it; callers that
// need to recover should use [Lexer.TryNextToken] instead.
func (l *Lexer) NextToken() token.Token {
	tok, err := l.TryNextToken()
	if err != nil {
		panic(err)
	}
	return tok
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() token.Token {
	return l.peekTok
}

// RealToken repeatedly pulls tokens until one that is not whitespace,
// a comment, or a shebang is obtained.
func (l *Lexer) RealToken() (token.Token, error) {
	for {
		tok, err := l.TryNextToken()
		if err != nil {
			return tok, err
		}
		switch tok.Kind {
		case token.Whitespace, token.Comment, token.DocComment, token.Shebang:
			continue
		default:
			return tok, nil
		}
	}
}

// SpanRaw returns the raw (un-overridden) span of the token most
// recently returned by [Lexer.TryNextToken] / [Lexer.NextToken].
func (l *Lexer) SpanRaw() token.Span {
	return l.lastRawSpan
}
