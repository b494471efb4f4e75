package token

// ExpnID is an opaque expansion tag carried by a [Span]. The lexer
// never produces anything but [NoExpansion]; a macro-expansion pass
// upstream may stamp retokenized spans with a real tag, which is why
// the field exists here at all — it is otherwise inert cargo.
type ExpnID int

// NoExpansion marks a span that was not produced by macro expansion.
const NoExpansion ExpnID = 0

// Span is a half-open byte range [Lo, Hi) over a [FileSet], plus an
// expansion tag. Two spans describe the same token when a lexer is
// asked to retokenize with an override: the "raw" span always matches
// the bytes actually consumed, while the "effective" span is the raw
// span unless an override was supplied, in which case the override
// replaces it. See [Lexer.OverrideSpan].
type Span struct {
	Lo, Hi Pos
	Expn   ExpnID
}

// NoSpan is the zero Span.
var NoSpan = Span{}

// IsValid reports whether the span covers a non-negative range of at
// least one valid position.
func (s Span) IsValid() bool {
	return s.Lo.IsValid() && s.Lo <= s.Hi
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return int(s.Hi - s.Lo)
}

// To returns the span that starts at s and ends at other, i.e. [s.Lo, other.Hi).
func (s Span) To(other Span) Span {
	return Span{Lo: s.Lo, Hi: other.Hi, Expn: s.Expn}
}
