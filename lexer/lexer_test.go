package lexer

import (
	"testing"

	"github.com/alecthomas/repr"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corelang/lexcore/token"
)

func newTestLexer(src string) (*Lexer, *token.MapInterner, *token.File) {
	fset := token.NewFileSet()
	file := fset.AddFile("test.st", fset.Base(), len(src))
	in := token.NewInterner()
	return New(file, []byte(src), in), in, file
}

// collectKinds drains a lexer (including trivia) into a flat slice of kinds,
// stopping after EOF.
func collectKinds(t *testing.T, l *Lexer) []token.Kind {
	t.Helper()
	var kinds []token.Kind
	for {
		tok, err := l.TryNextToken()
		require.NoError(t, err)
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			return kinds
		}
	}
}

func realKinds(t *testing.T, l *Lexer) []token.Kind {
	t.Helper()
	var kinds []token.Kind
	for {
		tok, err := l.RealToken()
		require.NoError(t, err)
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			return kinds
		}
	}
}

func TestPunctuation(t *testing.T) {
	l, _, _ := newTestLexer("; , . .. ... ..= ( ) [ ] { } @ # ~ ? : :: $ " +
		"= == => != ! < <= << <<= <- > >= >> >>= -> && || + += - -= * *= / /= % %= ^ ^= & &= | |=")

	got := realKinds(t, l)
	want := []token.Kind{
		token.Semi, token.Comma, token.Dot, token.DotDot, token.DotDotDot, token.DotDotEq,
		token.OpenDelim, token.CloseDelim, token.OpenDelim, token.CloseDelim, token.OpenDelim, token.CloseDelim,
		token.At, token.Pound, token.Tilde, token.Question, token.Colon, token.ModSep, token.Dollar,
		token.Eq, token.EqEq, token.FatArrow, token.Ne, token.Not,
		token.Lt, token.Le, token.BinOp, token.BinOpEq, token.LArrow,
		token.Gt, token.Ge, token.BinOp, token.BinOpEq, token.RArrow,
		token.AndAnd, token.OrOr,
		token.BinOp, token.BinOpEq, token.BinOp, token.BinOpEq,
		token.BinOp, token.BinOpEq, token.BinOp, token.BinOpEq,
		token.BinOp, token.BinOpEq, token.BinOp, token.BinOpEq, token.BinOp, token.BinOpEq,
		token.BinOp, token.BinOpEq,
		token.EOF,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("punctuation mismatch (-want +got):\n%s\ngot: %s", diff, repr.String(got))
	}
}

func TestDelimMatching(t *testing.T) {
	l, _, _ := newTestLexer("( [ { } ] )")
	for {
		tok, err := l.TryNextToken()
		require.NoError(t, err)
		if tok.Kind == token.EOF {
			break
		}
	}
	require.Empty(t, l.UnmatchedBraces)
	require.Len(t, l.matchingDelimSpans, 3)
}

func TestDelimMismatch(t *testing.T) {
	l, _, _ := newTestLexer("( ]")
	for {
		tok, err := l.TryNextToken()
		require.NoError(t, err)
		if tok.Kind == token.EOF {
			break
		}
	}
	require.Len(t, l.UnmatchedBraces, 1)
	assert.Equal(t, token.Paren, l.UnmatchedBraces[0].ExpectedDelim)
	assert.Equal(t, token.Bracket, l.UnmatchedBraces[0].FoundDelim)
}

func TestIdentifiers(t *testing.T) {
	l, in, _ := newTestLexer("a main foo_bar _leading café π naïve")
	for _, want := range []string{"a", "main", "foo_bar", "_leading", "café", "π", "naïve"} {
		tok, err := l.RealToken()
		require.NoError(t, err)
		require.Equal(t, token.Ident, tok.Kind)
		assert.Equal(t, want, in.String(tok.Sym))
	}
	tok, err := l.RealToken()
	require.NoError(t, err)
	assert.Equal(t, token.EOF, tok.Kind)
}

func TestRawIdentifier(t *testing.T) {
	l, in, _ := newTestLexer("r#fn r#match")
	for _, want := range []string{"fn", "match"} {
		tok, err := l.RealToken()
		require.NoError(t, err)
		require.Equal(t, token.Ident, tok.Kind)
		assert.True(t, tok.IsRaw)
		assert.Equal(t, want, in.String(tok.Sym))
	}
	assert.Len(t, l.RawIdentifierSpans, 2)
}

func TestRawIdentifierReservedRejected(t *testing.T) {
	l, _, _ := newTestLexer("r#self")
	tok, err := l.RealToken()
	require.NoError(t, err)
	require.Equal(t, token.Ident, tok.Kind)
	require.Len(t, l.Diagnostics, 1)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		src  string
		kind token.LitKind
	}{
		{"0", token.Integer},
		{"123456789012345678890", token.Integer},
		{"0b1010", token.Integer},
		{"0o777", token.Integer},
		{"0xCAFEBABE", token.Integer},
		{"1_000_000", token.Integer},
		{"0.0", token.Float},
		{"3.14159", token.Float},
		{"1e10", token.Float},
		{"1.5e-10", token.Float},
		{"2.", token.Float},
	}
	for _, tc := range tests {
		l, in, _ := newTestLexer(tc.src)
		tok, err := l.RealToken()
		require.NoError(t, err)
		require.True(t, tok.IsLiteral(), tc.src)
		assert.Equal(t, tc.kind, tok.Lit.Kind, tc.src)
		assert.Equal(t, tc.src, in.String(tok.Lit.Symbol), tc.src)
	}
}

func TestNumberSuffix(t *testing.T) {
	l, in, _ := newTestLexer("10u32 1.5f64")

	tok, err := l.RealToken()
	require.NoError(t, err)
	assert.Equal(t, "10", in.String(tok.Lit.Symbol))
	assert.Equal(t, "u32", in.String(tok.Suffix))

	tok, err = l.RealToken()
	require.NoError(t, err)
	assert.Equal(t, "1.5", in.String(tok.Lit.Symbol))
	assert.Equal(t, "f64", in.String(tok.Suffix))
}

func TestHexFloatRejected(t *testing.T) {
	l, _, _ := newTestLexer("0x1.5")
	tok, err := l.RealToken()
	require.NoError(t, err)
	assert.True(t, tok.IsLiteral())
	require.NotEmpty(t, l.Diagnostics)
}

func TestCharLiteral(t *testing.T) {
	l, in, _ := newTestLexer(`'a' '\n' '\x41' '\u{1F600}'`)
	for _, want := range []string{"a", `\n`, `\x41`, `\u{1F600}`} {
		tok, err := l.RealToken()
		require.NoError(t, err)
		require.True(t, tok.IsLiteral())
		assert.Equal(t, token.Char, tok.Lit.Kind)
		assert.Equal(t, want, in.String(tok.Lit.Symbol))
	}
	assert.Empty(t, l.Diagnostics)
}

func TestCharLiteralTripleQuoteRecovery(t *testing.T) {
	l, _, _ := newTestLexer(`'''`)
	tok, err := l.RealToken()
	require.NoError(t, err)
	assert.Equal(t, token.Char, tok.Lit.Kind)
	require.Len(t, l.Diagnostics, 1)
}

func TestLifetime(t *testing.T) {
	l, in, _ := newTestLexer("'a 'static 'de")
	for _, want := range []string{"'a", "'static", "'de"} {
		tok, err := l.RealToken()
		require.NoError(t, err)
		require.Equal(t, token.Lifetime, tok.Kind)
		assert.Equal(t, want, in.String(tok.Sym))
	}
}

func TestLifetimeStartingWithDigit(t *testing.T) {
	l, _, _ := newTestLexer("'1abc x")
	tok, err := l.RealToken()
	require.NoError(t, err)
	assert.Equal(t, token.Lifetime, tok.Kind)
	require.Len(t, l.Diagnostics, 1)
}

func TestStringLiteral(t *testing.T) {
	l, in, _ := newTestLexer(`"hello, \"world\"\n"`)
	tok, err := l.RealToken()
	require.NoError(t, err)
	require.True(t, tok.IsLiteral())
	assert.Equal(t, token.Str, tok.Lit.Kind)
	assert.Equal(t, `hello, \"world\"\n`, in.String(tok.Lit.Symbol))
}

func TestByteStringASCIIOnly(t *testing.T) {
	l, _, _ := newTestLexer(`b"héllo"`)
	tok, err := l.RealToken()
	require.NoError(t, err)
	assert.Equal(t, token.ByteStr, tok.Lit.Kind)
	require.NotEmpty(t, l.Diagnostics)
}

func TestRawString(t *testing.T) {
	tests := []struct {
		src  string
		body string
		hash uint16
	}{
		{`r"plain"`, "plain", 0},
		{`r#"has "quotes" inside"#`, `has "quotes" inside`, 1},
		{`r##"needs two#"##`, `needs two#`, 2},
	}
	for _, tc := range tests {
		l, in, _ := newTestLexer(tc.src)
		tok, err := l.RealToken()
		require.NoError(t, err, tc.src)
		require.True(t, tok.IsLiteral(), tc.src)
		assert.Equal(t, token.StrRaw, tok.Lit.Kind, tc.src)
		assert.Equal(t, tc.body, in.String(tok.Lit.Symbol), tc.src)
		assert.Equal(t, tc.hash, tok.Lit.HashCount, tc.src)
	}
}

func TestRawByteString(t *testing.T) {
	l, in, _ := newTestLexer(`br"raw bytes"`)
	tok, err := l.RealToken()
	require.NoError(t, err)
	assert.Equal(t, token.ByteStrRaw, tok.Lit.Kind)
	assert.Equal(t, "raw bytes", in.String(tok.Lit.Symbol))
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	l, _, _ := newTestLexer(`"never closed`)
	_, err := l.RealToken()
	require.Error(t, err)
}

func TestUnterminatedRawStringNamesFence(t *testing.T) {
	l, _, _ := newTestLexer(`r##"not closed"#`)
	_, err := l.RealToken()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "`\"##`")
}

func TestLineComment(t *testing.T) {
	l, _, _ := newTestLexer("// plain\n/// doc\n//! inner doc\n")
	kinds := collectKinds(t, l)
	var nontrivial []token.Kind
	for _, k := range kinds {
		if k != token.Whitespace {
			nontrivial = append(nontrivial, k)
		}
	}
	assert.Equal(t, []token.Kind{token.Comment, token.DocComment, token.DocComment, token.EOF}, nontrivial)
}

func TestBlockCommentNesting(t *testing.T) {
	l, _, _ := newTestLexer("/* outer /* inner */ still outer */")
	tok, err := l.RealToken()
	require.NoError(t, err)
	assert.Equal(t, token.Comment, tok.Kind)
	tok, err = l.RealToken()
	require.NoError(t, err)
	assert.Equal(t, token.EOF, tok.Kind)
}

func TestUnterminatedBlockComment(t *testing.T) {
	l, _, _ := newTestLexer("/* never closed")
	_, err := l.RealToken()
	require.Error(t, err)
}

func TestShebang(t *testing.T) {
	l, in, _ := newTestLexer("#!/usr/bin/env corelang\nfn main() {}")
	tok, err := l.TryNextToken()
	require.NoError(t, err)
	require.Equal(t, token.Shebang, tok.Kind)
	assert.Equal(t, "#!/usr/bin/env corelang", in.String(tok.Sym))
}

func TestHashBangAttributeIsNotShebang(t *testing.T) {
	l, _, _ := newTestLexer("#![allow(dead_code)]")
	tok, err := l.RealToken()
	require.NoError(t, err)
	assert.Equal(t, token.Pound, tok.Kind)
	tok, err = l.RealToken()
	require.NoError(t, err)
	assert.Equal(t, token.Not, tok.Kind)
}

func TestConfusableCharacterHint(t *testing.T) {
	l, _, _ := newTestLexer("x − y") // U+2212 MINUS SIGN, not ASCII '-'
	_, err := l.RealToken() // x
	require.NoError(t, err)
	_, err = l.RealToken() // the confusable itself: unknown start of token
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean '-'?")
}

func TestRetokenize(t *testing.T) {
	src := "foo bar baz"
	fset := token.NewFileSet()
	file := fset.AddFile("t.st", fset.Base(), len(src))
	in := token.NewInterner()
	l := New(file, []byte(src), in)

	first, err := l.RealToken()
	require.NoError(t, err)
	require.Equal(t, token.Ident, first.Kind)

	sub := Retokenize(file, []byte(src), in, first.Span)
	tok, err := sub.RealToken()
	require.NoError(t, err)
	assert.Equal(t, token.Ident, tok.Kind)
	assert.Equal(t, "foo", in.String(tok.Sym))
	eofTok, err := sub.RealToken()
	require.NoError(t, err)
	assert.Equal(t, token.EOF, eofTok.Kind)
}

func TestOverrideSpan(t *testing.T) {
	l, _, _ := newTestLexer("foo bar")

	first, err := l.RealToken()
	require.NoError(t, err)
	require.Equal(t, token.Ident, first.Kind)

	override := token.Span{Lo: 100, Hi: 103}
	l.OverrideSpan = &override

	second, err := l.RealToken()
	require.NoError(t, err)
	assert.Equal(t, override, second.Span)
	assert.NotEqual(t, override, l.SpanRaw())
}
