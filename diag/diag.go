// Package diag collects the lexical diagnostics the lexer produces:
// recoverable errors that let tokenization continue, and fatal errors
// that make the token stream unusable.
package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/corelang/lexcore/token"
)

// Severity distinguishes a recoverable diagnostic (tokenization
// continues with a best-effort placeholder) from a fatal one (the
// stream is aborted after it is reported).
type Severity int

const (
	Recoverable Severity = iota
	Fatal
)

func (s Severity) String() string {
	if s == Fatal {
		return "fatal"
	}
	return "error"
}

// Diagnostic is a single positioned lexical diagnostic.
type Diagnostic struct {
	Severity Severity
	Pos      token.Position
	Span     token.Span
	Msg      string
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	if d.Pos.Filename != "" || d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Msg)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Msg)
}

// Bag is an ordered collection of [Diagnostic]s.
type Bag []Diagnostic

// Error implements the error interface.
func (b Bag) Error() string {
	switch len(b) {
	case 0:
		return "no errors"
	case 1:
		return b[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", b[0], len(b)-1)
	}
}

// Err returns an error equivalent to this bag, or nil if it is empty.
func (b Bag) Err() error {
	if len(b) == 0 {
		return nil
	}
	return b
}

// Len reports the number of diagnostics in the bag.
func (b Bag) Len() int { return len(b) }

// Reset empties the bag in place.
func (b *Bag) Reset() { *b = (*b)[0:0] }

// Add appends a diagnostic with the given severity, position, span and message.
func (b *Bag) Add(sev Severity, pos token.Position, span token.Span, msg string) {
	*b = append(*b, Diagnostic{Severity: sev, Pos: pos, Span: span, Msg: msg})
}

// Recoverable appends a [Recoverable] diagnostic.
func (b *Bag) Recoverable(pos token.Position, span token.Span, msg string) {
	b.Add(Recoverable, pos, span, msg)
}

// Fatal appends a [Fatal] diagnostic.
func (b *Bag) Fatal(pos token.Position, span token.Span, msg string) {
	b.Add(Fatal, pos, span, msg)
}

// HasFatal reports whether the bag contains any fatal diagnostic.
func (b Bag) HasFatal() bool {
	for _, d := range b {
		if d.Severity == Fatal {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by filename, line, column, then message.
func (b Bag) Sort() {
	slices.SortFunc(b, func(d, e Diagnostic) int {
		return cmp.Or(
			strings.Compare(d.Pos.Filename, e.Pos.Filename),
			cmp.Compare(d.Pos.Line, e.Pos.Line),
			cmp.Compare(d.Pos.Column, e.Pos.Column),
			strings.Compare(d.Msg, e.Msg),
		)
	})
}
