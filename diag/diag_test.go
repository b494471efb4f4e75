package diag

import (
	"strings"
	"testing"

	"github.com/corelang/lexcore/token"
)

func TestSeverityString(t *testing.T) {
	if got := Recoverable.String(); got != "error" {
		t.Errorf("Recoverable.String() = %q, want %q", got, "error")
	}
	if got := Fatal.String(); got != "fatal" {
		t.Errorf("Fatal.String() = %q, want %q", got, "fatal")
	}
}

func TestDiagnosticError(t *testing.T) {
	d := Diagnostic{
		Severity: Fatal,
		Pos:      token.Position{Filename: "main.st", Line: 3, Column: 5},
		Msg:      "unterminated string literal",
	}
	want := "main.st:3:5: fatal: unterminated string literal"
	if got := d.Error(); got != want {
		t.Errorf("Diagnostic.Error() = %q, want %q", got, want)
	}

	bare := Diagnostic{Severity: Recoverable, Msg: "bad escape"}
	if got := bare.Error(); got != "error: bad escape" {
		t.Errorf("Diagnostic.Error() (no pos) = %q, want %q", got, "error: bad escape")
	}

	withLine := Diagnostic{Severity: Recoverable, Pos: token.Position{Line: 1, Column: 1}, Msg: "first"}
	if got := withLine.Error(); got != "1:1: error: first" {
		t.Errorf("Diagnostic.Error() = %q, want %q", got, "1:1: error: first")
	}
}

func TestBagAddAndErr(t *testing.T) {
	var b Bag
	if b.Err() != nil {
		t.Fatal("empty bag should report nil error")
	}

	b.Recoverable(token.Position{Line: 1, Column: 1}, token.Span{}, "first")
	if err := b.Err(); err == nil || err.Error() != "1:1: error: first" {
		t.Errorf("single-diagnostic Err() = %v", err)
	}

	b.Fatal(token.Position{Line: 2, Column: 1}, token.Span{}, "second")
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	if !b.HasFatal() {
		t.Error("HasFatal() = false, want true")
	}
	if err := b.Err(); !strings.Contains(err.Error(), "and 1 more errors") {
		t.Errorf("multi-diagnostic Err() = %q", err.Error())
	}

	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Reset() left Len() = %d, want 0", b.Len())
	}
}

func TestBagSort(t *testing.T) {
	b := Bag{
		{Pos: token.Position{Filename: "b.st", Line: 1, Column: 1}, Msg: "m1"},
		{Pos: token.Position{Filename: "a.st", Line: 5, Column: 1}, Msg: "m2"},
		{Pos: token.Position{Filename: "a.st", Line: 2, Column: 9}, Msg: "m3"},
		{Pos: token.Position{Filename: "a.st", Line: 2, Column: 1}, Msg: "m4"},
	}
	b.Sort()

	wantOrder := []string{"m4", "m3", "m2", "m1"}
	for i, want := range wantOrder {
		if b[i].Msg != want {
			t.Errorf("b[%d].Msg = %q, want %q", i, b[i].Msg, want)
		}
	}
}
