package lexer_test

import (
	"fmt"

	"github.com/corelang/lexcore/lexer"
	"github.com/corelang/lexcore/token"
)

func ExampleLexer() {
	source := "let x = 1 + 2;\nprint(x);\n"

	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(source))
	in := token.NewInterner()
	l := lexer.New(file, []byte(source), in)

	for {
		tok, err := l.RealToken()
		if err != nil {
			fmt.Println("error:", err)
			break
		}
		if tok.Kind == token.EOF {
			break
		}
		pos := fset.Position(tok.Span.Lo)
		switch {
		case tok.Kind == token.Ident:
			fmt.Printf("%s\t%s\t%q\n", pos, tok.Kind, in.String(tok.Sym))
		case tok.IsLiteral():
			fmt.Printf("%s\t%s\t%q\n", pos, tok.Lit.Kind, in.String(tok.Lit.Symbol))
		default:
			fmt.Printf("%s\t%s\n", pos, tok.Kind)
		}
	}

	// Output:
	// 1:1	IDENT	"let"
	// 1:5	IDENT	"x"
	// 1:7	=
	// 1:9	Integer	"1"
	// 1:11	BINOP
	// 1:13	Integer	"2"
	// 1:14	;
	// 2:1	IDENT	"print"
	// 2:6	OPEN_DELIM
	// 2:7	IDENT	"x"
	// 2:8	CLOSE_DELIM
	// 2:9	;
}
