package lexer

// confusable maps a handful of Unicode characters that are easily
// introduced via copy-paste to the ASCII character a reader most
// likely meant, so diagnostics can suggest a fix. This is a small
// static table rather than a general confusables database — the
// handful of look-alikes below cover the cases worth a hint.
var confusable = map[rune]byte{
	'−': '-', // MINUS SIGN
	'–': '-', // EN DASH
	'—': '-', // EM DASH
	'－': '-', // FULLWIDTH HYPHEN-MINUS
	'“': '"', // LEFT DOUBLE QUOTATION MARK
	'”': '"', // RIGHT DOUBLE QUOTATION MARK
	'‘': '\'', // LEFT SINGLE QUOTATION MARK
	'’': '\'', // RIGHT SINGLE QUOTATION MARK
	'×': '*', // MULTIPLICATION SIGN
	'⁄': '/', // FRACTION SLASH
	'、': ',', // IDEOGRAPHIC COMMA
	'。': '.', // IDEOGRAPHIC FULL STOP
	'；': ';', // FULLWIDTH SEMICOLON
	'：': ':', // FULLWIDTH COLON
}

// confusableSubstitution reports the ASCII character ch is likely
// intended to stand in for, if any.
func confusableSubstitution(ch rune) (ascii byte, ok bool) {
	ascii, ok = confusable[ch]
	return ascii, ok
}
