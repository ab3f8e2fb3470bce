/*
File    : kscope/lexer/lexer.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"bufio"
	"io"
	"strings"
)

// Lexer performs lexical analysis (tokenization) of Kaleidoscope source code.
// Unlike a whole-string lexer it works over a character stream: the REPL feeds
// it bytes on demand, one line at a time, and forms may span lines. The lexer
// keeps exactly one buffered character of look-ahead, which is all the
// grammar needs.
//
// It handles:
//   - Keywords (def, extern, if, then, else, for, in, binary, unary, var)
//   - Identifiers [a-zA-Z][a-zA-Z0-9]*
//   - Numeric literals [0-9.]+ (always doubles)
//   - Comments (# to end of line)
//   - Whitespace (which is ignored)
//   - Any other single ASCII byte, passed through as a CHAR_TOK
//
// Fields:
//   - reader: Buffered byte source for the input stream
//   - Current: The buffered look-ahead character
//   - eof: Whether the underlying reader is exhausted
type Lexer struct {
	reader  *bufio.Reader // Buffered byte source
	Current byte          // One buffered character of look-ahead
	eof     bool          // True once the reader returns io.EOF
}

// NewLexer creates and initializes a new Lexer over the given byte stream.
// The first character is read immediately so Current is always valid.
//
// Parameters:
//
//	r - The byte stream to tokenize (stdin, a readline adapter, a strings.Reader)
//
// Returns:
//
//	A pointer to a new lexer ready to produce tokens
//
// Example:
//
//	lex := NewLexer(strings.NewReader("def foo(a b) a+b;"))
func NewLexer(r io.Reader) *Lexer {
	lex := &Lexer{reader: bufio.NewReader(r)}
	lex.Advance()
	return lex
}

// NewLexerFromString is a convenience constructor used heavily in tests:
// it tokenizes an in-memory source string.
func NewLexerFromString(src string) *Lexer {
	return NewLexer(strings.NewReader(src))
}

// Advance consumes the current character and buffers the next one.
// Once the underlying reader is exhausted, Current is pinned to 0 and
// the eof flag is set.
func (lex *Lexer) Advance() {
	b, err := lex.reader.ReadByte()
	if err != nil {
		lex.Current = 0
		lex.eof = true
		return
	}
	lex.Current = b
}

// NextToken retrieves the next token from the source stream.
// It skips whitespace and comments, then identifies and returns the next
// meaningful token. This is the main entry point used by the parser.
//
// Returns:
//
//	Token: The next token in the source, or EOF_TYPE if the end is reached
func (lex *Lexer) NextToken() Token {

	// Skip any whitespace before the next token
	for !lex.eof && isWhitespace(lex.Current) {
		lex.Advance()
	}

	// Identifier or keyword: [a-zA-Z][a-zA-Z0-9]*
	if isAlpha(lex.Current) {
		return lex.readIdentifier()
	}

	// Number: [0-9.]+
	// Note that multiple dots are consumed here and sorted out by the
	// double conversion, matching strtod semantics.
	if isNumeric(lex.Current) || (lex.Current == '.' && !lex.eof) {
		return lex.readNumber()
	}

	// Comment: '#' to end of line, then restart
	if lex.Current == '#' {
		for !lex.eof && lex.Current != '\n' && lex.Current != '\r' {
			lex.Advance()
		}
		if !lex.eof {
			return lex.NextToken()
		}
	}

	// End of input
	if lex.eof {
		return NewToken(EOF_TYPE, "")
	}

	// Anything else is a single-character token: operators, parens,
	// comma, semicolon. The parser gives it meaning.
	c := lex.Current
	lex.Advance()
	return NewCharToken(c)
}

// readIdentifier reads an identifier or keyword from the stream.
// The spelling is checked against KEYWORDS_MAP to decide whether it is
// a keyword or a user-defined name.
//
// Returns:
//
//	Token: A keyword token or an IDENTIFIER_ID token
func (lex *Lexer) readIdentifier() Token {
	var builder strings.Builder
	builder.WriteByte(lex.Current)
	lex.Advance()

	for !lex.eof && isAlphanumeric(lex.Current) {
		builder.WriteByte(lex.Current)
		lex.Advance()
	}

	literal := builder.String()
	if keyword, ok := KEYWORDS_MAP[literal]; ok {
		return NewToken(keyword, literal)
	}
	return NewToken(IDENTIFIER_ID, literal)
}

// readNumber reads a numeric literal from the stream.
// The scan is greedy over digits and dots; the conversion to a double is
// strtod-like, so a malformed spelling such as "1.2.3" yields the value of
// its longest valid prefix (1.2) rather than an error.
//
// Returns:
//
//	Token: A NUMBER_LIT token carrying the parsed double value
func (lex *Lexer) readNumber() Token {
	var builder strings.Builder
	for !lex.eof && (isNumeric(lex.Current) || lex.Current == '.') {
		builder.WriteByte(lex.Current)
		lex.Advance()
	}

	literal := builder.String()
	return NewNumberToken(literal, parseDouble(literal))
}
