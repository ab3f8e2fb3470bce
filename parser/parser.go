/*
File    : kscope/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

/*
Package parser implements a recursive-descent parser with precedence
climbing for the Kaleidoscope language.

The parser converts the lexer's token stream into an Abstract Syntax Tree.
It handles:
- Expressions (binary, unary, literals, identifiers, calls)
- Control flow (if/then/else, for/in)
- Scoped mutable bindings (var/in)
- Function prototypes, definitions and extern declarations
- User-defined unary and binary operators

Key Features:
- Precedence-climbing algorithm driven by a mutable operator table
- A single token of look-ahead (CurrToken)
- Error collection (doesn't panic on first error); the driver resynchronizes
  by advancing one token after a failed form
- Top-level expressions are wrapped in an anonymous zero-argument function

The operator-precedence table is owned by the caller and shared with the
code generator, which installs user-defined binary operators into it when
their definitions are lowered. An operator is therefore only parseable
after its definition has been compiled, which is the intended behavior.
*/
package parser

import (
	"fmt"

	"github.com/akashmaji946/kscope/lexer"
)

// Parser represents the parser state and configuration.
// It maintains all the information needed to parse Kaleidoscope source
// into an Abstract Syntax Tree (AST).
type Parser struct {
	Lex       *lexer.Lexer // Lexer instance producing the token stream
	CurrToken lexer.Token  // Current token being processed (one look-ahead)

	// Table is the mutable operator-precedence table. The parser only
	// reads it; the code generator extends it for user-defined operators.
	Table OpTable

	// Collect parsing errors instead of panicking.
	// This allows the REPL to report the error and continue.
	Errors []string
}

// NewParser creates and initializes a new Parser instance over the given
// lexer, using the given operator table.
//
// Parameters:
//
//	lex   - The lexer supplying tokens
//	table - The shared operator-precedence table
//
// Returns:
//
//	A pointer to a fully initialized Parser instance
//
// The first token is fetched immediately, so CurrToken is valid right away.
func NewParser(lex *lexer.Lexer, table OpTable) *Parser {
	par := &Parser{
		Lex:    lex,
		Table:  table,
		Errors: make([]string, 0),
	}
	par.Advance()
	return par
}

// Advance consumes the current token and fetches the next one from the
// lexer, returning it. This is the only way the parser moves forward.
func (par *Parser) Advance() lexer.Token {
	par.CurrToken = par.Lex.NextToken()
	return par.CurrToken
}

// AtEOF reports whether the parser has consumed the whole input.
func (par *Parser) AtEOF() bool {
	return par.CurrToken.Type == lexer.EOF_TYPE
}

// errorf records a one-line parse diagnostic and returns nil so parse
// functions can bail out with "return par.errorf(...)".
//
// Parameters:
//
//	format - printf-style message format
//	args   - message arguments
//
// Returns:
//
//	Always nil, typed as Expr for convenient returns
func (par *Parser) errorf(format string, args ...any) Expr {
	par.Errors = append(par.Errors, fmt.Sprintf(format, args...))
	return nil
}

// errorfProto is errorf for prototype-returning productions.
func (par *Parser) errorfProto(format string, args ...any) *Prototype {
	par.Errors = append(par.Errors, fmt.Sprintf(format, args...))
	return nil
}

// TakeErrors returns the collected diagnostics and clears the list.
// The REPL drains this after every failed form.
func (par *Parser) TakeErrors() []string {
	errs := par.Errors
	par.Errors = make([]string, 0)
	return errs
}

// expectChar checks that the current token is the single character c and
// consumes it. On mismatch it records a diagnostic mentioning where.
//
// Parameters:
//
//	c     - The expected character
//	where - Context for the diagnostic (e.g. "in argument list")
//
// Returns:
//
//	true if the character was present and consumed, false otherwise
func (par *Parser) expectChar(c byte, where string) bool {
	if !par.CurrToken.Is(c) {
		par.errorf("expected '%c' %s, got %s", c, where, par.CurrToken)
		return false
	}
	par.Advance()
	return true
}
