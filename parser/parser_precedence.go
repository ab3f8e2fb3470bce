/*
File    : kscope/parser/parser_precedence.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import "github.com/akashmaji946/kscope/lexer"

// Builtin operator precedence constants
// Higher number = higher precedence (binds tighter)
//
// Precedence Hierarchy (lowest to highest):
// 1. Assignment '=' (right-associative through the climbing algorithm)
// 2. Comparison '<'
// 3. Additive '+'
// 4. Subtractive '-'
// 5. Multiplicative '*'
//
// User-defined binary operators pick their own precedence in 1..100
// (default 30) and enter the table when their definition is lowered.
//
// Example: In "a + b * c", multiplication has higher precedence than
// addition, so it's parsed as "a + (b * c)" rather than "(a + b) * c".
const (
	MINIMUM_PRIORITY = 0 // Base priority for starting expression parsing

	// Assignment operator (lowest active precedence)
	// Example: a = b = 5 is parsed as a = (b = 5)
	ASSIGN_PRIORITY = 2

	// Comparison: <
	// Example: a + b < c is parsed as (a + b) < c
	LESS_PRIORITY = 10

	// Additive: +
	PLUS_PRIORITY = 20

	// Subtractive: -
	MINUS_PRIORITY = 30

	// Multiplicative: *
	MUL_PRIORITY = 40

	// User-defined binary operators default to this when the definition
	// omits an explicit precedence number
	DEFAULT_BINARY_PRIORITY = 30

	// Bounds for user-supplied precedence values
	MIN_USER_PRIORITY = 1
	MAX_USER_PRIORITY = 100
)

// OpTable is the mutable operator-precedence table that drives the
// precedence-climbing expression parser. It maps a single-byte operator to
// its precedence. The table is shared between the parser (which queries it)
// and the code generator (which installs user-defined binary operators into
// it at lowering time, making them visible to subsequent parses).
type OpTable map[byte]int

// NewOpTable creates a precedence table seeded with the builtin operators.
//
// Returns:
//
//	An OpTable holding '=', '<', '+', '-', '*'
func NewOpTable() OpTable {
	return OpTable{
		'=': ASSIGN_PRIORITY,
		'<': LESS_PRIORITY,
		'+': PLUS_PRIORITY,
		'-': MINUS_PRIORITY,
		'*': MUL_PRIORITY,
	}
}

// Install registers (or re-registers) a binary operator with the given
// precedence. Called by the code generator when a 'binary' definition is
// lowered, never at parse time, so an operator only becomes parseable once
// its defining function exists.
func (table OpTable) Install(op byte, precedence int) {
	table[op] = precedence
}

// Precedence returns the binding strength of the given token, or -1 if the
// token is not a registered binary operator. Only single-byte CHAR tokens
// can be operators; keywords, identifiers and numbers always return -1.
//
// Parameters:
//
//	tok - The token to look up
//
// Returns:
//
//	The operator's precedence, or -1 for non-operators
func (table OpTable) Precedence(tok lexer.Token) int {
	if tok.Type != lexer.CHAR_TOK {
		return -1
	}
	prec, ok := table[tok.Ch()]
	if !ok || prec <= 0 {
		return -1
	}
	return prec
}
