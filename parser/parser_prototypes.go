/*
File    : kscope/parser/parser_prototypes.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import "github.com/akashmaji946/kscope/lexer"

// parsePrototype parses a function signature.
//
//	prototype ::= id '(' id* ')'
//	            | 'unary'  CHAR '(' id ')'
//	            | 'binary' CHAR number? '(' id id ')'
//
// Operator prototypes are named by concatenation ("unary"+c, "binary"+c),
// which is also how their call sites find them during lowering. A binary
// operator may specify its precedence (1..100); omitting it selects the
// default. The parameter count of an operator prototype must match its
// arity.
func (par *Parser) parsePrototype() *Prototype {
	var fnName string

	// kind: 0 = ordinary function, 1 = unary operator, 2 = binary operator
	kind := 0
	binaryPrecedence := DEFAULT_BINARY_PRIORITY

	switch par.CurrToken.Type {
	case lexer.IDENTIFIER_ID:
		fnName = par.CurrToken.Literal
		kind = 0
		par.Advance()

	case lexer.UNARY_KEY:
		par.Advance()
		if par.CurrToken.Type != lexer.CHAR_TOK {
			return par.errorfProto("expected unary operator character, got %s", par.CurrToken)
		}
		fnName = "unary" + string(par.CurrToken.Ch())
		kind = 1
		par.Advance()

	case lexer.BINARY_KEY:
		par.Advance()
		if par.CurrToken.Type != lexer.CHAR_TOK {
			return par.errorfProto("expected binary operator character, got %s", par.CurrToken)
		}
		fnName = "binary" + string(par.CurrToken.Ch())
		kind = 2
		par.Advance()

		// Read the precedence if present
		if par.CurrToken.Type == lexer.NUMBER_LIT {
			prec := int(par.CurrToken.Number)
			if prec < MIN_USER_PRIORITY || prec > MAX_USER_PRIORITY {
				return par.errorfProto("invalid precedence %g: must be 1..100", par.CurrToken.Number)
			}
			binaryPrecedence = prec
			par.Advance()
		}

	default:
		return par.errorfProto("expected function name in prototype, got %s", par.CurrToken)
	}

	if !par.CurrToken.Is('(') {
		return par.errorfProto("expected '(' in prototype, got %s", par.CurrToken)
	}

	paramNames := make([]string, 0)
	for par.Advance().Type == lexer.IDENTIFIER_ID {
		paramNames = append(paramNames, par.CurrToken.Literal)
	}
	if !par.CurrToken.Is(')') {
		return par.errorfProto("expected ')' in prototype, got %s", par.CurrToken)
	}

	// success
	par.Advance() // eat )

	// Verify right number of parameter names for an operator
	if kind != 0 && len(paramNames) != kind {
		return par.errorfProto("invalid number of operands for operator: want %d, got %d", kind, len(paramNames))
	}

	return &Prototype{
		Name:       fnName,
		Params:     paramNames,
		IsOperator: kind != 0,
		Precedence: binaryPrecedence,
	}
}

// ParseDefinition parses a function definition.
//
//	definition ::= 'def' prototype expression
func (par *Parser) ParseDefinition() *Function {
	par.Advance() // eat 'def'

	proto := par.parsePrototype()
	if proto == nil {
		return nil
	}

	body := par.ParseExpression()
	if body == nil {
		return nil
	}
	return &Function{Proto: proto, Body: body}
}

// ParseExtern parses an external prototype declaration.
//
//	external ::= 'extern' prototype
func (par *Parser) ParseExtern() *Prototype {
	par.Advance() // eat 'extern'
	return par.parsePrototype()
}

// ParseTopLevelExpr parses a bare expression entered at the top level and
// wraps it in an anonymous zero-argument function so it can be compiled and
// invoked like any other definition.
//
//	toplevelexpr ::= expression
func (par *Parser) ParseTopLevelExpr() *Function {
	expr := par.ParseExpression()
	if expr == nil {
		return nil
	}

	// Make an anonymous proto
	proto := &Prototype{Name: AnonFuncName, Params: []string{}}
	return &Function{Proto: proto, Body: expr}
}
