/*
File    : kscope/parser/parser_controls.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import "github.com/akashmaji946/kscope/lexer"

// parseIfExpr parses a conditional expression.
//
//	ifexpr ::= 'if' expression 'then' expression 'else' expression
//
// Both arms are mandatory; the form is an expression, not a statement,
// so it always yields a value.
//
// Example:
//
//	if x < 3 then 1 else fib(x-1) + fib(x-2)
func (par *Parser) parseIfExpr() Expr {
	par.Advance() // eat 'if'

	cond := par.ParseExpression()
	if cond == nil {
		return nil
	}

	if par.CurrToken.Type != lexer.THEN_KEY {
		return par.errorf("expected 'then', got %s", par.CurrToken)
	}
	par.Advance() // eat 'then'

	thenArm := par.ParseExpression()
	if thenArm == nil {
		return nil
	}

	if par.CurrToken.Type != lexer.ELSE_KEY {
		return par.errorf("expected 'else', got %s", par.CurrToken)
	}
	par.Advance() // eat 'else'

	elseArm := par.ParseExpression()
	if elseArm == nil {
		return nil
	}

	return &IfExpr{Cond: cond, Then: thenArm, Else: elseArm}
}

// parseForExpr parses a counted loop.
//
//	forexpr ::= 'for' identifier '=' expr ',' expr (',' expr)? 'in' expression
//
// The third expression (the step) is optional and defaults to 1.0.
//
// Example:
//
//	for i = 1, i < n, 1.0 in putchard(42)
func (par *Parser) parseForExpr() Expr {
	par.Advance() // eat 'for'

	if par.CurrToken.Type != lexer.IDENTIFIER_ID {
		return par.errorf("expected identifier after 'for', got %s", par.CurrToken)
	}
	idName := par.CurrToken.Literal
	par.Advance() // eat identifier

	if !par.expectChar('=', "after 'for' identifier") {
		return nil
	}

	start := par.ParseExpression()
	if start == nil {
		return nil
	}
	if !par.expectChar(',', "after 'for' start value") {
		return nil
	}

	end := par.ParseExpression()
	if end == nil {
		return nil
	}

	// The step value is optional
	var step Expr
	if par.CurrToken.Is(',') {
		par.Advance()
		step = par.ParseExpression()
		if step == nil {
			return nil
		}
	}

	if par.CurrToken.Type != lexer.IN_KEY {
		return par.errorf("expected 'in' after 'for', got %s", par.CurrToken)
	}
	par.Advance() // eat 'in'

	body := par.ParseExpression()
	if body == nil {
		return nil
	}

	return &ForExpr{VarName: idName, Start: start, End: end, Step: step, Body: body}
}

// parseVarExpr parses scoped mutable bindings.
//
//	varexpr ::= 'var' identifier ('=' expression)?
//	                  (',' identifier ('=' expression)?)* 'in' expression
//
// Each initializer is optional and defaults to 0.0.
//
// Example:
//
//	var a = 1, b = 1, c in (for i = 3, i < x in c = a+b : a = b : b = c) : b
func (par *Parser) parseVarExpr() Expr {
	par.Advance() // eat 'var'

	bindings := make([]VarBinding, 0)

	// At least one variable name is required
	if par.CurrToken.Type != lexer.IDENTIFIER_ID {
		return par.errorf("expected identifier after 'var', got %s", par.CurrToken)
	}

	for {
		name := par.CurrToken.Literal
		par.Advance() // eat identifier

		// Read the optional initializer
		var init Expr
		if par.CurrToken.Is('=') {
			par.Advance() // eat '='
			init = par.ParseExpression()
			if init == nil {
				return nil
			}
		}

		bindings = append(bindings, VarBinding{Name: name, Init: init})

		// End of var list, exit loop
		if !par.CurrToken.Is(',') {
			break
		}
		par.Advance() // eat ','

		if par.CurrToken.Type != lexer.IDENTIFIER_ID {
			return par.errorf("expected identifier list after 'var', got %s", par.CurrToken)
		}
	}

	// At this point we have to have 'in'
	if par.CurrToken.Type != lexer.IN_KEY {
		return par.errorf("expected 'in' after 'var', got %s", par.CurrToken)
	}
	par.Advance() // eat 'in'

	body := par.ParseExpression()
	if body == nil {
		return nil
	}

	return &VarExpr{Bindings: bindings, Body: body}
}
