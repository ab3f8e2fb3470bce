/*
File    : kscope/parser/parser_expressions.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import "github.com/akashmaji946/kscope/lexer"

// ParseExpression is the entry point for parsing expressions.
// It parses a unary-or-primary left-hand side and then climbs the
// operator-precedence ladder for the rest.
//
// Returns:
//
//	An Expr, or nil after recording a diagnostic
func (par *Parser) ParseExpression() Expr {
	lhs := par.parseUnary()
	if lhs == nil {
		return nil
	}
	return par.parseBinOpRHS(MINIMUM_PRIORITY, lhs)
}

// parseBinOpRHS implements precedence climbing.
// Given an already-parsed lhs and the minimum precedence exprPrec, it keeps
// consuming (operator, operand) pairs while the current operator binds at
// least as tightly as exprPrec. When the operator after the right operand
// binds tighter than the current one, the right side is reparsed with a
// higher minimum, which is what makes '*' win over '+'. An '=' followed by
// another '=' of the same precedence also hands its right operand to the
// pending assignment, which is what makes '=' associate to the right.
//
// Parameters:
//
//	exprPrec - Minimum precedence this call is allowed to consume
//	lhs      - The already-parsed left operand
//
// Returns:
//
//	The accumulated expression, or nil on error
func (par *Parser) parseBinOpRHS(exprPrec int, lhs Expr) Expr {
	for {
		tokPrec := par.Table.Precedence(par.CurrToken)

		// If this is a binop that binds at least as tightly as the
		// current one, consume it, otherwise we are done.
		if tokPrec < exprPrec {
			return lhs
		}

		binOp := par.CurrToken.Ch()
		par.Advance()

		rhs := par.parseUnary()
		if rhs == nil {
			return nil
		}

		// If binOp binds less tightly with rhs than the operator after
		// rhs, let the pending operator take rhs as its lhs. Assignment
		// also yields at equal precedence, which is what chains
		// "a = b = 5" as "a = (b = 5)".
		nextPrec := par.Table.Precedence(par.CurrToken)
		if tokPrec < nextPrec {
			rhs = par.parseBinOpRHS(tokPrec+1, rhs)
			if rhs == nil {
				return nil
			}
		} else if binOp == '=' && nextPrec == tokPrec {
			rhs = par.parseBinOpRHS(tokPrec, rhs)
			if rhs == nil {
				return nil
			}
		}

		// merge lhs/rhs
		lhs = &BinaryExpr{Opcode: binOp, Lhs: lhs, Rhs: rhs}
	}
}

// parseUnary parses a unary operator application, or falls through to
// primary. Any single-character token other than '(' and ',' is treated as
// a prefix operator; whether a definition for it exists is only checked at
// lowering time.
//
//	unary ::= primary | op unary
func (par *Parser) parseUnary() Expr {
	// Non-char tokens and grouping punctuation start a primary.
	if par.CurrToken.Type != lexer.CHAR_TOK || par.CurrToken.Is('(') || par.CurrToken.Is(',') {
		return par.parsePrimary()
	}

	opc := par.CurrToken.Ch()
	par.Advance()
	operand := par.parseUnary()
	if operand == nil {
		return nil
	}
	return &UnaryExpr{Opcode: opc, Operand: operand}
}

// parsePrimary parses the atoms of the expression grammar.
//
//	primary ::= number | identifier ('(' args ')')? | '(' expr ')'
//	          | if_expr | for_expr | var_expr
func (par *Parser) parsePrimary() Expr {
	switch par.CurrToken.Type {
	case lexer.IDENTIFIER_ID:
		return par.parseIdentifierExpr()
	case lexer.NUMBER_LIT:
		return par.parseNumberExpr()
	case lexer.IF_KEY:
		return par.parseIfExpr()
	case lexer.FOR_KEY:
		return par.parseForExpr()
	case lexer.VAR_KEY:
		return par.parseVarExpr()
	case lexer.CHAR_TOK:
		if par.CurrToken.Is('(') {
			return par.parseParenExpr()
		}
	}
	return par.errorf("unknown token when expecting an expression, got %s", par.CurrToken)
}

// parseNumberExpr parses a numeric literal.
// The lexer has already done the double conversion.
func (par *Parser) parseNumberExpr() Expr {
	result := &NumberExpr{Val: par.CurrToken.Number}
	par.Advance() // consume the number
	return result
}

// parseParenExpr parses a parenthesized expression: '(' expression ')'.
// Parentheses are for grouping only and produce no node of their own.
func (par *Parser) parseParenExpr() Expr {
	par.Advance() // eat (
	v := par.ParseExpression()
	if v == nil {
		return nil
	}
	if !par.expectChar(')', "to close parenthesized expression") {
		return nil
	}
	return v
}

// parseIdentifierExpr parses a variable reference or a function call.
//
//	identifierexpr ::= identifier
//	                 | identifier '(' expression* ')'
func (par *Parser) parseIdentifierExpr() Expr {
	idName := par.CurrToken.Literal

	par.Advance() // eat identifier
	if !par.CurrToken.Is('(') {
		return &VariableExpr{Name: idName}
	}

	// Call
	par.Advance() // eat (
	args := make([]Expr, 0)
	if !par.CurrToken.Is(')') {
		for {
			arg := par.ParseExpression()
			if arg == nil {
				return nil
			}
			args = append(args, arg)

			if par.CurrToken.Is(')') {
				break
			}
			if !par.CurrToken.Is(',') {
				return par.errorf("expected ')' or ',' in argument list, got %s", par.CurrToken)
			}
			par.Advance()
		}
	}

	par.Advance() // eat )
	return &CallExpr{Callee: idName, Args: args}
}
