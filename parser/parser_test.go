/*
File    : kscope/parser/parser_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/kscope/lexer"
)

// newTestParser builds a parser over an in-memory source string with a
// freshly seeded operator table.
func newTestParser(src string) *Parser {
	return NewParser(lexer.NewLexerFromString(src), NewOpTable())
}

func TestParser_Parse_OneNumberExpression(t *testing.T) {

	par := newTestParser(`12`)
	fn := par.ParseTopLevelExpr()
	// fn should not be nil
	require.NotNil(t, fn)

	// must: wrapped in the anonymous prototype
	assert.Equal(t, AnonFuncName, fn.Proto.Name)
	assert.True(t, fn.IsAnon())
	assert.Empty(t, fn.Proto.Params)

	num, can := fn.Body.(*NumberExpr)
	require.True(t, can)
	assert.Equal(t, 12.0, num.Val)
}

func TestParser_Parse_AddExpression(t *testing.T) {

	par := newTestParser(`12 + 13`)
	expr := par.ParseExpression()
	require.NotNil(t, expr)

	bin, can := expr.(*BinaryExpr)
	require.True(t, can)
	assert.Equal(t, byte('+'), bin.Opcode)

	left, can := bin.Lhs.(*NumberExpr)
	require.True(t, can)
	right, can := bin.Rhs.(*NumberExpr)
	require.True(t, can)

	assert.Equal(t, 12.0, left.Val)
	assert.Equal(t, 13.0, right.Val)
}

func TestParser_Parse_PrecedenceShape(t *testing.T) {

	// 28 - 13 * 2 must parse as 28 - (13 * 2)
	par := newTestParser(`28 - 13 * 2`)
	expr := par.ParseExpression()
	require.NotNil(t, expr)

	bin, can := expr.(*BinaryExpr)
	require.True(t, can)
	assert.Equal(t, byte('-'), bin.Opcode)

	right, can := bin.Rhs.(*BinaryExpr)
	require.True(t, can)
	assert.Equal(t, byte('*'), right.Opcode)
}

func TestParser_Parse_AssignmentIsRightAssociative(t *testing.T) {

	// a = b = 5 must parse as a = (b = 5)
	par := newTestParser(`a = b = 5`)
	expr := par.ParseExpression()
	require.NotNil(t, expr)

	outer, can := expr.(*BinaryExpr)
	require.True(t, can)
	assert.Equal(t, byte('='), outer.Opcode)

	lhs, can := outer.Lhs.(*VariableExpr)
	require.True(t, can)
	assert.Equal(t, "a", lhs.Name)

	inner, can := outer.Rhs.(*BinaryExpr)
	require.True(t, can)
	assert.Equal(t, byte('='), inner.Opcode)
}

func TestParser_Parse_ParenGrouping(t *testing.T) {

	// (1 + 2) * 3 must parse as (1 + 2) times 3
	par := newTestParser(`(1 + 2) * 3`)
	expr := par.ParseExpression()
	require.NotNil(t, expr)

	bin, can := expr.(*BinaryExpr)
	require.True(t, can)
	assert.Equal(t, byte('*'), bin.Opcode)

	left, can := bin.Lhs.(*BinaryExpr)
	require.True(t, can)
	assert.Equal(t, byte('+'), left.Opcode)
}

func TestParser_Parse_CallExpression(t *testing.T) {

	par := newTestParser(`foo(3, 4)`)
	expr := par.ParseExpression()
	require.NotNil(t, expr)

	call, can := expr.(*CallExpr)
	require.True(t, can)
	assert.Equal(t, "foo", call.Callee)
	require.Len(t, call.Args, 2)

	// bare identifier is a variable reference, not a call
	par = newTestParser(`foo`)
	expr = par.ParseExpression()
	require.NotNil(t, expr)
	_, can = expr.(*VariableExpr)
	assert.True(t, can)

	// zero-argument call
	par = newTestParser(`foo()`)
	expr = par.ParseExpression()
	require.NotNil(t, expr)
	call, can = expr.(*CallExpr)
	require.True(t, can)
	assert.Empty(t, call.Args)
}

func TestParser_Parse_IfExpression(t *testing.T) {

	par := newTestParser(`if x < 3 then 1 else 2`)
	expr := par.ParseExpression()
	require.NotNil(t, expr)

	ifExpr, can := expr.(*IfExpr)
	require.True(t, can)

	cond, can := ifExpr.Cond.(*BinaryExpr)
	require.True(t, can)
	assert.Equal(t, byte('<'), cond.Opcode)

	thenNum, can := ifExpr.Then.(*NumberExpr)
	require.True(t, can)
	assert.Equal(t, 1.0, thenNum.Val)

	elseNum, can := ifExpr.Else.(*NumberExpr)
	require.True(t, can)
	assert.Equal(t, 2.0, elseNum.Val)
}

func TestParser_Parse_ForExpression(t *testing.T) {

	// with an explicit step
	par := newTestParser(`for i = 1, i < n, 1.0 in putchard(42)`)
	expr := par.ParseExpression()
	require.NotNil(t, expr)

	forExpr, can := expr.(*ForExpr)
	require.True(t, can)
	assert.Equal(t, "i", forExpr.VarName)
	assert.NotNil(t, forExpr.Start)
	assert.NotNil(t, forExpr.End)
	assert.NotNil(t, forExpr.Step)
	_, can = forExpr.Body.(*CallExpr)
	assert.True(t, can)

	// step omitted: Step stays nil and lowering defaults it to 1.0
	par = newTestParser(`for i = 1, i < n in putchard(42)`)
	expr = par.ParseExpression()
	require.NotNil(t, expr)
	forExpr, can = expr.(*ForExpr)
	require.True(t, can)
	assert.Nil(t, forExpr.Step)
}

func TestParser_Parse_VarExpression(t *testing.T) {

	par := newTestParser(`var a = 1, b = 1, c in a + b + c`)
	expr := par.ParseExpression()
	require.NotNil(t, expr)

	varExpr, can := expr.(*VarExpr)
	require.True(t, can)
	require.Len(t, varExpr.Bindings, 3)

	assert.Equal(t, "a", varExpr.Bindings[0].Name)
	assert.NotNil(t, varExpr.Bindings[0].Init)
	assert.Equal(t, "b", varExpr.Bindings[1].Name)
	assert.NotNil(t, varExpr.Bindings[1].Init)
	// c has no initializer; lowering defaults it to 0.0
	assert.Equal(t, "c", varExpr.Bindings[2].Name)
	assert.Nil(t, varExpr.Bindings[2].Init)
}

func TestParser_Parse_Definition(t *testing.T) {

	par := newTestParser(`def foo(a b) a*a + 2*a*b + b*b`)
	fn := par.ParseDefinition()
	require.NotNil(t, fn)

	assert.Equal(t, "foo", fn.Proto.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Proto.Params)
	assert.False(t, fn.Proto.IsOperator)
	assert.False(t, fn.IsAnon())
	assert.NotNil(t, fn.Body)
}

func TestParser_Parse_Extern(t *testing.T) {

	par := newTestParser(`extern sin(x)`)
	proto := par.ParseExtern()
	require.NotNil(t, proto)

	assert.Equal(t, "sin", proto.Name)
	assert.Equal(t, []string{"x"}, proto.Params)
	assert.False(t, proto.IsOperator)
}

func TestParser_Parse_BinaryOperatorPrototype(t *testing.T) {

	par := newTestParser(`def binary : 1 (x y) y`)
	fn := par.ParseDefinition()
	require.NotNil(t, fn)

	proto := fn.Proto
	assert.Equal(t, "binary:", proto.Name)
	assert.True(t, proto.IsOperator)
	assert.True(t, proto.IsBinaryOp())
	assert.False(t, proto.IsUnaryOp())
	assert.Equal(t, byte(':'), proto.OperatorChar())
	assert.Equal(t, 1, proto.Precedence)
}

func TestParser_Parse_BinaryOperatorDefaultPrecedence(t *testing.T) {

	par := newTestParser(`def binary | (x y) x + y`)
	fn := par.ParseDefinition()
	require.NotNil(t, fn)

	// no precedence number: the default applies
	assert.Equal(t, DEFAULT_BINARY_PRIORITY, fn.Proto.Precedence)
}

func TestParser_Parse_UnaryOperatorPrototype(t *testing.T) {

	par := newTestParser(`def unary ! (v) if v then 0 else 1`)
	fn := par.ParseDefinition()
	require.NotNil(t, fn)

	proto := fn.Proto
	assert.Equal(t, "unary!", proto.Name)
	assert.True(t, proto.IsUnaryOp())
	assert.Equal(t, byte('!'), proto.OperatorChar())
}

func TestParser_Parse_UnregisteredOperatorParsesAsUnary(t *testing.T) {

	// '|' is not in the table, so "a | b" parses as a, leaving "| b"
	// unconsumed: the '|' then reads as a unary application on the next
	// parse. Registering '|' flips the same source to a binary expression.
	table := NewOpTable()
	par := NewParser(lexer.NewLexerFromString(`a | b`), table)
	expr := par.ParseExpression()
	require.NotNil(t, expr)
	_, can := expr.(*VariableExpr)
	assert.True(t, can)

	table.Install('|', 5)
	par = NewParser(lexer.NewLexerFromString(`a | b`), table)
	expr = par.ParseExpression()
	require.NotNil(t, expr)
	bin, can := expr.(*BinaryExpr)
	require.True(t, can)
	assert.Equal(t, byte('|'), bin.Opcode)
}

// TestParser_Parse_GrammarRoundTrip checks that each accepted form consumes
// exactly its own tokens and leaves the next form's first token current.
func TestParser_Parse_GrammarRoundTrip(t *testing.T) {

	par := newTestParser(`def foo(a) a; foo(1); extern sin(x)`)

	fn := par.ParseDefinition()
	require.NotNil(t, fn)
	// the ';' separating forms is the current token now
	assert.True(t, par.CurrToken.Is(';'))
	par.Advance()

	anon := par.ParseTopLevelExpr()
	require.NotNil(t, anon)
	assert.True(t, par.CurrToken.Is(';'))
	par.Advance()

	proto := par.ParseExtern()
	require.NotNil(t, proto)
	assert.True(t, par.AtEOF())
}

// TestParser_Parse_Errors checks the diagnostics for malformed forms.
func TestParser_Parse_Errors(t *testing.T) {

	tests := []struct {
		Src      string
		Contains string
	}{
		{`(1 + 2`, "expected ')'"},
		{`foo(1; 2)`, "expected ')' or ','"},
		{`if 1 then 2`, "expected 'else'"},
		{`if 1 2 else 3`, "expected 'then'"},
		{`for 1 = 1, 2 in 3`, "expected identifier after 'for'"},
		{`for i = 1 in 3`, "expected ','"},
		{`var in 1`, "expected identifier after 'var'"},
		{`var a = 1 a`, "expected 'in'"},
		{`def binary : 200 (x y) y`, "invalid precedence"},
		{`def binary : 1 (x) x`, "invalid number of operands"},
		{`def unary ! (a b) a`, "invalid number of operands"},
		{`def 1(x) x`, "expected function name"},
		{`)`, "unknown token"},
	}

	for _, test := range tests {
		par := newTestParser(test.Src)

		var got any
		switch par.CurrToken.Type {
		case lexer.DEF_KEY:
			got = par.ParseDefinition()
		case lexer.EXTERN_KEY:
			got = par.ParseExtern()
		default:
			got = par.ParseExpression()
		}

		// every malformed form yields nil plus a diagnostic
		assert.True(t, got == nil || got == (*Function)(nil), "src: %s", test.Src)
		errs := par.TakeErrors()
		require.NotEmpty(t, errs, "src: %s", test.Src)
		assert.Contains(t, errs[0], test.Contains, "src: %s", test.Src)
		// the error list is drained
		assert.Empty(t, par.Errors)
	}
}

// TestParser_Parse_MultiDotNumber verifies the strtod-style literal quirk
// survives all the way through the parser.
func TestParser_Parse_MultiDotNumber(t *testing.T) {

	par := newTestParser(`1.2.3`)
	expr := par.ParseExpression()
	require.NotNil(t, expr)

	num, can := expr.(*NumberExpr)
	require.True(t, can)
	assert.Equal(t, 1.2, num.Val)
}
