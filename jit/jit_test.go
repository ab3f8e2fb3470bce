/*
File    : kscope/jit/jit_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package jit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/kscope/codegen"
	"github.com/akashmaji946/kscope/lexer"
	"github.com/akashmaji946/kscope/parser"
)

// session bundles a compiler context with a JIT for the tests.
type session struct {
	cg  *codegen.Codegen
	jit *JIT
}

func newSession(t *testing.T) *session {
	t.Helper()
	cg := codegen.NewCodegen(parser.NewOpTable())
	j, err := NewJIT(cg.Context)
	require.NoError(t, err)
	return &session{cg: cg, jit: j}
}

// define compiles one 'def' form and retains its module in the JIT.
func (s *session) define(t *testing.T, src string) {
	t.Helper()
	par := parser.NewParser(lexer.NewLexerFromString(src), s.cg.Table)
	fn := par.ParseDefinition()
	require.NotNil(t, fn, "parse failed: %v", par.Errors)
	_, err := s.cg.GenFunction(fn)
	require.NoError(t, err)
	s.jit.AddModule(s.cg.Module)
	s.cg.InitModuleAndPassManager()
}

// extern records one 'extern' prototype.
func (s *session) extern(t *testing.T, src string) {
	t.Helper()
	par := parser.NewParser(lexer.NewLexerFromString(src), s.cg.Table)
	proto := par.ParseExtern()
	require.NotNil(t, proto, "parse failed: %v", par.Errors)
	s.cg.GenExtern(proto)
}

// eval compiles a top-level expression, invokes it through the JIT,
// removes its module again, and returns the result.
func (s *session) eval(t *testing.T, src string) float64 {
	t.Helper()
	par := parser.NewParser(lexer.NewLexerFromString(src), s.cg.Table)
	fn := par.ParseTopLevelExpr()
	require.NotNil(t, fn, "parse failed: %v", par.Errors)
	function, err := s.cg.GenFunction(fn)
	require.NoError(t, err)

	mod := s.cg.Module
	s.jit.AddModule(mod)
	s.cg.InitModuleAndPassManager()

	result := s.jit.Run(function)
	s.jit.RemoveModule(mod)
	return result
}

func TestJIT_EvaluateArithmetic(t *testing.T) {

	s := newSession(t)
	defer s.jit.Dispose()

	assert.Equal(t, 9.0, s.eval(t, `4 + 5`))
	// per-anon-module cleanup: the next expression reuses the name
	assert.Equal(t, 14.0, s.eval(t, `2 + 3 * 4`))
	assert.Equal(t, 1.0, s.eval(t, `2 < 3`))
	assert.Equal(t, 0.0, s.eval(t, `3 < 2`))
}

func TestJIT_CallAcrossModules(t *testing.T) {

	s := newSession(t)
	defer s.jit.Dispose()

	s.define(t, `def foo(a b) a*a + 2*a*b + b*b`)
	assert.Equal(t, 49.0, s.eval(t, `foo(3, 4)`))
	// the definition stays resolvable for later modules
	assert.Equal(t, 49.0, s.eval(t, `foo(4, 3)`))
}

func TestJIT_Recursion(t *testing.T) {

	s := newSession(t)
	defer s.jit.Dispose()

	s.define(t, `def fib(x) if x < 3 then 1 else fib(x-1) + fib(x-2)`)
	assert.Equal(t, 55.0, s.eval(t, `fib(10)`))
}

func TestJIT_LoopsAndBuiltins(t *testing.T) {

	s := newSession(t)
	defer s.jit.Dispose()

	s.extern(t, `extern putchard(c)`)
	s.define(t, `def binary : 1 (x y) y`)
	s.define(t, `def printstar(n) for i = 1, i < n, 1.0 in putchard(42)`)

	// the stars land on the C-level stderr; the expression value is
	// the loop's fixed 0.0
	assert.Equal(t, 0.0, s.eval(t, `printstar(5)`))
}

func TestJIT_MutableVariables(t *testing.T) {

	s := newSession(t)
	defer s.jit.Dispose()

	s.define(t, `def binary : 1 (x y) y`)
	s.define(t, `def fibi(x) var a = 1, b = 1, c in (for i = 3, i < x in c = a + b : a = b : b = c) : b`)
	assert.Equal(t, 55.0, s.eval(t, `fibi(10)`))
}

func TestJIT_UserOperators(t *testing.T) {

	s := newSession(t)
	defer s.jit.Dispose()

	s.define(t, `def unary - (v) 0 - v`)
	assert.Equal(t, -5.0, s.eval(t, `-(2 + 3)`))

	s.define(t, `def binary > 10 (lhs rhs) rhs < lhs`)
	assert.Equal(t, 1.0, s.eval(t, `3 > 2`))
	assert.Equal(t, 0.0, s.eval(t, `2 > 3`))
}
