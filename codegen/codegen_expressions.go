/*
File    : kscope/codegen/codegen_expressions.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package codegen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/akashmaji946/kscope/parser"
)

// genExpr lowers one expression node to an IR value.
// This is the single dispatch point over the AST: every expression kind
// is handled by a case here or by one of the gen* helpers it calls.
//
// Parameters:
//
//	expr - The AST node to lower
//
// Returns:
//
//	The IR value of the expression, or one of the package's sentinel errors
func (cg *Codegen) genExpr(expr parser.Expr) (llvm.Value, error) {
	switch e := expr.(type) {
	case *parser.NumberExpr:
		return cg.constDouble(e.Val), nil
	case *parser.VariableExpr:
		return cg.genVariable(e)
	case *parser.UnaryExpr:
		return cg.genUnary(e)
	case *parser.BinaryExpr:
		return cg.genBinary(e)
	case *parser.CallExpr:
		return cg.genCall(e)
	case *parser.IfExpr:
		return cg.genIf(e)
	case *parser.ForExpr:
		return cg.genFor(e)
	case *parser.VarExpr:
		return cg.genVar(e)
	default:
		return llvm.Value{}, fmt.Errorf("unhandled expression node %T", expr)
	}
}

// genVariable lowers a variable reference: a load from the slot bound to
// the name in the current scope.
func (cg *Codegen) genVariable(e *parser.VariableExpr) (llvm.Value, error) {
	slot, ok := cg.named[e.Name]
	if !ok {
		return llvm.Value{}, fmt.Errorf("%w: %s", ErrUnknownName, e.Name)
	}
	return cg.Builder.CreateLoad(cg.doubleType, slot, e.Name), nil
}

// genUnary lowers a unary operator application as a call to the function
// named "unary"+op.
func (cg *Codegen) genUnary(e *parser.UnaryExpr) (llvm.Value, error) {
	operand, err := cg.genExpr(e.Operand)
	if err != nil {
		return llvm.Value{}, err
	}

	fn, err := cg.getFunction("unary" + string(e.Opcode))
	if err != nil {
		return llvm.Value{}, fmt.Errorf("%w: '%c'", ErrUnknownUnary, e.Opcode)
	}
	return cg.Builder.CreateCall(cg.fnType(1), fn, []llvm.Value{operand}, "unop"), nil
}

// genBinary lowers a binary operation.
// Assignment is special-cased before either side is evaluated: the left
// side must syntactically be a variable, and only the right side is
// evaluated as a value. The builtins '+', '-', '*', '<' map to single IR
// instructions; any other opcode calls the user's "binary"+op function.
func (cg *Codegen) genBinary(e *parser.BinaryExpr) (llvm.Value, error) {
	if e.Opcode == '=' {
		return cg.genAssign(e)
	}

	lhs, err := cg.genExpr(e.Lhs)
	if err != nil {
		return llvm.Value{}, err
	}
	rhs, err := cg.genExpr(e.Rhs)
	if err != nil {
		return llvm.Value{}, err
	}

	switch e.Opcode {
	case '+':
		return cg.Builder.CreateFAdd(lhs, rhs, "addtmp"), nil
	case '-':
		return cg.Builder.CreateFSub(lhs, rhs, "subtmp"), nil
	case '*':
		return cg.Builder.CreateFMul(lhs, rhs, "multmp"), nil
	case '<':
		// fcmp yields an i1; convert it to 0.0 or 1.0
		cmp := cg.Builder.CreateFCmp(llvm.FloatULT, lhs, rhs, "cmptmp")
		return cg.Builder.CreateUIToFP(cmp, cg.doubleType, "booltmp"), nil
	}

	// Not a builtin: it must be a user-defined operator
	fn, err := cg.getFunction("binary" + string(e.Opcode))
	if err != nil {
		return llvm.Value{}, fmt.Errorf("%w: '%c'", ErrUnknownBinary, e.Opcode)
	}
	return cg.Builder.CreateCall(cg.fnType(2), fn, []llvm.Value{lhs, rhs}, "binop"), nil
}

// genAssign lowers 'lhs = rhs'.
// The right side is evaluated first, then stored into the left side's
// slot; the stored value is the expression's value, which is what lets
// assignments chain.
func (cg *Codegen) genAssign(e *parser.BinaryExpr) (llvm.Value, error) {
	target, ok := e.Lhs.(*parser.VariableExpr)
	if !ok {
		return llvm.Value{}, ErrBadAssignTarget
	}

	value, err := cg.genExpr(e.Rhs)
	if err != nil {
		return llvm.Value{}, err
	}

	slot, ok := cg.named[target.Name]
	if !ok {
		return llvm.Value{}, fmt.Errorf("%w: %s", ErrUnknownName, target.Name)
	}

	cg.Builder.CreateStore(value, slot)
	return value, nil
}

// genCall lowers a function call: resolve the callee through the module
// and the prototype registry, check the arity, evaluate the arguments left
// to right, and emit the call.
func (cg *Codegen) genCall(e *parser.CallExpr) (llvm.Value, error) {
	callee, err := cg.getFunction(e.Callee)
	if err != nil {
		return llvm.Value{}, err
	}

	if callee.ParamsCount() != len(e.Args) {
		return llvm.Value{}, fmt.Errorf("%w: %s wants %d, got %d",
			ErrArityMismatch, e.Callee, callee.ParamsCount(), len(e.Args))
	}

	args := make([]llvm.Value, 0, len(e.Args))
	for _, argExpr := range e.Args {
		arg, err := cg.genExpr(argExpr)
		if err != nil {
			return llvm.Value{}, err
		}
		args = append(args, arg)
	}

	return cg.Builder.CreateCall(cg.fnType(len(e.Args)), callee, args, "calltmp"), nil
}
