/*
File    : kscope/codegen/codegen_functions.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package codegen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/akashmaji946/kscope/parser"
)

// getFunction resolves a function name for a call site or a definition.
//
// Resolution protocol:
//  1. If the current module already contains the function, use it.
//  2. Otherwise, if the prototype registry has an entry, lower just the
//     prototype into the current module (an external declaration) and use
//     that. The JIT links it against the retained module holding the body.
//  3. Otherwise the name is unknown.
//
// This is the mechanism that lets every REPL entry live in its own fresh
// module while still seeing every previously defined name.
func (cg *Codegen) getFunction(name string) (llvm.Value, error) {
	if fn := cg.Module.NamedFunction(name); !fn.IsNil() {
		return fn, nil
	}

	if proto, ok := cg.Protos[name]; ok {
		return cg.genPrototype(proto), nil
	}

	return llvm.Value{}, fmt.Errorf("%w: %s", ErrUnknownCallee, name)
}

// genPrototype lowers a prototype into the current module as a function
// declaration of type double(double...) with external linkage, naming the
// parameters for readable IR.
func (cg *Codegen) genPrototype(proto *parser.Prototype) llvm.Value {
	fn := llvm.AddFunction(cg.Module, proto.Name, cg.fnType(len(proto.Params)))
	fn.SetLinkage(llvm.ExternalLinkage)

	for i, param := range fn.Params() {
		param.SetName(proto.Params[i])
	}
	return fn
}

// GenExtern lowers an 'extern' declaration: the prototype goes into the
// current module and is recorded in the registry so later forms can call
// it. No module hand-off happens for externs; the declaration simply rides
// along with the next form compiled into this module.
func (cg *Codegen) GenExtern(proto *parser.Prototype) llvm.Value {
	// the registry never downgrades a name to a lower-arity prototype
	if existing, ok := cg.Protos[proto.Name]; !ok || len(proto.Params) >= len(existing.Params) {
		cg.Protos[proto.Name] = proto
	}
	fn := cg.Module.NamedFunction(proto.Name)
	if fn.IsNil() {
		fn = cg.genPrototype(proto)
	}
	return fn
}

// GenFunction lowers a complete function definition into the current
// module, verifies it, and runs the function pass pipeline over it.
//
// The prototype is moved into the registry before the body is touched so
// that recursive calls resolve through getFunction. If the prototype
// defines a binary operator, its precedence is installed now, at code
// generation rather than at parse, which is when the operator becomes visible to
// subsequent parses.
//
// On any body failure the partially built function is erased from the
// module, leaving the module otherwise intact.
//
// Parameters:
//
//	fn - The parsed definition (or wrapped top-level expression)
//
// Returns:
//
//	The IR function, or one of the package's sentinel errors
func (cg *Codegen) GenFunction(fn *parser.Function) (llvm.Value, error) {
	// Transfer the prototype to the registry first; recursive calls in
	// the body resolve against it.
	proto := fn.Proto
	cg.Protos[proto.Name] = proto

	function, err := cg.getFunction(proto.Name)
	if err != nil {
		return llvm.Value{}, err
	}

	// A declaration may be re-emitted any number of times, but only one
	// module ever holds the body.
	if function.BasicBlocksCount() != 0 {
		return llvm.Value{}, fmt.Errorf("%w: %s", ErrRedefinition, proto.Name)
	}

	// A binary operator definition becomes parseable from here on
	if proto.IsBinaryOp() {
		cg.Table.Install(proto.OperatorChar(), proto.Precedence)
	}

	entry := llvm.AddBasicBlock(function, "entry")
	cg.Builder.SetInsertPointAtEnd(entry)

	// Fresh scope: one entry-block slot per parameter, holding the
	// incoming argument. An earlier declaration of this name may carry a
	// different arity, so bind only the parameters both sides have.
	cg.named = make(map[string]llvm.Value)
	for i, name := range proto.Params {
		if i >= function.ParamsCount() {
			break
		}
		slot := cg.createEntryBlockAlloca(function, name)
		cg.Builder.CreateStore(function.Param(i), slot)
		cg.named[name] = slot
	}

	bodyValue, err := cg.genExpr(fn.Body)
	if err != nil {
		// Erase the partial function; the module stays usable
		function.EraseFromParentAsFunction()
		return llvm.Value{}, err
	}

	cg.Builder.CreateRet(bodyValue)

	if err := llvm.VerifyFunction(function, llvm.PrintMessageAction); err != nil {
		function.EraseFromParentAsFunction()
		return llvm.Value{}, fmt.Errorf("%w: %s", ErrVerifyFailed, proto.Name)
	}

	// Optimize the fresh function in place
	cg.fpm.RunFunc(function)

	return function, nil
}
