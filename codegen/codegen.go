/*
File    : kscope/codegen/codegen.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

/*
Package codegen lowers the parser's AST into LLVM IR.

One Codegen value is the whole compiler context: it owns the LLVM context,
the shared instruction builder, the module currently being filled, the
per-function named-value scope, and the process-wide prototype registry.
The REPL driver creates it once and reuses it for the life of the session.

Key mechanics:
  - Every local variable lives in a stack slot allocated in the function's
    entry block, so the mem2reg pass can promote the slots to SSA registers
    after the fact. All control flow ('if' phi nodes, 'for' loops) is built
    on top of that discipline.
  - Each top-level form is compiled into a fresh module. References to
    functions compiled earlier are re-materialized as declarations from the
    prototype registry and resolved by the JIT at link time.
  - A per-module function pass manager runs mem2reg, instruction combining,
    reassociation, GVN and CFG simplification over every function right
    after it verifies.
*/
package codegen

import (
	"tinygo.org/x/go-llvm"

	"github.com/akashmaji946/kscope/parser"
)

// ModuleName is the name given to every per-form module. Modules are
// anonymous from the user's point of view; the JIT tells them apart by
// handle, not by name.
const ModuleName = "kscope"

// Codegen holds the complete code generation state.
// It is single-threaded by design: compilation and execution interleave
// strictly sequentially in the REPL, so no locking is needed.
type Codegen struct {
	Context llvm.Context // LLVM context owning all types and constants
	Builder llvm.Builder // Shared instruction builder
	Module  llvm.Module  // Module for the top-level form being compiled

	// Protos is the process-wide prototype registry. It grows
	// monotonically: every 'def' and 'extern' records its prototype here
	// so later modules can re-declare and link against earlier names.
	Protos map[string]*parser.Prototype

	// Table is the operator-precedence table shared with the parser.
	// Binary operator definitions are installed here at lowering time.
	Table parser.OpTable

	// named maps in-scope names to their entry-block alloca slots.
	// Cleared on function entry; saved and restored around 'for' and
	// 'var' bindings.
	named map[string]llvm.Value

	// fpm is the function pass manager of the current module
	fpm llvm.PassManager

	// doubleType is the one and only value type in the language
	doubleType llvm.Type
}

// NewCodegen creates a code generation context over a fresh LLVM context
// and opens the first module.
//
// Parameters:
//
//	table - The operator-precedence table shared with the parser
//
// Returns:
//
//	A pointer to a ready-to-use Codegen
func NewCodegen(table parser.OpTable) *Codegen {
	ctx := llvm.NewContext()
	cg := &Codegen{
		Context: ctx,
		Builder: ctx.NewBuilder(),
		Protos:  make(map[string]*parser.Prototype),
		Table:   table,
		named:   make(map[string]llvm.Value),
	}
	cg.doubleType = ctx.DoubleType()
	cg.InitModuleAndPassManager()
	return cg
}

// InitModuleAndPassManager opens a fresh module and its function pass
// manager. The driver calls this right after handing the previous module
// to the JIT; a module is never mutated once handed off.
func (cg *Codegen) InitModuleAndPassManager() {
	cg.Module = cg.Context.NewModule(ModuleName)

	cg.fpm = llvm.NewFunctionPassManagerForModule(cg.Module)
	// Promote entry-block allocas to SSA registers
	cg.fpm.AddPromoteMemoryToRegisterPass()
	// Peephole optimizations and bit-twiddling
	cg.fpm.AddInstructionCombiningPass()
	// Reassociate expressions to expose redundancy
	cg.fpm.AddReassociatePass()
	// Eliminate common subexpressions
	cg.fpm.AddGVNPass()
	// Simplify the control flow graph
	cg.fpm.AddCFGSimplificationPass()
	cg.fpm.InitializeFunc()
}

// Dispose releases the builder and the LLVM context.
// Only meaningful at process shutdown; modules handed to the JIT are
// owned by the execution engine.
func (cg *Codegen) Dispose() {
	cg.Builder.Dispose()
	cg.Context.Dispose()
}

// fnType returns the type double(double, double, ... n times).
// Every function in the language has this shape.
func (cg *Codegen) fnType(arity int) llvm.Type {
	params := make([]llvm.Type, arity)
	for i := range params {
		params[i] = cg.doubleType
	}
	return llvm.FunctionType(cg.doubleType, params, false)
}

// constDouble returns an IR constant of the language's double type.
func (cg *Codegen) constDouble(v float64) llvm.Value {
	return llvm.ConstFloat(cg.doubleType, v)
}

// createEntryBlockAlloca allocates a double stack slot in the entry block
// of the given function, regardless of where the main builder currently
// points. Keeping every alloca in the entry block is what lets mem2reg
// promote all scalars to SSA registers.
//
// Parameters:
//
//	fn   - The function to allocate in
//	name - The slot's name, for readable IR
//
// Returns:
//
//	The alloca instruction (a pointer-typed value)
func (cg *Codegen) createEntryBlockAlloca(fn llvm.Value, name string) llvm.Value {
	tmpBuilder := cg.Context.NewBuilder()
	defer tmpBuilder.Dispose()

	entry := fn.EntryBasicBlock()
	if first := entry.FirstInstruction(); first.IsNil() {
		tmpBuilder.SetInsertPointAtEnd(entry)
	} else {
		tmpBuilder.SetInsertPointBefore(first)
	}
	return tmpBuilder.CreateAlloca(cg.doubleType, name)
}
