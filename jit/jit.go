/*
File    : kscope/jit/jit.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

/*
Package jit owns the process-wide JIT session.

The session wraps an MCJIT execution engine. Modules compiled by the code
generator are added to it one per top-level form: definition and extern
modules are retained for the life of the process, while each anonymous
top-level-expression module is added, invoked once, and removed again so
the next expression can reuse the anonymous symbol name. Cross-module
references are plain external declarations that the engine resolves
against the retained modules at finalization time.

The host-side runtime helpers (putchard, printd) are registered with the
engine's symbol table before any module is added, so compiled code can
'extern' and call them.
*/
package jit

import (
	"fmt"

	"tinygo.org/x/go-llvm"
)

// JIT is the long-lived JIT session. One is created per REPL session and
// lives until process exit.
type JIT struct {
	engine llvm.ExecutionEngine
}

// NewJIT creates the JIT session.
// It links in the MCJIT implementation, initializes the native target and
// its assembly printer, and registers the runtime builtins. The engine is
// seeded with an empty anchor module from the compiler's context; real
// modules arrive through AddModule.
//
// Parameters:
//
//	ctx - The LLVM context shared with the code generator
//
// Returns:
//
//	The session, or an error if native target setup or engine creation fails
func NewJIT(ctx llvm.Context) (*JIT, error) {
	llvm.LinkInMCJIT()
	if err := llvm.InitializeNativeTarget(); err != nil {
		return nil, fmt.Errorf("native target initialization failed: %w", err)
	}
	if err := llvm.InitializeNativeAsmPrinter(); err != nil {
		return nil, fmt.Errorf("native asm printer initialization failed: %w", err)
	}

	registerBuiltins()

	options := llvm.NewMCJITCompilerOptions()
	options.SetMCJITOptimizationLevel(2)
	engine, err := llvm.NewMCJITCompiler(ctx.NewModule("kscope-jit-anchor"), options)
	if err != nil {
		return nil, fmt.Errorf("could not create MCJIT engine: %w", err)
	}

	return &JIT{engine: engine}, nil
}

// AddModule hands a compiled module to the session. The module must not be
// mutated afterwards; the engine owns it until RemoveModule.
func (j *JIT) AddModule(m llvm.Module) {
	j.engine.AddModule(m)
}

// RemoveModule detaches a module from the session and destroys it.
// Used for anonymous top-level-expression modules after their single
// invocation, so the next expression can reuse the anonymous name.
func (j *JIT) RemoveModule(m llvm.Module) {
	j.engine.RemoveModule(m)
	m.Dispose()
}

// Run finalizes the given zero-argument function and calls it, returning
// its double result. The function's module must already have been added
// to the session.
func (j *JIT) Run(fn llvm.Value) float64 {
	ptr := j.engine.PointerToGlobal(fn)
	return invokeDouble(ptr)
}

// Dispose tears down the execution engine and every module it retains.
func (j *JIT) Dispose() {
	j.engine.Dispose()
}
