/*
File    : kscope/codegen/codegen_controls.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package codegen

import (
	"tinygo.org/x/go-llvm"

	"github.com/akashmaji946/kscope/parser"
)

// savedBinding remembers one named-value entry displaced by a scoped
// binding so it can be put back on scope exit.
type savedBinding struct {
	name string
	slot llvm.Value
	had  bool
}

// genIf lowers 'if cond then a else b' into a diamond of basic blocks
// joined by a phi node.
//
// The condition is compared against 0.0 (unordered-not-equal) to get an
// i1, then a conditional branch selects the arm. Each arm may itself
// contain control flow and move the insertion point, so the blocks feeding
// the phi are whichever blocks the arms ended in, not the ones created
// here.
func (cg *Codegen) genIf(e *parser.IfExpr) (llvm.Value, error) {
	cond, err := cg.genExpr(e.Cond)
	if err != nil {
		return llvm.Value{}, err
	}

	// Convert the condition to a bool by comparing against 0.0
	condBool := cg.Builder.CreateFCmp(llvm.FloatUNE, cond, cg.constDouble(0), "ifcond")

	fn := cg.Builder.GetInsertBlock().Parent()
	thenBlock := llvm.AddBasicBlock(fn, "then")
	elseBlock := llvm.AddBasicBlock(fn, "else")
	mergeBlock := llvm.AddBasicBlock(fn, "ifcont")

	cg.Builder.CreateCondBr(condBool, thenBlock, elseBlock)

	// Emit the then arm
	cg.Builder.SetInsertPointAtEnd(thenBlock)
	thenValue, err := cg.genExpr(e.Then)
	if err != nil {
		return llvm.Value{}, err
	}
	cg.Builder.CreateBr(mergeBlock)
	// The arm can change the current block; the phi needs the final one
	thenExit := cg.Builder.GetInsertBlock()

	// Emit the else arm
	cg.Builder.SetInsertPointAtEnd(elseBlock)
	elseValue, err := cg.genExpr(e.Else)
	if err != nil {
		return llvm.Value{}, err
	}
	cg.Builder.CreateBr(mergeBlock)
	elseExit := cg.Builder.GetInsertBlock()

	// Merge the two arms with a phi
	cg.Builder.SetInsertPointAtEnd(mergeBlock)
	phi := cg.Builder.CreatePHI(cg.doubleType, "iftmp")
	phi.AddIncoming(
		[]llvm.Value{thenValue, elseValue},
		[]llvm.BasicBlock{thenExit, elseExit},
	)
	return phi, nil
}

// genFor lowers 'for i = start, end, step in body'.
//
// The induction variable gets an entry-block stack slot so that mutation
// inside the body (and the increment itself) stays within the alloca
// discipline; mem2reg turns it into a proper SSA loop afterwards. The slot
// shadows any outer binding of the same name for the duration of the loop
// and the outer binding is restored on exit. The loop expression always
// yields 0.0.
func (cg *Codegen) genFor(e *parser.ForExpr) (llvm.Value, error) {
	fn := cg.Builder.GetInsertBlock().Parent()

	// Slot for the induction variable, initialized with start
	slot := cg.createEntryBlockAlloca(fn, e.VarName)
	startValue, err := cg.genExpr(e.Start)
	if err != nil {
		return llvm.Value{}, err
	}
	cg.Builder.CreateStore(startValue, slot)

	loopBlock := llvm.AddBasicBlock(fn, "loop")
	cg.Builder.CreateBr(loopBlock)
	cg.Builder.SetInsertPointAtEnd(loopBlock)

	// Shadow any outer binding of the induction variable
	shadowed, hadShadowed := cg.named[e.VarName]
	cg.named[e.VarName] = slot

	// Emit the body; its value is discarded
	if _, err := cg.genExpr(e.Body); err != nil {
		return llvm.Value{}, err
	}

	// The step value defaults to 1.0 when omitted
	var stepValue llvm.Value
	if e.Step != nil {
		stepValue, err = cg.genExpr(e.Step)
		if err != nil {
			return llvm.Value{}, err
		}
	} else {
		stepValue = cg.constDouble(1)
	}

	// Evaluate the end condition
	endValue, err := cg.genExpr(e.End)
	if err != nil {
		return llvm.Value{}, err
	}

	// Reload, increment and store back the induction variable
	currValue := cg.Builder.CreateLoad(cg.doubleType, slot, e.VarName)
	nextValue := cg.Builder.CreateFAdd(currValue, stepValue, "nextvar")
	cg.Builder.CreateStore(nextValue, slot)

	// Loop again while the end condition is nonzero
	endBool := cg.Builder.CreateFCmp(llvm.FloatUNE, endValue, cg.constDouble(0), "loopcond")
	afterBlock := llvm.AddBasicBlock(fn, "afterloop")
	cg.Builder.CreateCondBr(endBool, loopBlock, afterBlock)
	cg.Builder.SetInsertPointAtEnd(afterBlock)

	// Unshadow the outer binding
	if hadShadowed {
		cg.named[e.VarName] = shadowed
	} else {
		delete(cg.named, e.VarName)
	}

	// The for expression always yields 0.0
	return cg.constDouble(0), nil
}

// genVar lowers 'var a = init, b, ... in body'.
//
// Each binding gets an entry-block slot holding its initializer (0.0 when
// omitted). Initializers are evaluated before their own name is installed,
// so 'var a = 1 in var a = a in a' sees the outer a. The body's value is
// the expression's value, and every shadowed binding is restored on exit.
func (cg *Codegen) genVar(e *parser.VarExpr) (llvm.Value, error) {
	fn := cg.Builder.GetInsertBlock().Parent()

	saved := make([]savedBinding, 0, len(e.Bindings))

	for _, binding := range e.Bindings {
		var initValue llvm.Value
		if binding.Init != nil {
			var err error
			initValue, err = cg.genExpr(binding.Init)
			if err != nil {
				return llvm.Value{}, err
			}
		} else {
			initValue = cg.constDouble(0)
		}

		slot := cg.createEntryBlockAlloca(fn, binding.Name)
		cg.Builder.CreateStore(initValue, slot)

		old, had := cg.named[binding.Name]
		saved = append(saved, savedBinding{name: binding.Name, slot: old, had: had})
		cg.named[binding.Name] = slot
	}

	bodyValue, err := cg.genExpr(e.Body)
	if err != nil {
		// Restore the scope even on failure so the driver can keep
		// using this context after erasing the partial function
		cg.restoreBindings(saved)
		return llvm.Value{}, err
	}

	cg.restoreBindings(saved)
	return bodyValue, nil
}

// restoreBindings undoes the scope mutations of genVar, newest first.
func (cg *Codegen) restoreBindings(saved []savedBinding) {
	for i := len(saved) - 1; i >= 0; i-- {
		if saved[i].had {
			cg.named[saved[i].name] = saved[i].slot
		} else {
			delete(cg.named, saved[i].name)
		}
	}
}
