/*
File    : kscope/emit/emit.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

/*
Package emit implements the ahead-of-time variant of the compiler: instead
of JIT-executing each top-level form, every definition is compiled into one
persistent module which is then written out as a native object file.

Because there is no JIT to take modules away, all forms share a single
module for the whole run. Top-level expressions are compiled but not
executed, and only the first can exist, since each wraps itself in the one
anonymous symbol name. Linking the resulting object file against a host
program that calls the defined symbols is up to the user.
*/
package emit

import (
	"fmt"
	"io"
	"os"

	"tinygo.org/x/go-llvm"

	"github.com/akashmaji946/kscope/codegen"
	"github.com/akashmaji946/kscope/lexer"
	"github.com/akashmaji946/kscope/parser"
)

// Compile reads Kaleidoscope source from reader, lowers every form into a
// single module, and writes native object code for the default target to
// outputPath. Diagnostics go to writer; a failing form is skipped and
// compilation continues, exactly like the REPL.
//
// Parse and lowering errors never abort the run. Target lookup, object
// emission and writing the output file can fail; those failures return
// an error, which the caller turns into a nonzero exit.
//
// Parameters:
//
//	reader     - The source stream
//	writer     - Destination for diagnostics
//	outputPath - Path of the object file to write
func Compile(reader io.Reader, writer io.Writer, outputPath string) error {

	table := parser.NewOpTable()
	cg := codegen.NewCodegen(table)
	defer cg.Dispose()

	par := parser.NewParser(lexer.NewLexer(reader), table)

	for !par.AtEOF() {
		switch {
		case par.CurrToken.Is(';'):
			par.Advance()

		case par.CurrToken.Type == lexer.DEF_KEY:
			fn := par.ParseDefinition()
			if fn == nil {
				reportAndResync(par, writer)
				continue
			}
			if _, err := cg.GenFunction(fn); err != nil {
				fmt.Fprintf(writer, "[CODEGEN ERROR] %v\n", err)
			}

		case par.CurrToken.Type == lexer.EXTERN_KEY:
			proto := par.ParseExtern()
			if proto == nil {
				reportAndResync(par, writer)
				continue
			}
			cg.GenExtern(proto)

		default:
			fn := par.ParseTopLevelExpr()
			if fn == nil {
				reportAndResync(par, writer)
				continue
			}
			// compiled into the module but not executed
			if _, err := cg.GenFunction(fn); err != nil {
				fmt.Fprintf(writer, "[CODEGEN ERROR] %v\n", err)
			}
		}
	}

	return writeObjectFile(cg.Module, outputPath)
}

// CompileFile is Compile over a source file on disk.
func CompileFile(path string, writer io.Writer, outputPath string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open source file: %w", err)
	}
	defer src.Close()
	return Compile(src, writer, outputPath)
}

// reportAndResync prints parse diagnostics and advances one token.
func reportAndResync(par *parser.Parser, writer io.Writer) {
	for _, msg := range par.TakeErrors() {
		fmt.Fprintf(writer, "[PARSE ERROR] %s\n", msg)
	}
	par.Advance()
}

// writeObjectFile configures the default native target on the module and
// emits it as an object file.
func writeObjectFile(module llvm.Module, outputPath string) error {

	llvm.InitializeAllTargetInfos()
	llvm.InitializeAllTargets()
	llvm.InitializeAllTargetMCs()
	llvm.InitializeAllAsmParsers()
	llvm.InitializeAllAsmPrinters()

	triple := llvm.DefaultTargetTriple()
	target, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		return fmt.Errorf("could not look up target %q: %w", triple, err)
	}

	machine := target.CreateTargetMachine(
		triple,
		"generic", // cpu
		"",        // features
		llvm.CodeGenLevelDefault,
		llvm.RelocDefault,
		llvm.CodeModelDefault,
	)
	defer machine.Dispose()

	module.SetTarget(triple)
	module.SetDataLayout(machine.CreateTargetData().String())

	buffer, err := machine.EmitToMemoryBuffer(module, llvm.ObjectFile)
	if err != nil {
		return fmt.Errorf("could not emit object code: %w", err)
	}
	defer buffer.Dispose()

	if err := os.WriteFile(outputPath, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", outputPath, err)
	}
	return nil
}
