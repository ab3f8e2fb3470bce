/*
File    : kscope/repl/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package repl implements the Read-Eval-Print Loop (REPL) for the kscope JIT
compiler. The REPL provides an interactive environment where users can:
- Define functions and operators (def), declare externs (extern)
- Enter bare expressions that are compiled, run, and printed immediately
- Navigate command history using arrow keys
- Receive colored feedback for different types of output

The REPL uses the readline library for enhanced line editing capabilities
and integrates the parser, the code generator and the JIT session to
execute user input. Every successfully compiled top-level form has its IR
printed; anonymous expressions additionally print their evaluated result.
*/
package repl

import (
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"

	"github.com/akashmaji946/kscope/codegen"
	"github.com/akashmaji946/kscope/jit"
	"github.com/akashmaji946/kscope/lexer"
	"github.com/akashmaji946/kscope/parser"
)

// Color definitions for REPL output
// These colors provide visual feedback to enhance user experience:
// - blueColor: Decorative lines and separators
// - yellowColor: Evaluation results and version info
// - redColor: Error messages and warnings
// - greenColor: Banner and success messages
// - cyanColor: Informational messages and IR headers
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl represents the Read-Eval-Print Loop instance.
// It encapsulates all the configuration needed to run an interactive session.
type Repl struct {
	Banner  string // ASCII art banner displayed at startup
	Version string // Version string of the compiler
	Author  string // Author contact information
	Line    string // Separator line for visual formatting
	License string // Software license information
	Prompt  string // Command prompt shown to the user (e.g., "ready> ")
	History string // Optional readline history file path

	// DumpAST dumps every successfully parsed form before lowering it
	DumpAST bool
}

// NewRepl creates and initializes a new REPL instance.
//
// Parameters:
//
//	banner  - ASCII art logo to display at startup
//	version - Version string of the compiler
//	author  - Author contact information
//	line    - Separator line for formatting
//	license - Software license information
//	prompt  - Command prompt string
//
// Returns:
//
//	A pointer to a newly created Repl instance
func NewRepl(banner string, version string, author string, line string, license string, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
//
// Parameters:
//
//	writer - The io.Writer to output the banner to (typically os.Stderr)
func (r *Repl) PrintBannerInfo(writer io.Writer) {

	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to kscope!")
	cyanColor.Fprintf(writer, "%s\n", "Type definitions, externs, or expressions and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Press Ctrl+D to quit")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins an interactive REPL session on the terminal.
// It displays the banner, sets up readline for line editing and history,
// and runs the main loop until EOF (Ctrl+D).
//
// Parameters:
//
//	writer - Output destination for IR, results and errors
func (r *Repl) Start(writer io.Writer) error {

	r.PrintBannerInfo(writer)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      r.Prompt,
		HistoryFile: r.History,
	})
	if err != nil {
		return fmt.Errorf("could not initialize readline: %w", err)
	}
	defer rl.Close()

	return r.Run(&lineReader{rl: rl}, writer)
}

// Run drives the compile-execute loop over an arbitrary byte stream.
// This is the non-interactive core: Start feeds it readline input, tests
// and piped invocations feed it readers directly.
//
// On each iteration:
//   - ';'    - statement separator, consumed and ignored
//   - def    - compile a definition, print its IR, retain its module
//   - extern - record and lower a prototype, print its IR
//   - else   - compile the expression as an anonymous function, run it
//     through the JIT, print "evaluated to %f", drop its module
//
// Parse failures print a diagnostic and resynchronize by advancing one
// token. Lowering failures print a diagnostic and continue; the offending
// function has already been erased from its module.
func (r *Repl) Run(reader io.Reader, writer io.Writer) error {

	table := parser.NewOpTable()
	cg := codegen.NewCodegen(table)
	engine, err := jit.NewJIT(cg.Context)
	if err != nil {
		return err
	}
	defer engine.Dispose()

	d := &driver{
		par:     parser.NewParser(lexer.NewLexer(reader), table),
		cg:      cg,
		jit:     engine,
		out:     writer,
		dumpAST: r.DumpAST,
	}

	for {
		switch {
		case d.par.AtEOF():
			return nil
		case d.par.CurrToken.Is(';'):
			// ignore top-level semicolons
			d.par.Advance()
		case d.par.CurrToken.Type == lexer.DEF_KEY:
			d.safely(d.handleDefinition)
		case d.par.CurrToken.Type == lexer.EXTERN_KEY:
			d.safely(d.handleExtern)
		default:
			d.safely(d.handleTopLevel)
		}
	}
}

// driver bundles the compiler pipeline state for one session.
type driver struct {
	par     *parser.Parser
	cg      *codegen.Codegen
	jit     *jit.JIT
	out     io.Writer
	dumpAST bool
}

// safely runs one form handler with panic recovery.
// The REPL continues after errors, so a panic in the toolchain surfaces as
// a diagnostic instead of taking the session down.
func (d *driver) safely(handler func()) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(d.out, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()
	handler()
}

// reportParseFailure prints the collected diagnostics and advances one
// token for simple panic-mode recovery.
func (d *driver) reportParseFailure() {
	for _, msg := range d.par.TakeErrors() {
		redColor.Fprintf(d.out, "[PARSE ERROR] %s\n", msg)
	}
	d.par.Advance()
}

// handleDefinition processes one 'def' form: parse, lower, print the IR,
// hand the module to the JIT, and open a fresh module.
func (d *driver) handleDefinition() {
	fn := d.par.ParseDefinition()
	if fn == nil {
		d.reportParseFailure()
		return
	}
	if d.dumpAST {
		spew.Fdump(d.out, fn)
	}

	if _, err := d.cg.GenFunction(fn); err != nil {
		redColor.Fprintf(d.out, "[CODEGEN ERROR] %v\n", err)
		return
	}

	cyanColor.Fprintf(d.out, "read function definition:\n")
	fmt.Fprint(d.out, d.cg.Module.String())

	// Retain the module; later forms link against it
	d.jit.AddModule(d.cg.Module)
	d.cg.InitModuleAndPassManager()
}

// handleExtern processes one 'extern' form: parse, record the prototype in
// the registry, lower the declaration, and print it. No module hand-off
// happens; the declaration rides along with the current module.
func (d *driver) handleExtern() {
	proto := d.par.ParseExtern()
	if proto == nil {
		d.reportParseFailure()
		return
	}
	if d.dumpAST {
		spew.Fdump(d.out, proto)
	}

	d.cg.GenExtern(proto)
	cyanColor.Fprintf(d.out, "read extern:\n")
	fmt.Fprint(d.out, d.cg.Module.String())
}

// handleTopLevel processes a bare expression: wrap it anonymously, lower
// it, run it through the JIT, print the result, and remove its module so
// the anonymous name is free again.
func (d *driver) handleTopLevel() {
	fn := d.par.ParseTopLevelExpr()
	if fn == nil {
		d.reportParseFailure()
		return
	}
	if d.dumpAST {
		spew.Fdump(d.out, fn)
	}

	function, err := d.cg.GenFunction(fn)
	if err != nil {
		redColor.Fprintf(d.out, "[CODEGEN ERROR] %v\n", err)
		return
	}

	cyanColor.Fprintf(d.out, "read top-level expression:\n")
	fmt.Fprint(d.out, d.cg.Module.String())

	module := d.cg.Module
	d.jit.AddModule(module)
	d.cg.InitModuleAndPassManager()

	result := d.jit.Run(function)
	yellowColor.Fprintf(d.out, "evaluated to %f\n", result)

	// The anonymous module is gone after its single invocation
	d.jit.RemoveModule(module)
}

// lineReader adapts a readline instance to io.Reader so the lexer can
// pull bytes from the interactive terminal. Each fetched line gets its
// newline restored, since readline strips it.
type lineReader struct {
	rl  *readline.Instance
	buf []byte
}

// Read implements io.Reader. Any readline error (Ctrl+D, closed terminal)
// ends the stream.
func (lr *lineReader) Read(p []byte) (int, error) {
	for len(lr.buf) == 0 {
		line, err := lr.rl.Readline()
		if err != nil {
			return 0, io.EOF
		}
		lr.buf = append([]byte(line), '\n')
	}
	n := copy(p, lr.buf)
	lr.buf = lr.buf[n:]
	return n, nil
}
