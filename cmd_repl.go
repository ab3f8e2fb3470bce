/*
File    : kscope/cmd_repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
	"github.com/xyproto/env/v2"

	"github.com/akashmaji946/kscope/repl"
)

// replCmd implements the REPL subcommand
type replCmd struct {
	dumpAST bool
}

func (*replCmd) Name() string { return "repl" }
func (*replCmd) Synopsis() string {
	return "Start the interactive Kaleidoscope JIT session"
}
func (*replCmd) Usage() string {
	return `repl:
  Start the interactive JIT session. Definitions and externs are retained
  for the whole session; bare expressions are compiled, run, and printed.
`
}

func (cmd *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.dumpAST, "dumpast", false, "Dump the parsed AST of every form before lowering")
	f.BoolVar(&cmd.dumpAST, "da", false, "Shorthand for dumpast.")
}

func (cmd *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {

	r := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENSE, env.Str("KSCOPE_PROMPT", "ready> "))
	r.History = env.Str("KSCOPE_HISTORY", "")
	r.DumpAST = cmd.dumpAST

	// diagnostics, IR and results all go to stderr
	var err error
	if isatty.IsTerminal(os.Stdin.Fd()) {
		err = r.Start(os.Stderr)
	} else {
		// piped input: no banner, no line editing
		err = r.Run(os.Stdin, os.Stderr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
