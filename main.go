/*
File    : kscope/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

kscope is an interactive compiler and just-in-time evaluator for the
Kaleidoscope language: a tiny expression-oriented language where every
value is a double. Each top-level form typed at the prompt is parsed,
lowered to LLVM IR, optimized, machine-compiled, and, for bare
expressions, executed immediately with the result printed.

Subcommands:

	repl - start the interactive JIT session (the default)
	emit - compile a source file to a native object file
*/
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

// Version and attribution shown in the REPL banner
const (
	VERSION = "v1.0.0"
	AUTHOR  = "Akash Maji"
	LICENSE = "MIT"
	LINE    = "================================================================"
)

// BANNER is the ASCII art logo displayed when the REPL starts
const BANNER = `
	██╗  ██╗███████╗ ██████╗ ██████╗ ██████╗ ███████╗
	██║ ██╔╝██╔════╝██╔════╝██╔═══██╗██╔══██╗██╔════╝
	█████╔╝ ███████╗██║     ██║   ██║██████╔╝█████╗
	██╔═██╗ ╚════██║██║     ██║   ██║██╔═══╝ ██╔══╝
	██║  ██╗███████║╚██████╗╚██████╔╝██║     ███████╗
	╚═╝  ╚═╝╚══════╝ ╚═════╝ ╚═════╝ ╚═╝     ╚══════╝
`

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&emitCmd{}, "")

	flag.Parse()

	ctx := context.Background()

	// with no subcommand, drop straight into the REPL
	if flag.NArg() == 0 {
		os.Exit(int((&replCmd{}).Execute(ctx, flag.CommandLine)))
	}
	os.Exit(int(subcommands.Execute(ctx)))
}
