/*
File    : kscope/cmd_emit.go
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

	"github.com/akashmaji946/kscope/emit"
)

// emitCmd implements the object-file subcommand
type emitCmd struct {
	output string
}

func (*emitCmd) Name() string { return "emit" }
func (*emitCmd) Synopsis() string {
	return "Compile a source file to a native object file"
}
func (*emitCmd) Usage() string {
	return `emit [-o output.o] [file.ks]:
  Compile the given source file (or stdin) into one module and write
  native object code for the default target. Top-level expressions are
  compiled but not executed.
`
}

func (cmd *emitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.output, "o", "output.o", "Path of the object file to write")
}

func (cmd *emitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {

	var err error
	if f.NArg() > 0 {
		err = emit.CompileFile(f.Arg(0), os.Stderr, cmd.output)
	} else {
		err = emit.Compile(os.Stdin, os.Stderr, cmd.output)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "wrote %s\n", cmd.output)
	return subcommands.ExitSuccess
}
