/*
File    : kscope/jit/builtins.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package jit

/*
#include <stdio.h>

// putchard - putchar that takes a double and returns 0.
static double kscope_putchard(double X) {
	fputc((char)X, stderr);
	return 0;
}

// printd - printf that takes a double, prints it as "%f\n", returns 0.
static double kscope_printd(double X) {
	fprintf(stderr, "%f\n", X);
	return 0;
}

// Function pointers exposed to Go; cgo cannot take the address of a C
// function directly.
static void *kscope_putchard_addr = (void *)kscope_putchard;
static void *kscope_printd_addr = (void *)kscope_printd;

// Trampoline for calling a jitted double() function from Go.
typedef double (*kscope_fn0)(void);
static double kscope_invoke0(void *fp) {
	return ((kscope_fn0)fp)();
}
*/
import "C"

import (
	"unsafe"

	"tinygo.org/x/go-llvm"
)

// registerBuiltins publishes the runtime helpers into the JIT's symbol
// resolution, under the names user code externs them by.
func registerBuiltins() {
	llvm.AddSymbol("putchard", unsafe.Pointer(C.kscope_putchard_addr))
	llvm.AddSymbol("printd", unsafe.Pointer(C.kscope_printd_addr))
}

// invokeDouble calls a jitted function of type double() at the given
// address and returns its result.
func invokeDouble(ptr unsafe.Pointer) float64 {
	return float64(C.kscope_invoke0(ptr))
}
