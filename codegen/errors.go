/*
File    : kscope/codegen/errors.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package codegen

import "errors"

// Sentinel errors for every way lowering can fail.
// Each surfaces as a one-line diagnostic in the REPL; none of them
// terminates the process. Callers wrap them with the offending name via
// fmt.Errorf("%w: ...") so errors.Is still matches.
var (
	// ErrUnknownName: a variable reference to a name with no slot in scope
	ErrUnknownName = errors.New("unknown variable name")

	// ErrUnknownCallee: a call to a function that is neither in the
	// current module nor in the prototype registry
	ErrUnknownCallee = errors.New("unknown function referenced")

	// ErrArityMismatch: a call with the wrong number of arguments
	ErrArityMismatch = errors.New("incorrect number of arguments passed")

	// ErrBadAssignTarget: left side of '=' is not a variable
	ErrBadAssignTarget = errors.New("destination of '=' must be a variable")

	// ErrUnknownUnary: a unary operator with no defining function
	ErrUnknownUnary = errors.New("unknown unary operator")

	// ErrUnknownBinary: a non-builtin binary operator with no defining function
	ErrUnknownBinary = errors.New("invalid binary operator")

	// ErrRedefinition: a 'def' for a function that already has a body
	ErrRedefinition = errors.New("function cannot be redefined")

	// ErrVerifyFailed: the IR verifier rejected the emitted function
	ErrVerifyFailed = errors.New("function verification failed")
)
