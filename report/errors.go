package report

import (
	"fmt"
)

// ErrorKind classifies a compile error.
type ErrorKind int

// Enumeration of the different kinds of compile errors.
const (
	SyntaxError ErrorKind = iota
	UnexpectedEOF

	DuplicateSymbol
	UndefinedSymbol
	WrongSymbolKind
	TypeMismatch
	InvalidConditionType
	ArityMismatch
	NotAnArray
	NonIntegerIndex
	ExitOutsideLoop
	InvalidReturnType
	SubprogramAlreadyDefined
)

var errorKindNames = [...]string{
	SyntaxError:              "SyntaxError",
	UnexpectedEOF:            "UnexpectedEOF",
	DuplicateSymbol:          "DuplicateSymbol",
	UndefinedSymbol:          "UndefinedSymbol",
	WrongSymbolKind:          "WrongSymbolKind",
	TypeMismatch:             "TypeMismatch",
	InvalidConditionType:     "InvalidConditionType",
	ArityMismatch:            "ArityMismatch",
	NotAnArray:               "NotAnArray",
	NonIntegerIndex:          "NonIntegerIndex",
	ExitOutsideLoop:          "ExitOutsideLoop",
	InvalidReturnType:        "InvalidReturnType",
	SubprogramAlreadyDefined: "SubprogramAlreadyDefined",
}

func (ek ErrorKind) String() string {
	if 0 <= int(ek) && int(ek) < len(errorKindNames) {
		return errorKindNames[ek]
	}

	return fmt.Sprintf("ErrorKind(%d)", int(ek))
}

// -----------------------------------------------------------------------------

// LocalCompileError is a compilation error that occurs in a context in which
// the file is known by the error handler and thus doesn't need to be passed
// along with the error.
type LocalCompileError struct {
	// The kind of error.
	Kind ErrorKind

	// The error message.
	Message string

	// The span over which the error occurs.  This may be `nil` if the error
	// has no meaningful source position.
	Span *TextSpan

	// Related is a secondary span relevant to the error: eg. the
	// redefinition site of a duplicate symbol.  It may be `nil`.
	Related *TextSpan
}

func (lce *LocalCompileError) Error() string {
	if lce.Span == nil {
		return lce.Message
	}

	return fmt.Sprintf("%s at line %d column %d", lce.Message, lce.Span.StartLine+1, lce.Span.StartCol+1)
}

// Raise creates a new local compile error.
func Raise(kind ErrorKind, span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// -----------------------------------------------------------------------------

// InternalError is the panic value used for internal compiler errors: broken
// invariants between compiler phases that can never be caused by user input.
type InternalError struct {
	Message string
}

func (ie *InternalError) Error() string {
	return "internal compiler error: " + ie.Message
}

// ICE aborts the current phase with an internal compiler error.  The panic is
// caught and displayed by CatchErrors.
func ICE(msg string, args ...interface{}) {
	panic(&InternalError{Message: fmt.Sprintf(msg, args...)})
}
