package report

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

func TestCompileErrorText(t *testing.T) {
	err := Raise(TypeMismatch, &TextSpan{StartLine: 4, StartCol: 1, EndLine: 4, EndCol: 7}, "cannot assign %s to %s", "REAL", "INTEGER")
	be.Equal(t, err.Kind, TypeMismatch)
	be.Equal(t, err.Error(), "cannot assign REAL to INTEGER at line 5 column 2")

	noSpan := Raise(SyntaxError, nil, "bad input")
	be.Equal(t, noSpan.Error(), "bad input")
}

func TestErrorKindNames(t *testing.T) {
	be.Equal(t, ExitOutsideLoop.String(), "ExitOutsideLoop")
	be.Equal(t, SubprogramAlreadyDefined.String(), "SubprogramAlreadyDefined")
	be.Equal(t, ErrorKind(99).String(), "ErrorKind(99)")
}

func TestSpanOver(t *testing.T) {
	span := NewSpanOver(&TextSpan{StartLine: 1, StartCol: 2, EndLine: 1, EndCol: 5}, &TextSpan{StartLine: 3, StartCol: 0, EndLine: 3, EndCol: 4})
	be.Equal(t, *span, TextSpan{StartLine: 1, StartCol: 2, EndLine: 3, EndCol: 4})
}

func TestLogLevelFromName(t *testing.T) {
	be.Equal(t, LogLevelFromName("silent"), LogLevelSilent)
	be.Equal(t, LogLevelFromName("warning"), LogLevelWarn)
	be.Equal(t, LogLevelFromName("bogus"), LogLevelVerbose)
}

func TestCatchErrorsCounts(t *testing.T) {
	InitReporter(LogLevelSilent)

	func() {
		defer CatchErrors("", "test")
		panic(Raise(UndefinedSymbol, nil, "undefined symbol: `x`"))
	}()

	func() {
		defer CatchErrors("", "test")
		panic(errors.New("disk on fire"))
	}()

	be.Equal(t, ErrorCount(), 2)
	be.True(t, AnyErrors())

	ReportErrors("", "test", []*LocalCompileError{Raise(TypeMismatch, nil, "a"), Raise(TypeMismatch, nil, "b")})
	be.Equal(t, ErrorCount(), 4)

	InitReporter(LogLevelSilent)
	be.True(t, !AnyErrors())
}

func TestInternalError(t *testing.T) {
	defer func() {
		ie, ok := recover().(*InternalError)
		be.True(t, ok)
		be.Equal(t, ie.Error(), "internal compiler error: slot 3 missing")
	}()

	ICE("slot %d missing", 3)
}
