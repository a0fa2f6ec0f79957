package walk

import (
	"testing"

	"github.com/nalgeon/be"

	"beblang/report"
)

func TestExitOutsideLoop(t *testing.T) {
	errs := expectErrors(t, `
MODULE M;
BEGIN
	EXIT
END M.`, report.ExitOutsideLoop)

	be.Equal(t, errs[0].Span.StartLine, 3)
}

func TestExitPlacement(t *testing.T) {
	// EXIT is valid anywhere inside a loop body, including nested IFs
	expectErrors(t, `
MODULE M;
VAR i: INTEGER;
BEGIN
	WHILE TRUE DO
		IF i > 10 THEN
			EXIT
		END;
		WHILE i < 5 DO
			EXIT
		END;
		EXIT
	END
END M.`)

	// loops do not extend into subprograms
	expectErrors(t, `
MODULE M;
PROCEDURE P;
BEGIN
	EXIT
END P;
BEGIN
	WHILE TRUE DO
		P
	END
END M.`, report.ExitOutsideLoop)

	// nor past the end of the loop
	expectErrors(t, `
MODULE M;
BEGIN
	WHILE FALSE DO
	END;
	IF TRUE THEN
		EXIT
	END
END M.`, report.ExitOutsideLoop)
}

func TestReturn(t *testing.T) {
	expectErrors(t, `
MODULE M;
PROCEDURE F(x: INTEGER): INTEGER;
BEGIN
	IF x > 0 THEN
		RETURN x
	END;
	RETURN 0
END F;
PROCEDURE P;
BEGIN
	RETURN
END P;
BEGIN
	P;
	RETURN
END M.`)
}

func TestReturnMismatch(t *testing.T) {
	errs := expectErrors(t, `
MODULE M;
PROCEDURE F(): INTEGER;
BEGIN
	RETURN 1.5
END F;
PROCEDURE G(): INTEGER;
BEGIN
	RETURN
END G;
PROCEDURE P;
BEGIN
	RETURN 1
END P;
BEGIN
	RETURN 0
END M.`, report.TypeMismatch, report.TypeMismatch, report.TypeMismatch, report.TypeMismatch)

	be.Equal(t, errs[0].Message, "cannot return REAL from `F`, expected INTEGER")
	be.Equal(t, errs[1].Message, "cannot return VOID from `G`, expected INTEGER")
	be.Equal(t, errs[3].Message, "cannot return INTEGER from `M`, expected VOID")
}

func TestErrorsAreCollected(t *testing.T) {
	expectErrors(t, `
MODULE M;
VAR x: INTEGER;
BEGIN
	EXIT;
	x := TRUE;
	IF x THEN
		y := 1
	END;
	EXIT
END M.`,
		report.ExitOutsideLoop,
		report.TypeMismatch,
		report.InvalidConditionType,
		report.UndefinedSymbol,
		report.ExitOutsideLoop,
	)
}
