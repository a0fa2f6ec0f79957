package generate

import (
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/nalgeon/be"

	"beblang/depm"
	"beblang/report"
	"beblang/syntax"
	"beblang/walk"
)

// compile parses, analyzes and generates the given source.
func compile(t *testing.T, src string) *ir.Module {
	t.Helper()

	mod, err := syntax.ParseString(src)
	be.Err(t, err, nil)

	annots := depm.NewAnnotations(mod.NodeCount)
	errs := walk.WalkModule(mod, depm.NewSymbolTable(), annots)
	be.Equal(t, len(errs), 0)

	return Generate(mod, annots)
}

// findLine returns the index of the first line of the IR containing all the
// given parts or -1 if there is no such line.
func findLine(lines []string, parts ...string) int {
	for i, line := range lines {
		found := true
		for _, part := range parts {
			if !strings.Contains(line, part) {
				found = false
				break
			}
		}

		if found {
			return i
		}
	}

	return -1
}

// checkTerminators checks that every block of every defined function ends in
// a terminator.
func checkTerminators(t *testing.T, m *ir.Module) {
	t.Helper()

	for _, f := range m.Funcs {
		for _, b := range f.Blocks {
			if b.Term == nil {
				t.Errorf("block %s of %s has no terminator", b.Name(), f.Name())
			}
		}
	}
}

func TestGlobalAssignment(t *testing.T) {
	m := compile(t, `
MODULE M;
VAR x: INTEGER;
BEGIN
	x := 1 + 2
END M.`)

	lines := strings.Split(m.String(), "\n")

	be.True(t, findLine(lines, "@M.x = global i32 0") >= 0)

	add := findLine(lines, "add i32 1, 2")
	be.True(t, add >= 0)
	be.True(t, findLine(lines[add:], "store i32", "@M.x") >= 0)

	be.True(t, findLine(lines, "define i32 @main()") >= 0)
	be.True(t, findLine(lines, "ret i32 0") >= 0)
	checkTerminators(t, m)
}

func TestArrayElementStore(t *testing.T) {
	m := compile(t, `
MODULE M;
VAR a: ARRAY 3 OF INTEGER;
BEGIN
	a[1] := 10
END M.`)

	lines := strings.Split(m.String(), "\n")

	be.True(t, findLine(lines, "@M.a = global [3 x i32] zeroinitializer") >= 0)

	gep := findLine(lines, "getelementptr [3 x i32]", "@M.a", "i32 0, i32 1")
	be.True(t, gep >= 0)
	be.True(t, strings.Contains(lines[gep+1], "store i32 10"))
}

func TestZeroInitializers(t *testing.T) {
	m := compile(t, `
MODULE M;
VAR i: INTEGER; r: REAL; b: BOOLEAN; s: STRING; n: ARRAY 2 OF ARRAY 3 OF REAL;
END M.`)

	lines := strings.Split(m.String(), "\n")

	be.True(t, findLine(lines, "@M.i = global i32 0") >= 0)
	be.True(t, findLine(lines, "@M.r = global double") >= 0)
	be.True(t, findLine(lines, "@M.b = global i1 false") >= 0)
	be.True(t, findLine(lines, "@M.s = global", "null") >= 0)
	be.True(t, findLine(lines, "@M.n = global [2 x [3 x double]] zeroinitializer") >= 0)
}

func TestSubprograms(t *testing.T) {
	m := compile(t, `
MODULE M;
VAR r: INTEGER;
PROCEDURE Later(x: INTEGER);
PROCEDURE Add(a, b: INTEGER): INTEGER;
VAR tmp: INTEGER;
BEGIN
	tmp := a + b;
	RETURN tmp
END Add;
PROCEDURE Nothing;
BEGIN
END Nothing;
BEGIN
	r := Add(1, 2);
	Nothing
END M.`)

	text := m.String()

	be.True(t, strings.Contains(text, "declare void @Later(i32"))
	be.True(t, strings.Contains(text, "define i32 @Add(i32 %a, i32 %b)"))
	be.True(t, strings.Contains(text, "define void @Nothing()"))
	be.True(t, strings.Contains(text, "call i32 @Add(i32 1, i32 2)"))
	be.True(t, strings.Contains(text, "call void @Nothing()"))
	be.True(t, strings.Contains(text, "ret void"))
	checkTerminators(t, m)
}

func TestMutualRecursion(t *testing.T) {
	m := compile(t, `
MODULE M;
PROCEDURE IsOdd(n: INTEGER): BOOLEAN;
PROCEDURE IsEven(n: INTEGER): BOOLEAN;
BEGIN
	IF n = 0 THEN
		RETURN TRUE
	END;
	RETURN IsOdd(n - 1)
END IsEven;
PROCEDURE IsOdd(n: INTEGER): BOOLEAN;
BEGIN
	IF n = 0 THEN
		RETURN FALSE
	END;
	RETURN IsEven(n - 1)
END IsOdd;
BEGIN
	IF IsEven(10) THEN
		PrintString("even")
	END
END M.`)

	text := m.String()

	// the declaration and definition share one function
	be.Equal(t, strings.Count(text, "define i1 @IsOdd(i32 %n)"), 1)
	be.True(t, !strings.Contains(text, "declare i1 @IsOdd"))
	be.True(t, strings.Contains(text, "call i1 @IsOdd("))
	checkTerminators(t, m)
}

func TestReservedNamesArePrefixed(t *testing.T) {
	m := compile(t, `
MODULE M;
PROCEDURE main;
BEGIN
	PrintInteger(1)
END main;
BEGIN
	main
END M.`)

	text := m.String()

	be.True(t, strings.Contains(text, "define void @M.main()"))
	be.True(t, strings.Contains(text, "define i32 @main()"))
	be.True(t, strings.Contains(text, "call void @M.main()"))
}

func TestParamsAreCopied(t *testing.T) {
	m := compile(t, `
MODULE M;
PROCEDURE Inc(x: INTEGER): INTEGER;
BEGIN
	x := x + 1;
	RETURN x
END Inc;
END M.`)

	var inc *ir.Func
	for _, f := range m.Funcs {
		if f.Name() == "Inc" {
			inc = f
		}
	}

	be.True(t, inc != nil)

	entry := inc.Blocks[0]
	_, ok := entry.Insts[0].(*ir.InstAlloca)
	be.True(t, ok)

	store, ok := entry.Insts[1].(*ir.InstStore)
	be.True(t, ok)
	be.True(t, store.Src == inc.Params[0])
}

func TestMissingAnnotationIsInternalError(t *testing.T) {
	mod, err := syntax.ParseString(`
MODULE M;
VAR x: INTEGER;
BEGIN
	x := 1
END M.`)
	be.Err(t, err, nil)

	defer func() {
		_, ok := recover().(*report.InternalError)
		be.True(t, ok)
	}()

	Generate(mod, depm.NewAnnotations(mod.NodeCount))
	t.Fatal("expected an internal error")
}
