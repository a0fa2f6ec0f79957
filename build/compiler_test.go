package build

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"beblang/mods"
	"beblang/report"

	"github.com/nalgeon/be"
)

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	be.Err(t, os.WriteFile(path, []byte(src), 0o644), nil)
	return path
}

func TestCompileWritesModules(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	dir := t.TempDir()

	a := writeSource(t, dir, "hello.beb", `
MODULE Hello;
BEGIN
	PrintLine("hello")
END Hello.`)
	b := writeSource(t, dir, "count.beb", `
MODULE Count;
VAR i: INTEGER;
BEGIN
	WHILE i < 3 DO PrintInteger(i); i := i + 1 END
END Count.`)

	outDir := filepath.Join(dir, "out")
	c := NewCompiler(dir, []string{a, b}, outDir, mods.DefaultProfile())

	outputs, ok := c.Compile()
	be.True(t, ok)
	be.Equal(t, outputs, []string{
		filepath.Join(outDir, "hello.ll"),
		filepath.Join(outDir, "count.ll"),
	})

	text, err := os.ReadFile(outputs[0])
	be.Err(t, err, nil)
	be.True(t, strings.Contains(string(text), `c"hello\00"`))
	be.True(t, strings.Contains(string(text), "define i32 @main()"))
}

func TestCheckReportsErrors(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	dir := t.TempDir()

	good := writeSource(t, dir, "good.beb", "MODULE Good; END Good.")
	bad := writeSource(t, dir, "bad.beb", `
MODULE Bad;
VAR x: INTEGER;
BEGIN
	x := "text"
END Bad.`)

	c := NewCompiler(dir, []string{good, bad}, dir, mods.DefaultProfile())
	be.True(t, !c.Check())
	be.Equal(t, report.ErrorCount(), 1)

	report.InitReporter(report.LogLevelSilent)
	_, ok := c.Compile()
	be.True(t, !ok)

	_, err := os.Stat(filepath.Join(dir, "good.ll"))
	be.True(t, os.IsNotExist(err))
}

func TestMissingSource(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	dir := t.TempDir()

	c := NewCompiler(dir, []string{filepath.Join(dir, "nope.beb")}, dir, mods.DefaultProfile())
	be.True(t, !c.Check())
}

func TestProjectCompiler(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	dir := t.TempDir()
	writeSource(t, dir, "main.beb", "MODULE Main; BEGIN PrintInteger(1) END Main.")
	be.Err(t, mods.InitProject("Demo", dir), nil)

	proj, prof, err := mods.LoadProject(dir, "")
	be.Err(t, err, nil)

	outputs, ok := NewProjectCompiler(proj, prof).Compile()
	be.True(t, ok)
	be.Equal(t, outputs, []string{filepath.Join(proj.Root, "out", "main.ll")})
}

func TestCompileSourceStopsOnErrors(t *testing.T) {
	u := CompileSource(strings.NewReader("MODULE M; BEGIN x := 1 END M."), true)
	be.Equal(t, len(u.Errors), 1)
	be.Equal(t, u.Errors[0].Kind, report.UndefinedSymbol)
	be.True(t, u.IR == nil)

	u = CompileSource(strings.NewReader("MODULE M; BEGIN"), true)
	be.Equal(t, len(u.Errors), 1)
	be.Equal(t, u.Errors[0].Kind, report.UnexpectedEOF)
	be.True(t, u.Module == nil)

	u = CompileSource(strings.NewReader("MODULE M; END M."), false)
	be.Equal(t, len(u.Errors), 0)
	be.True(t, u.IR == nil)
}

func TestSameBasenameInSubdirectories(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	dir := t.TempDir()
	be.Err(t, os.MkdirAll(filepath.Join(dir, "a"), 0o755), nil)
	be.Err(t, os.MkdirAll(filepath.Join(dir, "b"), 0o755), nil)

	a := writeSource(t, dir, filepath.Join("a", "main.beb"), "MODULE A; BEGIN PrintInteger(1) END A.")
	b := writeSource(t, dir, filepath.Join("b", "main.beb"), "MODULE B; BEGIN PrintInteger(2) END B.")

	outDir := filepath.Join(dir, "out")
	outputs, ok := NewCompiler(dir, []string{a, b}, outDir, mods.DefaultProfile()).Compile()
	be.True(t, ok)
	be.Equal(t, outputs, []string{
		filepath.Join(outDir, "a", "main.ll"),
		filepath.Join(outDir, "b", "main.ll"),
	})

	text, err := os.ReadFile(outputs[0])
	be.Err(t, err, nil)
	be.True(t, strings.Contains(string(text), "i32 1)"))

	text, err = os.ReadFile(outputs[1])
	be.Err(t, err, nil)
	be.True(t, strings.Contains(string(text), "i32 2)"))
}

func TestConflictingOutputs(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	dir := t.TempDir()
	other := t.TempDir()

	a := writeSource(t, dir, "main.beb", "MODULE A; END A.")
	b := writeSource(t, other, "main.beb", "MODULE B; END B.")

	outDir := filepath.Join(dir, "out")
	_, ok := NewCompiler(dir, []string{a, b}, outDir, mods.DefaultProfile()).Compile()
	be.True(t, !ok)
	be.Equal(t, report.ErrorCount(), 1)

	_, err := os.Stat(filepath.Join(outDir, "main.ll"))
	be.True(t, os.IsNotExist(err))
}
