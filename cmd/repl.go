package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"beblang/build"
	"beblang/common"
	"beblang/report"
	"beblang/syntax"

	"github.com/peterh/liner"
)

const (
	promptMain = "beb> "
	promptCont = "...> "
	replBanner = "Beblang REPL: enter a module to compile it. Ctrl+D exits. Type :help for commands."
	replHelp   = `
REPL commands:
  :help            Show this help
  :quit            Exit the REPL
  :load <file>     Compile a source file
  :ir on|off       Print the LLVM IR of modules that compile
`
)

// replSession is the state of an interactive session.
type replSession struct {
	// Whether to print the IR of modules that compile successfully.
	showIR bool

	// The writer to which the session prints its results.
	out io.Writer
}

// runREPL runs the interactive mode of the compiler.  It returns the exit code.
func runREPL() int {
	fmt.Println(replBanner)
	report.InitReporter(report.LogLevelError)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, common.HistoryFileName)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	sess := &replSession{showIR: true, out: os.Stdout}
	for {
		src, ok := readByParseProbe(ln)
		if !ok {
			fmt.Println()
			break
		}

		if strings.TrimSpace(src) == "" {
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			if sess.command(src) {
				break
			}

			continue
		}

		sess.compile("<repl>", "", src)
	}

	if f, err := os.Create(histPath); err == nil {
		ln.WriteHistory(f)
		f.Close()
	}

	return 0
}

// readByParseProbe reads lines until they form a complete module: input is
// accumulated for as long as the parser reports that it ended early.  Commands
// are always a single line.  It returns false when the input is closed.
func readByParseProbe(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		} else if err != nil {
			// Ctrl+C discards the current input.
			return "", true
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !needsMoreInput(b.String()) {
			return b.String(), true
		}
	}
}

// needsMoreInput returns whether the given source is an incomplete module.
func needsMoreInput(src string) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}

	_, err := syntax.ParseString(src)
	return err != nil && syntax.IsIncomplete(err)
}

// command runs a REPL command.  It returns true if the session should end.
func (s *replSession) command(line string) bool {
	fields := strings.Fields(line)

	switch fields[0] {
	case ":help":
		fmt.Fprint(s.out, replHelp)
	case ":quit", ":exit":
		return true
	case ":load":
		if len(fields) != 2 {
			fmt.Fprintln(s.out, "usage: :load <file>")
			return false
		}

		absPath, err := filepath.Abs(fields[1])
		if err != nil {
			report.PrintErrorMessage("Path Error", err)
			return false
		}

		src, err := os.ReadFile(absPath)
		if err != nil {
			report.PrintErrorMessage("File Error", err)
			return false
		}

		s.compile(fields[1], absPath, string(src))
	case ":ir":
		if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
			fmt.Fprintln(s.out, "usage: :ir on|off")
			return false
		}

		s.showIR = fields[1] == "on"
	default:
		fmt.Fprintln(s.out, "unknown command. Type :help for help.")
	}

	return false
}

// compile compiles a module entered into or loaded by the session and prints
// its diagnostics or its IR.  It returns whether compilation succeeded.
func (s *replSession) compile(reprPath, absPath, src string) (ok bool) {
	defer report.CatchErrors(absPath, reprPath)

	u := build.CompileSource(strings.NewReader(src), true)
	if len(u.Errors) > 0 {
		report.ReportErrors(absPath, reprPath, u.Errors)
		return false
	}

	if s.showIR {
		fmt.Fprint(s.out, u.IR.String())
	} else {
		fmt.Fprintf(s.out, "module `%s` compiled\n", u.Module.Name.Name)
	}

	return true
}
