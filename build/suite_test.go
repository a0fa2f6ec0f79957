package build

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"beblang/mdtest"
	"beblang/report"

	"github.com/nalgeon/be"
)

func TestMarkdownSuites(t *testing.T) {
	suites, err := filepath.Glob("testdata/*_test.md")
	be.Err(t, err, nil)
	be.True(t, len(suites) > 0)

	for _, suite := range suites {
		t.Run(strings.TrimSuffix(filepath.Base(suite), ".md"), func(t *testing.T) {
			doc, err := os.ReadFile(suite)
			be.Err(t, err, nil)

			cases, err := mdtest.ExtractTestCases(doc)
			be.Err(t, err, nil)

			for _, tc := range cases {
				t.Run(tc.Name, func(t *testing.T) {
					runCase(t, tc)
				})
			}
		})
	}
}

// runCase compiles the program of a test case and checks its assertions.
func runCase(t *testing.T, tc *mdtest.TestCase) {
	u := CompileSource(strings.NewReader(tc.Program), true)

	var text string
	if u.IR != nil {
		text = u.IR.String()
	}

	for _, a := range tc.Assertions {
		switch a.Kind {
		case mdtest.AssertErrors:
			want := a.Lines
			if len(want) == 1 && want[0] == "none" {
				want = []string{}
			}

			be.Equal(t, formatErrors(u.Errors, want), want)
		case mdtest.AssertIRContains:
			be.True(t, u.IR != nil)
			for _, line := range a.Lines {
				if !strings.Contains(text, line) {
					t.Errorf("line %d: IR does not contain `%s`:\n%s", a.Line, line, text)
				}
			}
		case mdtest.AssertIRNotContains:
			for _, line := range a.Lines {
				if strings.Contains(text, line) {
					t.Errorf("line %d: IR contains `%s`:\n%s", a.Line, line, text)
				}
			}
		}
	}
}

// formatErrors renders errors as `Kind: message`.  An expected line with no
// message only checks the kind, so that error is rendered as its kind alone.
func formatErrors(errs []*report.LocalCompileError, want []string) []string {
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = err.Kind.String()
		if i >= len(want) || strings.Contains(want[i], ": ") {
			lines[i] += ": " + err.Message
		}
	}

	return lines
}
