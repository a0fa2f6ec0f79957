package mdtest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// The info string of the fence holding the program of a test case.
const programFence = "beb-program"

// AssertionKind is the kind of an assertion fence in a test case.
type AssertionKind string

// Enumeration of the assertion fences.
const (
	// Expected diagnostics: one `Kind: message` per line or `none`.
	AssertErrors AssertionKind = "errors"

	// Lines that must each appear in the generated IR.
	AssertIRContains AssertionKind = "ir-contains"

	// Lines that must not appear in the generated IR.
	AssertIRNotContains AssertionKind = "ir-not-contains"
)

// Assertion is a single assertion fence of a test case.
type Assertion struct {
	Kind AssertionKind

	// The non-empty lines of the fence with surrounding whitespace trimmed.
	Lines []string

	// The line on which the fence content starts in the document (1-indexed).
	Line int
}

// TestCase is a test case extracted from a Markdown document: a `Test: name`
// heading followed by a program fence and at least one assertion fence.
type TestCase struct {
	Name       string
	Program    string
	Assertions []Assertion
}

// ExtractTestCases extracts all the test cases from a Markdown document.
// Fences with no info string are treated as prose; any other fence outside of
// a test case or with an unknown info string is an error.
func ExtractTestCases(doc []byte) ([]*TestCase, error) {
	root := goldmark.New().Parser().Parse(text.NewReader(doc))

	var cases []*TestCase
	var current *TestCase

	finish := func() error {
		if current == nil {
			return nil
		}

		if current.Program == "" {
			return fmt.Errorf("test `%s` has no %s fence", current.Name, programFence)
		}

		if len(current.Assertions) == 0 {
			return fmt.Errorf("test `%s` has no assertion fences", current.Name)
		}

		cases = append(cases, current)
		return nil
	}

	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Heading:
			heading := nodeText(v, doc)
			if name, ok := strings.CutPrefix(heading, "Test: "); ok {
				if err := finish(); err != nil {
					return ast.WalkStop, err
				}

				current = &TestCase{Name: strings.TrimSpace(name)}
			}
		case *ast.FencedCodeBlock:
			lang := string(v.Language(doc))
			if lang == "" {
				return ast.WalkContinue, nil
			}

			line := lineOf(v, doc)
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: `%s` fence outside of a test case", line, lang)
			}

			body := fenceContent(v, doc)
			switch kind := AssertionKind(lang); kind {
			case AssertErrors, AssertIRContains, AssertIRNotContains:
				current.Assertions = append(current.Assertions, Assertion{
					Kind:  kind,
					Lines: splitLines(body),
					Line:  line,
				})
			default:
				if lang != programFence {
					return ast.WalkStop, fmt.Errorf("line %d: unknown fence `%s` in test `%s`", line, lang, current.Name)
				}

				if current.Program != "" {
					return ast.WalkStop, fmt.Errorf("line %d: test `%s` has multiple programs", line, current.Name)
				}

				current.Program = body
			}
		}

		return ast.WalkContinue, nil
	})

	if err != nil {
		return nil, err
	}

	if err := finish(); err != nil {
		return nil, err
	}

	return cases, nil
}

// -----------------------------------------------------------------------------

// nodeText returns the concatenated text of all the text nodes under a node.
func nodeText(node ast.Node, doc []byte) string {
	var buff bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buff.Write(t.Segment.Value(doc))
		}

		return ast.WalkContinue, nil
	})

	return buff.String()
}

// fenceContent returns the raw content of a fenced code block.
func fenceContent(fence *ast.FencedCodeBlock, doc []byte) string {
	var buff bytes.Buffer

	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buff.Write(seg.Value(doc))
	}

	return buff.String()
}

// splitLines splits fence content into its trimmed, non-empty lines.
func splitLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// lineOf returns the 1-indexed line on which the content of a block starts.
func lineOf(node ast.Node, doc []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}

	start := node.Lines().At(0).Start
	return bytes.Count(doc[:start], []byte("\n")) + 1
}
