package build

import (
	"io"

	"beblang/ast"
	"beblang/depm"
	"beblang/generate"
	"beblang/report"
	"beblang/syntax"
	"beblang/walk"

	"github.com/llir/llvm/ir"
)

// Unit is the result of compiling a single module.
type Unit struct {
	// The parsed module.  This is `nil` if the source has a syntax error.
	Module *ast.Module

	// The annotations produced by analysis.
	Annots *depm.Annotations

	// The syntax error or the semantic errors of the module.
	Errors []*report.LocalCompileError

	// The generated LLVM module.  This is `nil` if there were any errors or
	// generation was not requested.
	IR *ir.Module
}

// CompileSource parses and analyzes the source read from r and, if analysis
// succeeds and `generate` is set, generates its LLVM module.
func CompileSource(r io.Reader, generate bool) *Unit {
	mod, err := syntax.NewParser(r).Parse()
	if err != nil {
		return &Unit{Errors: []*report.LocalCompileError{asCompileError(err)}}
	}

	u := AnalyzeModule(mod)
	if generate && len(u.Errors) == 0 {
		u.Generate()
	}

	return u
}

// AnalyzeModule runs semantic analysis on a parsed module.
func AnalyzeModule(mod *ast.Module) *Unit {
	annots := depm.NewAnnotations(mod.NodeCount)
	errs := walk.WalkModule(mod, depm.NewSymbolTable(), annots)

	return &Unit{Module: mod, Annots: annots, Errors: errs}
}

// Generate generates the LLVM module for an analyzed unit.  The unit must have
// analyzed without errors.
func (u *Unit) Generate() {
	if len(u.Errors) > 0 {
		report.ICE("generating module `%s` which has errors", u.Module.Name.Name)
	}

	u.IR = generate.Generate(u.Module, u.Annots)
}

// asCompileError converts an error returned by the parser into a compile
// error.
func asCompileError(err error) *report.LocalCompileError {
	if cerr, ok := err.(*report.LocalCompileError); ok {
		return cerr
	}

	return report.Raise(report.SyntaxError, nil, "%s", err)
}
