package build

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"beblang/common"
	"beblang/mods"
	"beblang/report"

	"golang.org/x/sync/errgroup"
)

// Compiler represents the global state of a single build: the sources being
// compiled and the profile they are being compiled with.
type Compiler struct {
	// sources is the list of absolute paths to the module files to compile.
	sources []string

	// root is the directory relative to which source paths are displayed.
	root string

	// outputDir is the directory in which output files are written.
	outputDir string

	// profile is the current build profile of the compiler.
	profile *mods.BuildProfile
}

// NewCompiler creates a new compiler for the given sources.  `root` is used to
// compute the display paths of the sources.
func NewCompiler(root string, sources []string, outputDir string, profile *mods.BuildProfile) *Compiler {
	return &Compiler{
		sources:   sources,
		root:      root,
		outputDir: outputDir,
		profile:   profile,
	}
}

// NewProjectCompiler creates a new compiler for all the sources of a project.
func NewProjectCompiler(proj *mods.Project, profile *mods.BuildProfile) *Compiler {
	return NewCompiler(proj.Root, proj.Sources, proj.OutputDir, profile)
}

// sourceFile is a source file being compiled by the compiler.
type sourceFile struct {
	absPath, reprPath string
	unit              *Unit
}

// reprPath returns the display path of a source file.
func (c *Compiler) reprPath(absPath string) string {
	if rel, err := filepath.Rel(c.root, absPath); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}

	return absPath
}

// analyze runs the parsing and analysis phases over every source.  It returns
// the analyzed files if no errors occurred.
func (c *Compiler) analyze() ([]*sourceFile, bool) {
	files := make([]*sourceFile, len(c.sources))
	for i, src := range c.sources {
		files[i] = &sourceFile{absPath: src, reprPath: c.reprPath(src)}
	}

	report.ReportBeginPhase("Analyzing")

	g := &errgroup.Group{}
	for _, file := range files {
		file := file
		g.Go(func() error {
			defer report.CatchErrors(file.absPath, file.reprPath)

			f, err := os.Open(file.absPath)
			if err != nil {
				return fmt.Errorf("failed to open source file `%s`: %w", file.reprPath, err)
			}
			defer f.Close()

			file.unit = CompileSource(f, false)
			report.ReportErrors(file.absPath, file.reprPath, file.unit.Errors)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		report.ReportStdError("", err)
	}

	report.ReportEndPhase()
	return files, !report.AnyErrors()
}

// Check runs only the analysis phase.  It returns whether the sources are free
// of errors.
func (c *Compiler) Check() bool {
	_, ok := c.analyze()
	return ok
}

// Compile runs the full compilation pipeline: analysis, code generation and, if
// the profile requests object files, assembly with `llc`.  It returns the paths
// to the output files produced.
func (c *Compiler) Compile() ([]string, bool) {
	files, ok := c.analyze()
	if !ok {
		return nil, false
	}

	llPaths, ok := c.outputPaths(files)
	if !ok {
		return nil, false
	}

	report.ReportBeginPhase("Generating")

	outputs := make([]string, len(files))
	g := &errgroup.Group{}
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			defer report.CatchErrors(file.absPath, file.reprPath)

			file.unit.Generate()

			llPath := llPaths[i]
			if err := os.MkdirAll(filepath.Dir(llPath), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			if err := writeOutputFile(llPath, file.unit.IR.String()); err != nil {
				return err
			}

			outputs[i] = llPath
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		report.ReportStdError("", err)
	}

	report.ReportEndPhase()

	if report.AnyErrors() {
		return nil, false
	}

	if c.profile.Emit == mods.EmitObject {
		return c.assemble(outputs)
	}

	return outputs, true
}

// assemble runs `llc` over each generated LLVM module to produce object files.
func (c *Compiler) assemble(llPaths []string) ([]string, bool) {
	if _, err := exec.LookPath(c.profile.LLCPath); err != nil {
		report.ReportFatal("unable to locate llc at `%s`: %s", c.profile.LLCPath, err)
	}

	report.ReportBeginPhase("Assembling")

	objPaths := make([]string, len(llPaths))
	g := &errgroup.Group{}
	for i, llPath := range llPaths {
		i, llPath := i, llPath
		g.Go(func() error {
			objPath := strings.TrimSuffix(llPath, ".ll") + ".o"
			if err := compileLLVMModule(c.profile, llPath, objPath); err != nil {
				return fmt.Errorf("failed to run llc on `%s`:\n%w", filepath.Base(llPath), err)
			}

			objPaths[i] = objPath
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		report.ReportStdError("", err)
	}

	report.ReportEndPhase()
	return objPaths, !report.AnyErrors()
}

// -----------------------------------------------------------------------------

// outputPaths computes the path of the LLVM module generated for each source
// file: the path of the source relative to the root is mirrored under the
// output directory.  Sources outside the root are placed directly in the output
// directory.  Two sources which would write the same output are an error.
func (c *Compiler) outputPaths(files []*sourceFile) ([]string, bool) {
	paths := make([]string, len(files))
	owners := make(map[string]*sourceFile)

	for i, file := range files {
		rel := file.reprPath
		if filepath.IsAbs(rel) {
			rel = filepath.Base(rel)
		}

		paths[i] = filepath.Join(c.outputDir, strings.TrimSuffix(rel, common.SrcFileExtension)+".ll")

		if owner, ok := owners[paths[i]]; ok {
			report.ReportStdError(file.reprPath, fmt.Errorf("output `%s` is also produced by `%s`", paths[i], owner.reprPath))
			continue
		}

		owners[paths[i]] = file
	}

	return paths, !report.AnyErrors()
}

// compileLLVMModule compiles the textual LLVM module at `llPath` to an object
// file using `llc`.  It returns an error containing the output of `llc` if it
// fails.
func compileLLVMModule(profile *mods.BuildProfile, llPath, objPath string) error {
	llc := exec.Command(
		profile.LLCPath,
		"-filetype=obj",
		fmt.Sprintf("-O%d", profile.OptLevel),
		"-o", objPath,
		llPath,
	)

	stderrBuff := bytes.Buffer{}
	llc.Stderr = &stderrBuff

	if err := llc.Run(); err != nil {
		if stderrBuff.Len() == 0 {
			return err
		}

		return errors.New(stderrBuff.String())
	}

	return nil
}

// writeOutputFile is used to quickly write an output file for the compiler.
func writeOutputFile(fpath, content string) error {
	file, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file `%s`: %w", fpath, err)
	}
	defer file.Close()

	if _, err = file.WriteString(content); err != nil {
		return fmt.Errorf("failed to write output to file `%s`: %w", fpath, err)
	}

	return nil
}
