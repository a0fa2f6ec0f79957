package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"beblang/build"
	"beblang/common"
	"beblang/mods"
	"beblang/report"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `beblang` application.
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("beblang", "beblang is a compiler for the Beblang language", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile a source file or project", true)
	buildCmd.AddPrimaryArg("path", "the path to the source file or project directory", true)
	buildCmd.AddStringArg("profile", "p", "the name of the profile to build", false)

	checkCmd := cli.AddSubcommand("check", "analyze a source file or project and report errors", true)
	checkCmd.AddPrimaryArg("path", "the path to the source file or project directory", true)

	emitCmd := cli.AddSubcommand("emit", "print the LLVM IR of a source file", true)
	emitCmd.AddPrimaryArg("file", "the path to the source file", true)

	modCmd := cli.AddSubcommand("mod", "manage projects", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a project in the current directory", true)
	modInitCmd.AddPrimaryArg("name", "the name of the project", true)

	cli.AddSubcommand("repl", "start an interactive session", false)
	cli.AddSubcommand("version", "print the Beblang version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		os.Exit(1)
	}

	loglevel := result.Arguments["loglevel"].(string)

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		if !execBuildCommand(subResult, loglevel) {
			os.Exit(1)
		}
	case "check":
		if !execCheckCommand(subResult, loglevel) {
			os.Exit(1)
		}
	case "emit":
		if !execEmitCommand(subResult) {
			os.Exit(1)
		}
	case "mod":
		execModCommand(subResult)
	case "repl":
		os.Exit(runREPL())
	case "version":
		report.PrintInfoMessage("Beblang Version", common.BeblangVersion)
	}
}

// execBuildCommand executes the build subcommand.  It returns whether the build
// succeeded.
func execBuildCommand(result *olive.ArgParseResult, loglevel string) bool {
	path, _ := result.PrimaryArg()

	selectedProfile := ""
	if profArgVal, ok := result.Arguments["profile"]; ok {
		selectedProfile = profArgVal.(string)
	}

	c, profile, ok := loadCompiler(path, selectedProfile, loglevel)
	if !ok {
		return false
	}

	report.ReportCompileHeader(common.BeblangVersion, profile.Name)

	outputs, ok := c.Compile()

	outputPath := ""
	if len(outputs) > 0 {
		outputPath = filepath.Dir(outputs[0])
	}

	report.ReportCompilationFinished(outputPath)
	return ok
}

// execCheckCommand executes the check subcommand.
func execCheckCommand(result *olive.ArgParseResult, loglevel string) bool {
	path, _ := result.PrimaryArg()

	c, _, ok := loadCompiler(path, "", loglevel)
	if !ok {
		return false
	}

	ok = c.Check()
	report.ReportCompilationFinished("")
	return ok
}

// execEmitCommand executes the emit subcommand: the file is compiled and its
// LLVM IR is printed to stdout.  Diagnostics are always printed.
func execEmitCommand(result *olive.ArgParseResult) bool {
	path, _ := result.PrimaryArg()

	absPath, err := filepath.Abs(path)
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		return false
	}

	f, err := os.Open(absPath)
	if err != nil {
		report.PrintErrorMessage("File Error", err)
		return false
	}
	defer f.Close()

	report.InitReporter(report.LogLevelError)
	defer report.CatchErrors(absPath, path)

	u := build.CompileSource(f, true)
	if len(u.Errors) > 0 {
		report.ReportErrors(absPath, path, u.Errors)
		return false
	}

	os.Stdout.WriteString(u.IR.String())
	return true
}

// execModCommand executes the `mod` subcommand and its subcommands.
func execModCommand(result *olive.ArgParseResult) {
	subcmdName, subResult, _ := result.Subcommand()

	workDir, err := os.Getwd()
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		return
	}

	switch subcmdName {
	case "init":
		name, _ := subResult.PrimaryArg()
		if err := mods.InitProject(name, workDir); err != nil {
			report.PrintErrorMessage("Project Init Error", err)
		} else {
			report.PrintInfoMessage("Project Created", filepath.Join(workDir, common.ProjectFileName))
		}
	}
}

// -----------------------------------------------------------------------------

// loadCompiler creates the compiler for a path: a single source file is built
// with the default profile, and a directory is loaded as a project.  The
// reporter is initialized with the log level of the command line unless it was
// left at its default and the project specifies one.
func loadCompiler(path, selectedProfile, loglevel string) (*build.Compiler, *mods.BuildProfile, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		return nil, nil, false
	}

	finfo, err := os.Stat(absPath)
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		return nil, nil, false
	}

	if !finfo.IsDir() {
		if selectedProfile != "" {
			report.PrintErrorMessage("Profile Error", errors.New("profiles can only be selected when building a project"))
			return nil, nil, false
		}

		report.InitReporter(report.LogLevelFromName(loglevel))

		dir := filepath.Dir(absPath)
		return build.NewCompiler(dir, []string{absPath}, dir, mods.DefaultProfile()), mods.DefaultProfile(), true
	}

	root, ok := mods.FindProjectRoot(absPath)
	if !ok {
		report.PrintErrorMessage("Project Error", errors.New("no "+common.ProjectFileName+" found in `"+path+"` or its parents"))
		return nil, nil, false
	}

	proj, profile, err := mods.LoadProject(root, selectedProfile)
	if err != nil {
		report.PrintErrorMessage("Project Load Error", err)
		return nil, nil, false
	}

	if loglevel == "verbose" && proj.LogLevel != "" {
		loglevel = proj.LogLevel
	}

	report.InitReporter(report.LogLevelFromName(loglevel))
	return build.NewProjectCompiler(proj, profile), profile, true
}
