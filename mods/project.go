package mods

// Project represents a Beblang project: a set of module files compiled
// together according to a project file.
type Project struct {
	// Name is the name of the project.
	Name string

	// Root is the absolute path to the directory containing the project file.
	Root string

	// Sources is the list of absolute paths to the module files of the
	// project in the order they should be compiled.
	Sources []string

	// OutputDir is the absolute path to the directory in which build outputs
	// are placed.
	OutputDir string

	// LogLevel is the name of the log level requested by the project.  This
	// may be empty if the project does not specify one.
	LogLevel string
}

// BuildProfile represents the profile that compiler will use to build: it is
// returned from `LoadProject`.
type BuildProfile struct {
	// Name is the name of the profile.
	Name string

	// Emit is the kind of output the compiler should produce.  This must be
	// one of the enumerated output kinds (prefixed `Emit`).
	Emit int

	// LLCPath is the path to the `llc` executable used to produce object
	// files.
	LLCPath string

	// OptLevel is the optimization level passed to `llc`.
	OptLevel int
}

// Available output kinds.
const (
	EmitLLVM   = iota // Textual LLVM IR
	EmitObject        // Object files assembled by `llc`
)

// DefaultProfile returns the profile used to build when there is no project
// file or the project file specifies no profiles.
func DefaultProfile() *BuildProfile {
	return &BuildProfile{
		Name:    "default",
		Emit:    EmitLLVM,
		LLCPath: "llc",
	}
}

// OutputExt returns the file extension of the output produced by the profile.
func (bp *BuildProfile) OutputExt() string {
	if bp.Emit == EmitObject {
		return ".o"
	}

	return ".ll"
}

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier (project name, module name, etc.)
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
