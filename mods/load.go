package mods

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"beblang/common"
	"beblang/report"

	"github.com/pelletier/go-toml"
)

// tomlProjectFile represents the project file as it is encoded in TOML.
type tomlProjectFile struct {
	Project  *tomlProject   `toml:"project"`
	Profiles []*tomlProfile `toml:"profiles"`
}

// tomlProject represents a Beblang project as it is encoded in TOML.
type tomlProject struct {
	Name      string   `toml:"name"`
	Sources   []string `toml:"sources"`
	OutputDir string   `toml:"output-dir,omitempty"`
	LogLevel  string   `toml:"log-level,omitempty"`
	Version   string   `toml:"beblang-version"`
}

// tomlProfile represents a profile as it is encoded in TOML.
type tomlProfile struct {
	Name     string `toml:"name"`
	Emit     string `toml:"emit"`
	LLCPath  string `toml:"llc-path,omitempty"`
	OptLevel int    `toml:"opt-level"`
	Default  bool   `toml:"default"` // in absence of a selected profile, choose this profile
}

// emitNames maps TOML emit strings to enumerated output kinds.
var emitNames = map[string]int{
	"ll":  EmitLLVM,
	"obj": EmitObject,
}

// LoadProject loads and validates the project in the given directory as well as
// determining the correct build profile.  `selectedProfile` can be empty if
// there is no profile selected.
func LoadProject(dir, selectedProfile string) (*Project, *BuildProfile, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, nil, err
	}

	buff, err := os.ReadFile(filepath.Join(root, common.ProjectFileName))
	if err != nil {
		return nil, nil, err
	}

	tpf := &tomlProjectFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, nil, fmt.Errorf("error decoding %s: %w", common.ProjectFileName, err)
	}

	if err := validateProject(root, tpf.Project); err != nil {
		return nil, nil, err
	}

	sources, err := resolveSources(root, tpf.Project.Sources)
	if err != nil {
		return nil, nil, err
	}

	profile, err := selectProfile(tpf, selectedProfile)
	if err != nil {
		return nil, nil, err
	}

	proj := &Project{
		Name:      tpf.Project.Name,
		Root:      root,
		Sources:   sources,
		OutputDir: root,
		LogLevel:  tpf.Project.LogLevel,
	}

	if tpf.Project.OutputDir != "" {
		proj.OutputDir = filepath.Join(root, tpf.Project.OutputDir)
	}

	return proj, profile, nil
}

// validateProject checks that the top level project contents are valid.
func validateProject(root string, proj *tomlProject) error {
	if proj == nil || proj.Name == "" {
		return fmt.Errorf("missing project name for project at %s", root)
	}

	if !IsValidIdentifier(proj.Name) {
		return errors.New("project name must be a valid identifier")
	}

	if len(proj.Sources) == 0 {
		return fmt.Errorf("project `%s` must specify at least one source", proj.Name)
	}

	if proj.Version != common.BeblangVersion {
		report.ReportCompileWarning(
			"",
			filepath.Join(root, common.ProjectFileName),
			nil,
			"version of project `%s` (v%s) does not match current beblang version (v%s)",
			proj.Name,
			proj.Version,
			common.BeblangVersion,
		)
	}

	return nil
}

// resolveSources expands the source globs of a project into a sorted list of
// absolute paths to module files.  Each glob must match at least one file.
func resolveSources(root string, globs []string) ([]string, error) {
	seen := make(map[string]struct{})

	var sources []string
	for _, glob := range globs {
		matches, err := filepath.Glob(filepath.Join(root, glob))
		if err != nil {
			return nil, fmt.Errorf("invalid source pattern `%s`: %w", glob, err)
		}

		if len(matches) == 0 {
			return nil, fmt.Errorf("source pattern `%s` matches no files", glob)
		}

		sort.Strings(matches)
		for _, match := range matches {
			if _, ok := seen[match]; !ok {
				seen[match] = struct{}{}
				sources = append(sources, match)
			}
		}
	}

	return sources, nil
}

// selectProfile selects the build profile: the profile named by
// `selectedProfile` if given, otherwise the profile marked as default or the
// first profile.
func selectProfile(tpf *tomlProjectFile, selectedProfile string) (*BuildProfile, error) {
	if selectedProfile != "" {
		for _, prof := range tpf.Profiles {
			if prof.Name == selectedProfile {
				return convertProfile(prof)
			}
		}

		return nil, fmt.Errorf("project `%s` has no profile `%s`", tpf.Project.Name, selectedProfile)
	}

	if len(tpf.Profiles) == 0 {
		return DefaultProfile(), nil
	}

	for _, prof := range tpf.Profiles {
		if prof.Default {
			return convertProfile(prof)
		}
	}

	return convertProfile(tpf.Profiles[0])
}

// convertProfile converts a TOML build profile into a `*BuildProfile`.
func convertProfile(tprof *tomlProfile) (*BuildProfile, error) {
	if tprof.Name == "" {
		return nil, errors.New("profile must specify a name")
	}

	newProfile := DefaultProfile()
	newProfile.Name = tprof.Name

	if tprof.Emit != "" {
		if emitVal, ok := emitNames[tprof.Emit]; ok {
			newProfile.Emit = emitVal
		} else {
			return nil, fmt.Errorf("profile `%s`: %s is not a valid output kind", tprof.Name, tprof.Emit)
		}
	}

	if tprof.LLCPath != "" {
		newProfile.LLCPath = tprof.LLCPath
	}

	if tprof.OptLevel < 0 || tprof.OptLevel > 3 {
		return nil, fmt.Errorf("profile `%s`: optimization level must be between 0 and 3", tprof.Name)
	}

	newProfile.OptLevel = tprof.OptLevel
	return newProfile, nil
}
