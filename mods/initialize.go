package mods

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"beblang/common"

	"github.com/pelletier/go-toml"
)

// InitProject creates a new project with the given name at the given path.  The
// project is created with a default profile which emits LLVM IR and a release
// profile which emits object files.
func InitProject(name, path string) error {
	pfPath := filepath.Join(path, common.ProjectFileName)

	// check to see if a project already exists
	_, err := os.Stat(pfPath)
	if err == nil {
		return errors.New("project file already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("project file error: %w", err)
	}

	if !IsValidIdentifier(name) {
		return errors.New("project name must be a valid identifier")
	}

	tpf := &tomlProjectFile{
		Project: &tomlProject{
			Name:      name,
			Sources:   []string{"*" + common.SrcFileExtension},
			OutputDir: "out",
			Version:   common.BeblangVersion,
		},
		Profiles: []*tomlProfile{
			{Name: "debug", Emit: "ll", Default: true},
			{Name: "release", Emit: "obj", LLCPath: "llc", OptLevel: 2},
		},
	}

	f, err := os.Create(pfPath)
	if err != nil {
		return fmt.Errorf("error creating project file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(tpf); err != nil {
		return fmt.Errorf("error encoding TOML: %w", err)
	}

	return nil
}
