package mods

import (
	"os"
	"path/filepath"

	"beblang/common"

	"github.com/pelletier/go-toml"
)

// FindProjectRoot searches the given directory and its parents for a directory
// containing a valid project file.  It returns the path to the project root.
func FindProjectRoot(dir string) (string, bool) {
	abspath, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		if checkPath(abspath) {
			return abspath, true
		}

		parent := filepath.Dir(abspath)
		if parent == abspath {
			return "", false
		}

		abspath = parent
	}
}

// checkPath checks to see if a directory contains a project file that names a
// project.  It only queries the name rather than fully loading the project:
// this directory may not be a valid project at all in which case we shouldn't
// error since the user didn't explicitly specify it.
func checkPath(abspath string) bool {
	pfPath := filepath.Join(abspath, common.ProjectFileName)

	finfo, err := os.Stat(pfPath)
	if err != nil || finfo.IsDir() {
		return false
	}

	tree, err := toml.LoadFile(pfPath)
	if err != nil {
		return false
	}

	name, ok := tree.Get("project.name").(string)
	return ok && name != ""
}
