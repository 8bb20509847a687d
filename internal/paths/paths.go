// Package paths resolves the project directory that holds the state
// document, checkpoints, and backups.
package paths

import (
	"os"
	"path/filepath"
)

// DefaultDirName is the CWD-relative project directory used when no
// override is active.
const DefaultDirName = ".cairn"

// EnvDir is the environment variable overriding the project directory.
const EnvDir = "CAIRN_DIR"

// ResolveDir returns the absolute project directory following the
// precedence chain: flag > CAIRN_DIR env > $(CWD)/.cairn.
func ResolveDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDirName), nil
}
