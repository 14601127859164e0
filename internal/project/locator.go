// Package project locates and scaffolds the per-project data directory.
package project

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const dataFileName = "project-data.json"

// gitignoreContent keeps generated and machine-local files out of
// version control while the dataset itself stays committable.
const gitignoreContent = `# devtrack generated files
backup-*.json
export-*.json
*.checksum
*.lock
*.tmp
`

// Locator resolves project identity and the on-disk layout of the
// hidden data directory.
//
// It uses an afero.Fs so callers can run it against an in-memory
// filesystem in tests. Use afero.NewOsFs() for real operations.
type Locator struct {
	fs afero.Fs
}

// NewLocator creates a Locator over the given filesystem.
func NewLocator(fs afero.Fs) *Locator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Locator{fs: fs}
}

// NewDefaultLocator creates a Locator over the OS filesystem.
func NewDefaultLocator() *Locator {
	return NewLocator(afero.NewOsFs())
}

// Name derives the project name from the root folder's basename.
func (l *Locator) Name(rootDir string) string {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		abs = rootDir
	}
	name := filepath.Base(abs)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "project"
	}
	return name
}

// DataDir returns the path of the hidden data directory under rootDir.
func (l *Locator) DataDir(rootDir, dataDirName string) string {
	return filepath.Join(rootDir, dataDirName)
}

// IsInitialized reports whether a dataset already exists under rootDir.
// Commands that read or mutate data refuse to run when it is false.
func (l *Locator) IsInitialized(rootDir, dataDirName string) (bool, error) {
	dataFile := filepath.Join(l.DataDir(rootDir, dataDirName), dataFileName)
	exists, err := afero.Exists(l.fs, dataFile)
	if err != nil {
		return false, fmt.Errorf("check data file %s: %w", dataFile, err)
	}
	return exists, nil
}

// Scaffold creates the data directory and seeds its .gitignore. It is
// safe to call on an already-scaffolded project; an existing .gitignore
// is left alone.
func (l *Locator) Scaffold(rootDir, dataDirName string) error {
	dir := l.DataDir(rootDir, dataDirName)
	if err := l.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", dir, err)
	}
	gitignorePath := filepath.Join(dir, ".gitignore")
	exists, err := afero.Exists(l.fs, gitignorePath)
	if err != nil {
		return fmt.Errorf("check %s: %w", gitignorePath, err)
	}
	if !exists {
		if err := afero.WriteFile(l.fs, gitignorePath, []byte(gitignoreContent), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", gitignorePath, err)
		}
	}
	return nil
}
