// Package cache discovers model artifacts already present on disk.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"llamactl/internal/common/fsutil"
	"llamactl/pkg/types"
)

// ArtifactSuffix is the literal filename suffix that marks a model artifact.
// The match is case sensitive: backends open artifacts by the exact name the
// publisher used.
const ArtifactSuffix = ".gguf"

type dirUnreadableError struct {
	dir string
	err error
}

func (e dirUnreadableError) Error() string {
	return fmt.Sprintf("models directory unreadable: %s: %v", e.dir, e.err)
}

func (e dirUnreadableError) Unwrap() error { return e.err }

// IsDirectoryUnreadable reports whether err means the models directory itself
// could not be listed.
func IsDirectoryUnreadable(err error) bool {
	_, ok := err.(dirUnreadableError)
	return ok
}

// Scan lists artifacts directly inside dir (non-recursive), in directory
// listing order. ID and Name are the filename; Path is absolute. Directories
// and entries that cannot be inspected are skipped so one bad entry never
// hides the rest; the only failure is the directory itself being unlistable.
func Scan(dir string) ([]types.Model, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, dirUnreadableError{dir: dir, err: err}
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, dirUnreadableError{dir: dir, err: err}
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, dirUnreadableError{dir: abs, err: err}
	}
	var models []types.Model
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ArtifactSuffix) {
			continue
		}
		models = append(models, types.Model{ID: name, Name: name, Path: filepath.Join(abs, name)})
	}
	return models, nil
}
