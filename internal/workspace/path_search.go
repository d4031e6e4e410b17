package workspace

import (
	"path/filepath"

	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
)

// findDirUp walks from startDir towards the filesystem root and returns the
// first directory that contains a directory named dirname.
func findDirUp(fs filesystem.FileSystem, startDir, dirname string) (string, bool) {
	dir := filepath.Clean(startDir)

	for {
		if fs.IsDir(filepath.Join(dir, dirname)) {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
