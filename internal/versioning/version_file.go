package versioning

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/jakoblorz/go-autoclaude/internal/models"
)

// VersionFileName is the marker file at the root of a framework source tree.
const VersionFileName = "VERSION"

// VersionFile reads the VERSION marker of a source tree
type VersionFile struct {
	fs filesystem.FileSystem
}

// NewVersionFile creates a new VersionFile instance
func NewVersionFile(fs filesystem.FileSystem) *VersionFile {
	return &VersionFile{fs: fs}
}

// Read returns the first line of VERSION in sourceRoot. The value is opaque:
// it is trimmed but not validated. A missing or blank file yields 0.0.0.
func (vf *VersionFile) Read(sourceRoot string) (string, error) {
	versionPath := filepath.Join(sourceRoot, VersionFileName)

	if !vf.fs.Exists(versionPath) {
		return models.DefaultVersion, nil
	}

	data, err := vf.fs.ReadFile(versionPath)
	if err != nil {
		return "", fmt.Errorf("failed to read version file: %w", err)
	}

	line, _, _ := strings.Cut(string(data), "\n")
	version := strings.TrimSpace(line)
	if version == "" {
		return models.DefaultVersion, nil
	}

	return version, nil
}

// Exists reports whether sourceRoot carries a VERSION marker.
func (vf *VersionFile) Exists(sourceRoot string) bool {
	return vf.fs.Exists(filepath.Join(sourceRoot, VersionFileName))
}
