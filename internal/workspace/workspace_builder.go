package workspace

import (
	"encoding/json"
	"path/filepath"

	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/jakoblorz/go-autoclaude/internal/initializer"
	"github.com/jakoblorz/go-autoclaude/internal/models"
	"github.com/jakoblorz/go-autoclaude/internal/versioning"
)

// WorkspaceBuilder helps create test workspaces
type WorkspaceBuilder struct {
	fs   *filesystem.MockFileSystem
	root string
}

// NewWorkspaceBuilder creates a new WorkspaceBuilder rooted at root, which
// also becomes the working directory.
func NewWorkspaceBuilder(root string) *WorkspaceBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.SetCurrentDir(root)

	return &WorkspaceBuilder{
		fs:   fs,
		root: root,
	}
}

// Path joins rel onto the workspace root.
func (wb *WorkspaceBuilder) Path(rel string) string {
	return filepath.Join(wb.root, rel)
}

// AddSource adds a framework source tree at rel with a VERSION marker and a
// few files. An empty version leaves VERSION out.
func (wb *WorkspaceBuilder) AddSource(rel, version string) *WorkspaceBuilder {
	dir := wb.Path(rel)
	wb.fs.AddDir(dir)
	if version != "" {
		wb.fs.AddFile(filepath.Join(dir, versioning.VersionFileName), []byte(version+"\n"))
	}
	wb.fs.AddFile(filepath.Join(dir, "run.py"), []byte("import sys\n"))
	wb.fs.AddFile(filepath.Join(dir, "agents", "coder.py"), []byte("class Coder: pass\n"))
	return wb
}

// AddSourceFile adds or replaces a file inside a source tree.
func (wb *WorkspaceBuilder) AddSourceFile(rel, name, content string) *WorkspaceBuilder {
	wb.fs.AddFile(filepath.Join(wb.Path(rel), name), []byte(content))
	return wb
}

// AddProject adds an empty project directory.
func (wb *WorkspaceBuilder) AddProject(rel string) *WorkspaceBuilder {
	wb.fs.AddDir(wb.Path(rel))
	return wb
}

// AddLegacyInstall adds a data directory without metadata, the shape left by
// installs made before version tracking existed.
func (wb *WorkspaceBuilder) AddLegacyInstall(projectRel string) *WorkspaceBuilder {
	installed := initializer.InstalledPath(wb.Path(projectRel))
	for _, name := range initializer.DataDirs {
		wb.fs.AddFile(filepath.Join(installed, name, ".gitkeep"), nil)
	}
	wb.fs.AddFile(filepath.Join(installed, "specs", "001-login", "spec.md"), []byte("# Login\n"))
	return wb
}

// AddInstall adds a data directory with the given metadata record.
func (wb *WorkspaceBuilder) AddInstall(projectRel string, meta models.VersionMetadata) *WorkspaceBuilder {
	wb.AddLegacyInstall(projectRel)
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		panic(err)
	}
	installed := initializer.InstalledPath(wb.Path(projectRel))
	wb.fs.AddFile(filepath.Join(installed, versioning.MetadataFileName), data)
	return wb
}

// Build returns the filesystem
func (wb *WorkspaceBuilder) Build() *filesystem.MockFileSystem {
	return wb.fs
}
