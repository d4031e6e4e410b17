// Package workspace resolves which project and which framework source a
// command operates on.
package workspace

import (
	"errors"
	"fmt"

	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/jakoblorz/go-autoclaude/internal/initializer"
)

// ErrNoSource is returned by Detect when no source path was configured and the
// project does not carry one.
var ErrNoSource = errors.New("no auto-claude source configured (set --source or AUTO_CLAUDE_SOURCE)")

// Workspace is a resolved (project, source) pair.
type Workspace struct {
	fs          filesystem.FileSystem
	installer   *initializer.Initializer
	projectArg  string
	sourceArg   string
	ProjectPath string
	SourcePath  string
}

// Option configures workspace resolution.
type Option func(*Workspace)

// WithProject pins the project path instead of searching from the working directory.
func WithProject(path string) Option {
	return func(w *Workspace) {
		w.projectArg = path
	}
}

// WithSource pins the framework source path.
func WithSource(path string) Option {
	return func(w *Workspace) {
		w.sourceArg = path
	}
}

// New creates a new Workspace instance.
func New(fs filesystem.FileSystem, installer *initializer.Initializer, options ...Option) *Workspace {
	ws := &Workspace{fs: fs, installer: installer}

	for _, option := range options {
		option(ws)
	}

	return ws
}

// Detect resolves ProjectPath and SourcePath.
//
// The project is the explicit path if given, else the nearest ancestor of the
// working directory holding .auto-claude, else the working directory itself.
// The source is the explicit path if given, else the project's own
// auto-claude/ checkout.
func (w *Workspace) Detect() error {
	projectPath, err := w.resolveProject()
	if err != nil {
		return err
	}
	w.ProjectPath = projectPath

	switch {
	case w.sourceArg != "":
		sourcePath, err := w.fs.Abs(w.sourceArg)
		if err != nil {
			return fmt.Errorf("failed to resolve source path: %w", err)
		}
		w.SourcePath = sourcePath
	default:
		sourcePath, ok := w.installer.GetLocalSourcePath(projectPath)
		if !ok {
			return ErrNoSource
		}
		w.SourcePath = sourcePath
	}

	return nil
}

func (w *Workspace) resolveProject() (string, error) {
	if w.projectArg != "" {
		path, err := w.fs.Abs(w.projectArg)
		if err != nil {
			return "", fmt.Errorf("failed to resolve project path: %w", err)
		}
		return path, nil
	}

	cwd, err := w.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if root, ok := findDirUp(w.fs, cwd, initializer.DataDirName); ok {
		return root, nil
	}

	return cwd, nil
}
