package workspace

import (
	"errors"
	"testing"

	"github.com/jakoblorz/go-autoclaude/internal/initializer"
	"github.com/jakoblorz/go-autoclaude/internal/models"
)

func TestWorkspaceDetect_ExplicitPaths(t *testing.T) {
	fs := NewWorkspaceBuilder("/home/dev").
		AddProject("app").
		AddSource("framework/auto-claude", "1.0.0").
		Build()

	ws := New(fs, initializer.New(fs), WithProject("app"), WithSource("/home/dev/framework/auto-claude"))
	if err := ws.Detect(); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if ws.ProjectPath != "/home/dev/app" {
		t.Fatalf("unexpected project path: %s", ws.ProjectPath)
	}
	if ws.SourcePath != "/home/dev/framework/auto-claude" {
		t.Fatalf("unexpected source path: %s", ws.SourcePath)
	}
}

func TestWorkspaceDetect_FindsInstalledAncestor(t *testing.T) {
	wb := NewWorkspaceBuilder("/home/dev").
		AddInstall("app", models.VersionMetadata{Version: "1.0.0"}).
		AddSource("app/auto-claude", "1.0.0").
		AddProject("app/src/pkg")
	fs := wb.Build()
	fs.SetCurrentDir("/home/dev/app/src/pkg")

	ws := New(fs, initializer.New(fs))
	if err := ws.Detect(); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if ws.ProjectPath != "/home/dev/app" {
		t.Fatalf("expected project root /home/dev/app, got %s", ws.ProjectPath)
	}
	if ws.SourcePath != "/home/dev/app/auto-claude" {
		t.Fatalf("expected local source, got %s", ws.SourcePath)
	}
}

func TestWorkspaceDetect_FallsBackToWorkingDirectory(t *testing.T) {
	fs := NewWorkspaceBuilder("/home/dev/fresh").
		AddSource("auto-claude", "2.0.0").
		Build()

	ws := New(fs, initializer.New(fs))
	if err := ws.Detect(); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if ws.ProjectPath != "/home/dev/fresh" {
		t.Fatalf("unexpected project path: %s", ws.ProjectPath)
	}
}

func TestWorkspaceDetect_NoSource(t *testing.T) {
	fs := NewWorkspaceBuilder("/home/dev/app").Build()

	ws := New(fs, initializer.New(fs))
	err := ws.Detect()
	if !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}

func TestWorkspaceDetect_SourceDirWithoutVersionIsNotASource(t *testing.T) {
	fs := NewWorkspaceBuilder("/home/dev/app").
		AddSource("auto-claude", "").
		Build()

	ws := New(fs, initializer.New(fs))
	if err := ws.Detect(); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}
