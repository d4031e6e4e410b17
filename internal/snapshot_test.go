package internal_test

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jakoblorz/go-autoclaude/internal/cli"
	"github.com/jakoblorz/go-autoclaude/internal/config"
	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/jakoblorz/go-autoclaude/internal/versioning"
	"github.com/jakoblorz/go-autoclaude/internal/workspace"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, fs filesystem.FileSystem, cfg *config.Config, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := cli.NewRootCommand(fs, cfg, slog.New(slog.DiscardHandler))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestInstallLifecycle(t *testing.T) {
	// Project with its own framework checkout, the layout a cloned
	// auto-claude repo has.
	wb := workspace.NewWorkspaceBuilder("/work")
	wb.AddProject("shop")
	wb.AddSource("shop/auto-claude", "2.3.0")
	fs := wb.Build()
	fs.SetCurrentDir("/work/shop")

	home := t.TempDir()
	cfg := &config.Config{
		Home:            home,
		RegistryPath:    filepath.Join(home, "projects.db"),
		PreferencesPath: filepath.Join(home, "prefs"),
	}
	installed := "/work/shop/.auto-claude"

	t.Run("status before init", func(t *testing.T) {
		snaps.MatchSnapshot(t, execute(t, fs, cfg, "status"))
	})

	t.Run("init records source version", func(t *testing.T) {
		snaps.MatchSnapshot(t, execute(t, fs, cfg, "init"))

		meta, ok := versioning.NewMetadataFile(fs).Read(installed)
		require.True(t, ok)
		require.Equal(t, "2.3.0", meta.Version)
		require.Equal(t, "/work/shop/auto-claude", meta.SourcePath)
		require.Len(t, meta.SourceHash, 16)
	})

	t.Run("status from a nested directory finds the install", func(t *testing.T) {
		fs.AddDir("/work/shop/web/src")
		fs.SetCurrentDir("/work/shop/web/src")
		defer fs.SetCurrentDir("/work/shop")

		require.Contains(t, execute(t, fs, cfg, "status"), "Up to date (2.3.0)")
	})

	t.Run("content change without version bump is not an update", func(t *testing.T) {
		fs.AddFile("/work/shop/auto-claude/prompts/coder.md", []byte("# Coder\n"))
		require.Contains(t, execute(t, fs, cfg, "status"), "Up to date (2.3.0)")
	})

	t.Run("version bump with content change is an update", func(t *testing.T) {
		fs.AddFile("/work/shop/auto-claude/VERSION", []byte("2.4.0\n"))
		snaps.MatchSnapshot(t, execute(t, fs, cfg, "status"))
	})

	t.Run("user data survives update", func(t *testing.T) {
		spec := filepath.Join(installed, "specs", "001-cart", "spec.md")
		fs.AddFile(spec, []byte("# Cart\n"))

		snaps.MatchSnapshot(t, execute(t, fs, cfg, "update"))

		data, err := fs.ReadFile(spec)
		require.NoError(t, err)
		require.Equal(t, "# Cart\n", string(data))
		require.Contains(t, execute(t, fs, cfg, "status"), "Up to date (2.4.0)")
	})

	t.Run("registered project is selected on next start", func(t *testing.T) {
		execute(t, fs, cfg, "projects", "add", ".", "--name", "shop")
		out := execute(t, fs, cfg, "projects", "list")
		require.Contains(t, out, "* shop  /work/shop")
	})
}
