package e2e_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakoblorz/go-autoclaude/internal/dirhash"
	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/jakoblorz/go-autoclaude/internal/initializer"
	"github.com/jakoblorz/go-autoclaude/internal/kvstore"
	"github.com/jakoblorz/go-autoclaude/internal/models"
	"github.com/jakoblorz/go-autoclaude/internal/registry"
	"github.com/jakoblorz/go-autoclaude/internal/selection"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFullWorkflow(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "auto-claude")
	project := filepath.Join(root, "app")

	writeFile(t, filepath.Join(source, "VERSION"), "1.0.0\n")
	writeFile(t, filepath.Join(source, "run.py"), "import sys\n")
	writeFile(t, filepath.Join(source, "agents", "coder.py"), "class Coder: pass\n")
	writeFile(t, filepath.Join(source, "__pycache__", "run.cpython-312.pyc"), "\x00\x01")
	require.NoError(t, os.MkdirAll(project, 0755))

	fs := filesystem.NewOSFileSystem()
	installer := initializer.New(fs)

	// Test: Fingerprint ignores caches
	hashBefore, err := dirhash.Compute(fs, source)
	require.NoError(t, err)
	writeFile(t, filepath.Join(source, "__pycache__", "coder.cpython-312.pyc"), "\x02")
	hashAfter, err := dirhash.Compute(fs, source)
	require.NoError(t, err)
	require.Equal(t, hashBefore, hashAfter)

	// Test: Initialize
	res := installer.InitializeProject(project, source)
	require.True(t, res.Success, res.Error)
	require.Equal(t, "1.0.0", res.Version)

	for _, dir := range initializer.DataDirs {
		_, err := os.Stat(filepath.Join(project, ".auto-claude", dir, ".gitkeep"))
		require.NoError(t, err, dir)
	}

	raw, err := os.ReadFile(filepath.Join(project, ".auto-claude", ".version.json"))
	require.NoError(t, err)
	var meta models.VersionMetadata
	require.NoError(t, json.Unmarshal(raw, &meta))
	require.Equal(t, "1.0.0", meta.Version)
	require.Equal(t, hashBefore, meta.SourceHash)
	require.Equal(t, meta.InitializedAt, meta.UpdatedAt)

	// Test: Second init is refused
	again := installer.InitializeProject(project, source)
	require.False(t, again.Success)
	require.Contains(t, again.Error, "already initialized")

	// Test: Up to date
	check, err := installer.CheckVersion(project, source)
	require.NoError(t, err)
	require.False(t, check.UpdateAvailable)

	// Test: New release of the source
	writeFile(t, filepath.Join(source, "VERSION"), "1.1.0\n")
	writeFile(t, filepath.Join(source, "agents", "planner.py"), "class Planner: pass\n")

	check, err = installer.CheckVersion(project, source)
	require.NoError(t, err)
	require.True(t, check.UpdateAvailable)
	require.Equal(t, "1.0.0", check.CurrentVersion)
	require.Equal(t, "1.1.0", check.SourceVersion)
	require.Equal(t, models.DirectionUpgrade, models.CompareVersions(check.CurrentVersion, check.SourceVersion))

	// Test: Update keeps user data
	writeFile(t, filepath.Join(project, ".auto-claude", "specs", "001-login", "spec.md"), "# Login\n")
	require.NoError(t, os.RemoveAll(filepath.Join(project, ".auto-claude", "roadmap")))

	upd := installer.UpdateProject(project, source)
	require.True(t, upd.Success, upd.Error)
	require.True(t, upd.WasUpdate)

	_, err = os.Stat(filepath.Join(project, ".auto-claude", "specs", "001-login", "spec.md"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(project, ".auto-claude", "roadmap"))
	require.NoError(t, err)

	check, err = installer.CheckVersion(project, source)
	require.NoError(t, err)
	require.False(t, check.UpdateAvailable)
	require.Equal(t, "1.1.0", check.CurrentVersion)

	// Test: Registry and selection survive a restart
	ctx := context.Background()
	home := t.TempDir()

	open := func() (*registry.DB, *kvstore.Store, *selection.Store, *registry.ProjectRepository) {
		db, err := registry.Open(filepath.Join(home, "projects.db"))
		require.NoError(t, err)
		kv, err := kvstore.Open(kvstore.DefaultConfig(filepath.Join(home, "prefs")))
		require.NoError(t, err)
		repo := registry.NewProjectRepository(db)
		return db, kv, selection.New(kv, repo), repo
	}

	db, kv, store, repo := open()
	first, err := repo.Add(ctx, "", project)
	require.NoError(t, err)
	second, err := repo.Add(ctx, "tooling", source)
	require.NoError(t, err)

	require.NoError(t, store.LoadProjects(ctx))
	require.Equal(t, first.ID, store.SelectedID())
	require.NoError(t, store.SelectProject(second.ID))
	require.NoError(t, kv.Close())
	require.NoError(t, db.Close())

	db, kv, store, repo = open()
	require.NoError(t, store.LoadProjects(ctx))
	require.Equal(t, second.ID, store.SelectedID())

	require.NoError(t, store.RemoveProject(ctx, repo, second.ID))
	require.Empty(t, store.SelectedID())
	require.NoError(t, kv.Close())
	require.NoError(t, db.Close())

	db, kv, store, _ = open()
	defer db.Close()
	defer kv.Close()
	require.NoError(t, store.LoadProjects(ctx))
	require.Equal(t, first.ID, store.SelectedID())
	require.Equal(t, "app", store.SelectedProject().Name)
}
