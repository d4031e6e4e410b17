package dirhash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func sourceTree() *filesystem.MockFileSystem {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/VERSION", []byte("1.0.0\n"))
	fs.AddFile("/src/run.py", []byte("print('hello')\n"))
	fs.AddFile("/src/agents/coder.py", []byte("class Coder: pass\n"))
	fs.AddFile("/src/agents/planner.py", []byte("class Planner: pass\n"))
	fs.AddFile("/src/prompts/coder.md", []byte("# Coder\n"))
	return fs
}

func mustHash(t *testing.T, fs filesystem.FileSystem, root string) string {
	t.Helper()
	h, err := Compute(fs, root)
	require.NoError(t, err)
	return h
}

func TestCompute_Shape(t *testing.T) {
	h := mustHash(t, sourceTree(), "/src")
	require.Len(t, h, Length)
	require.Regexp(t, "^[0-9a-f]{16}$", h)
}

func TestCompute_StableAcrossCalls(t *testing.T) {
	fs := sourceTree()
	require.Equal(t, mustHash(t, fs, "/src"), mustHash(t, fs, "/src"))
}

func TestCompute_OrderIndependent(t *testing.T) {
	fs := sourceTree()
	forward := mustHash(t, fs, "/src")

	fs.ReverseReadDir(true)
	reversed := mustHash(t, fs, "/src")

	require.Equal(t, forward, reversed)
}

func TestCompute_MissingRootIsEmptyTree(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/empty")

	missing := mustHash(t, fs, "/does-not-exist")
	empty := mustHash(t, fs, "/empty")

	require.Equal(t, empty, missing)
	require.Equal(t, "e3b0c44298fc1c14", missing)
}

func TestCompute_IgnoresExcludedEntries(t *testing.T) {
	baseline := mustHash(t, sourceTree(), "/src")

	tests := []struct {
		name string
		add  func(fs *filesystem.MockFileSystem)
	}{
		{"pycache dir", func(fs *filesystem.MockFileSystem) {
			fs.AddFile("/src/agents/__pycache__/coder.cpython-312.pyc", []byte{0x01, 0x02})
		}},
		{"compiled file", func(fs *filesystem.MockFileSystem) {
			fs.AddFile("/src/run.pyc", []byte{0xde, 0xad})
		}},
		{"ds store", func(fs *filesystem.MockFileSystem) {
			fs.AddFile("/src/prompts/.DS_Store", []byte("finder"))
		}},
		{"env file", func(fs *filesystem.MockFileSystem) {
			fs.AddFile("/src/.env", []byte("API_KEY=secret\n"))
		}},
		{"specs dir", func(fs *filesystem.MockFileSystem) {
			fs.AddFile("/src/specs/001-feature/spec.md", []byte("# Spec\n"))
		}},
		{"git dir", func(fs *filesystem.MockFileSystem) {
			fs.AddFile("/src/.git/HEAD", []byte("ref: refs/heads/main\n"))
		}},
		{"node modules", func(fs *filesystem.MockFileSystem) {
			fs.AddFile("/src/node_modules/left-pad/index.js", []byte("module.exports = 1\n"))
		}},
		{"virtualenv", func(fs *filesystem.MockFileSystem) {
			fs.AddFile("/src/.venv/bin/python", []byte("#!/bin/sh\n"))
			fs.AddFile("/src/venv/bin/python", []byte("#!/bin/sh\n"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := sourceTree()
			tt.add(fs)
			require.Equal(t, baseline, mustHash(t, fs, "/src"))
		})
	}
}

func TestCompute_ExcludedContentChangesAreInvisible(t *testing.T) {
	fs := sourceTree()
	fs.AddFile("/src/.env", []byte("A=1\n"))
	before := mustHash(t, fs, "/src")

	fs.AddFile("/src/.env", []byte("A=2\nB=3\n"))
	require.Equal(t, before, mustHash(t, fs, "/src"))
}

func TestCompute_DetectsChanges(t *testing.T) {
	baseline := mustHash(t, sourceTree(), "/src")

	tests := []struct {
		name   string
		change func(fs *filesystem.MockFileSystem)
	}{
		{"one byte of content", func(fs *filesystem.MockFileSystem) {
			fs.AddFile("/src/run.py", []byte("print('hellO')\n"))
		}},
		{"file length", func(fs *filesystem.MockFileSystem) {
			fs.AddFile("/src/run.py", []byte("print('hello')\n\n"))
		}},
		{"new file", func(fs *filesystem.MockFileSystem) {
			fs.AddFile("/src/agents/qa.py", []byte("class QA: pass\n"))
		}},
		{"new empty directory", func(fs *filesystem.MockFileSystem) {
			fs.AddDir("/src/tools")
		}},
		{"version bump", func(fs *filesystem.MockFileSystem) {
			fs.AddFile("/src/VERSION", []byte("1.0.1\n"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := sourceTree()
			tt.change(fs)
			require.NotEqual(t, baseline, mustHash(t, fs, "/src"))
		})
	}
}

func TestCompute_SensitiveToStructure(t *testing.T) {
	flat := filesystem.NewMockFileSystem()
	flat.AddFile("/src/a/b.py", []byte("x"))
	flat.AddFile("/src/a/c.py", []byte("y"))

	nested := filesystem.NewMockFileSystem()
	nested.AddFile("/src/a/b.py", []byte("x"))
	nested.AddFile("/src/a/sub/c.py", []byte("y"))

	renamedDir := filesystem.NewMockFileSystem()
	renamedDir.AddFile("/src/z/b.py", []byte("x"))
	renamedDir.AddFile("/src/z/c.py", []byte("y"))

	base := mustHash(t, flat, "/src")
	require.NotEqual(t, base, mustHash(t, nested, "/src"))
	require.NotEqual(t, base, mustHash(t, renamedDir, "/src"))

	// Same names and bytes in the same visiting order, one level apart.
	siblingOfDir := filesystem.NewMockFileSystem()
	siblingOfDir.AddFile("/src/a/x.py", []byte("x"))
	siblingOfDir.AddFile("/src/y.py", []byte("y"))

	insideDir := filesystem.NewMockFileSystem()
	insideDir.AddFile("/src/a/x.py", []byte("x"))
	insideDir.AddFile("/src/a/y.py", []byte("y"))

	require.NotEqual(t, mustHash(t, siblingOfDir, "/src"), mustHash(t, insideDir, "/src"))
}

func TestCompute_Symlinks(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("VERSION", "1.0.0\n")
	write("shared/prompts.md", "# Prompts\n")
	require.NoError(t, os.Symlink(filepath.Join(dir, "shared"), filepath.Join(dir, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "shared", "prompts.md"), filepath.Join(dir, "prompts.md")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling")))

	osfs := filesystem.NewOSFileSystem()
	before := mustHash(t, osfs, dir)
	require.Len(t, before, Length)

	// The file link is hashed by content.
	write("shared/prompts.md", "# Prompts v2\n")
	afterEdit := mustHash(t, osfs, dir)
	require.NotEqual(t, before, afterEdit)

	// The directory link contributes its name; its target is hashed as shared/.
	write("shared/extra.md", "extra\n")
	withExtra := mustHash(t, osfs, dir)
	require.NotEqual(t, afterEdit, withExtra)
	require.NoError(t, os.Remove(filepath.Join(dir, "linked")))
	require.NotEqual(t, withExtra, mustHash(t, osfs, dir))
}

func TestCompute_OSFileSystemMatchesMock(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("VERSION", "1.0.0\n")
	write("run.py", "print('hello')\n")
	write("agents/coder.py", "class Coder: pass\n")
	write("agents/planner.py", "class Planner: pass\n")
	write("prompts/coder.md", "# Coder\n")
	write("agents/__pycache__/coder.pyc", "junk")

	osHash := mustHash(t, filesystem.NewOSFileSystem(), dir)
	require.Equal(t, mustHash(t, sourceTree(), "/src"), osHash)
}
