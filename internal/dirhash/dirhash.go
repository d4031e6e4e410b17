// Package dirhash fingerprints a directory tree for change detection.
//
// The fingerprint is a truncated SHA-256 over every non-excluded directory
// name, file name, file size and file content, visited depth-first in
// lexicographic order. Leaving a directory is folded in as well, so moving a
// file between levels changes the fingerprint. Symbolic links to files hash
// as the file they point to. Links to directories, and dangling links, hash
// as their name only and are not followed.
//
// It is advisory only: a 16 hex char prefix is enough to notice that a source
// tree moved on, not to prove that two trees are equal.
package dirhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
)

// Length is the number of hex characters kept from the digest.
const Length = 16

// ExcludeRules lists housekeeping entries that never contribute to the
// fingerprint, in .gitignore syntax. Name-only rules match at every depth and
// excluded directories are not descended into.
var ExcludeRules = []string{
	"__pycache__",
	".DS_Store",
	".env",
	"specs",
	".git",
	"node_modules",
	".venv",
	"venv",
	"*.pyc",
}

// Hasher computes fingerprints through a FileSystem.
type Hasher struct {
	fs    filesystem.FileSystem
	rules []string
}

// New creates a Hasher using ExcludeRules.
func New(fs filesystem.FileSystem) *Hasher {
	return &Hasher{fs: fs, rules: ExcludeRules}
}

// Compute is shorthand for New(fs).Compute(root).
func Compute(fs filesystem.FileSystem, root string) (string, error) {
	return New(fs).Compute(root)
}

// Compute returns the fingerprint of root. A missing root hashes as an
// empty tree rather than failing.
func (h *Hasher) Compute(root string) (string, error) {
	digest := sha256.New()

	if h.fs.IsDir(root) {
		ignore := gitignore.New(strings.NewReader(strings.Join(h.rules, "\n")), root, nil)
		if err := h.walk(digest, ignore, root, ""); err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(digest.Sum(nil))[:Length], nil
}

func (h *Hasher) walk(digest hash.Hash, ignore gitignore.GitIgnore, root, rel string) error {
	dir := filepath.Join(root, rel)
	entries, err := h.fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		name := entry.Name()
		entryRel := filepath.ToSlash(filepath.Join(rel, name))

		if match := ignore.Relative(entryRel, entry.IsDir()); match != nil && match.Ignore() {
			continue
		}

		if entry.IsDir() {
			fmt.Fprintf(digest, "dir:%s", name)
			if err := h.walk(digest, ignore, root, entryRel); err != nil {
				return err
			}
			fmt.Fprintf(digest, "end:%s", name)
			continue
		}

		path := filepath.Join(root, entryRel)
		if entry.Type()&fs.ModeSymlink != 0 {
			if info, err := h.fs.Stat(path); err != nil || info.IsDir() {
				fmt.Fprintf(digest, "link:%s", name)
				continue
			}
		}

		content, err := h.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		fmt.Fprintf(digest, "file:%s:%d", name, len(content))
		digest.Write(content)
	}

	return nil
}
