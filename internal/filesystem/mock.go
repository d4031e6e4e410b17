package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var _ FileSystem = (*MockFileSystem)(nil)

// MockFileSystem provides in-memory filesystem for testing
type MockFileSystem struct {
	files        map[string]*MockFile
	currentDir   string
	reverseOrder bool
	writeFaults  map[string]error
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements fs.DirEntry
type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates a new MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:       make(map[string]*MockFile),
		currentDir:  "/workspace",
		writeFaults: make(map[string]error),
	}
}

// AddFile adds a file to the mock filesystem, creating parent directories.
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := mfs.resolve(path)
	mfs.ensureParents(cleanPath)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
	}
}

// AddDir adds a directory to the mock filesystem, creating parent directories.
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := mfs.resolve(path)
	mfs.ensureParents(cleanPath)
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = &MockFile{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
}

// ReverseReadDir makes ReadDir return entries in descending name order.
// Used to prove callers do not depend on listing order.
func (mfs *MockFileSystem) ReverseReadDir(enabled bool) {
	mfs.reverseOrder = enabled
}

// FailWritesUnder makes every write or mkdir at or below prefix fail with err.
func (mfs *MockFileSystem) FailWritesUnder(prefix string, err error) {
	mfs.writeFaults[mfs.resolve(prefix)] = err
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	file, exists := mfs.files[mfs.resolve(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	cleanPath := mfs.resolve(path)
	if err := mfs.writeFault(cleanPath); err != nil {
		return &fs.PathError{Op: "open", Path: path, Err: err}
	}

	dir := filepath.Dir(cleanPath)
	if parent, exists := mfs.files[dir]; dir != "/" && (!exists || !parent.IsDir) {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if existing, exists := mfs.files[cleanPath]; exists && existing.IsDir {
		return &fs.PathError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	mfs.files[cleanPath] = &MockFile{
		Content: buf,
		Mode:    perm,
		ModTime: time.Now(),
	}
	return nil
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	cleanPath := mfs.resolve(path)

	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if !file.IsDir {
		return nil, &fs.PathError{Op: "readdirent", Path: path, Err: errors.New("not a directory")}
	}

	var entries []fs.DirEntry
	for p, f := range mfs.files {
		if p == cleanPath || filepath.Dir(p) != cleanPath {
			continue
		}
		entries = append(entries, &mockDirEntry{info: mfs.info(p, f)})
	}

	sort.Slice(entries, func(i, j int) bool {
		if mfs.reverseOrder {
			return entries[i].Name() > entries[j].Name()
		}
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	cleanPath := mfs.resolve(path)

	var missing []string
	for dir := cleanPath; dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		if existing, exists := mfs.files[dir]; exists {
			if !existing.IsDir {
				return &fs.PathError{Op: "mkdir", Path: dir, Err: errors.New("not a directory")}
			}
			break
		}
		missing = append(missing, dir)
	}

	for i := len(missing) - 1; i >= 0; i-- {
		if err := mfs.writeFault(missing[i]); err != nil {
			return &fs.PathError{Op: "mkdir", Path: missing[i], Err: err}
		}
		mfs.files[missing[i]] = &MockFile{
			Mode:    perm | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	cleanPath := mfs.resolve(path)
	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return mfs.info(cleanPath, file), nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.files[mfs.resolve(path)]
	return exists
}

func (mfs *MockFileSystem) IsDir(path string) bool {
	file, exists := mfs.files[mfs.resolve(path)]
	return exists && file.IsDir
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

func (mfs *MockFileSystem) Abs(path string) (string, error) {
	return mfs.resolve(path), nil
}

// SetCurrentDir sets the current working directory for the mock
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = filepath.Clean(dir)
}

// Snapshot returns a copy of every path and its content, for asserting that
// an operation left the tree untouched.
func (mfs *MockFileSystem) Snapshot() map[string]string {
	out := make(map[string]string, len(mfs.files))
	for p, f := range mfs.files {
		if f.IsDir {
			out[p] = "<dir>"
			continue
		}
		out[p] = string(f.Content)
	}
	return out
}

// Paths returns every path below root, sorted.
func (mfs *MockFileSystem) Paths(root string) []string {
	cleanRoot := mfs.resolve(root)
	var paths []string
	for p := range mfs.files {
		if p == cleanRoot || strings.HasPrefix(p, cleanRoot+string(filepath.Separator)) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

func (mfs *MockFileSystem) resolve(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(mfs.currentDir, path)
	}
	return filepath.Clean(path)
}

func (mfs *MockFileSystem) ensureParents(cleanPath string) {
	for dir := filepath.Dir(cleanPath); dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		if _, exists := mfs.files[dir]; exists {
			continue
		}
		mfs.files[dir] = &MockFile{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
}

func (mfs *MockFileSystem) writeFault(cleanPath string) error {
	for prefix, err := range mfs.writeFaults {
		if cleanPath == prefix || strings.HasPrefix(cleanPath, prefix+string(filepath.Separator)) {
			return err
		}
	}
	return nil
}

func (mfs *MockFileSystem) info(path string, file *MockFile) *mockFileInfo {
	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(file.Content)),
		mode:    file.Mode,
		modTime: file.ModTime,
		isDir:   file.IsDir,
	}
}
