package initializer

import "path/filepath"

const (
	// DataDirName is the installed data directory inside a project.
	DataDirName = ".auto-claude"

	// SourceDirName is a framework source checkout inside a project.
	SourceDirName = "auto-claude"

	gitKeepName = ".gitkeep"
)

// DataDirs are created under the data directory on init and re-ensured on update.
var DataDirs = []string{
	"specs",
	"ideation",
	"insights",
	"roadmap",
}

// InstalledPath returns where the data directory of projectPath lives,
// whether or not it exists.
func InstalledPath(projectPath string) string {
	return filepath.Join(projectPath, DataDirName)
}

// IsInitialized reports whether projectPath has a data directory.
func (i *Initializer) IsInitialized(projectPath string) bool {
	return i.fs.IsDir(InstalledPath(projectPath))
}

// GetAutoBuildPath returns the data directory name relative to the project,
// or false when the project is not initialized.
func (i *Initializer) GetAutoBuildPath(projectPath string) (string, bool) {
	if !i.IsInitialized(projectPath) {
		return "", false
	}
	return DataDirName, true
}

// HasLocalSource reports whether the project carries the framework source
// itself (auto-claude/ with a VERSION marker).
func (i *Initializer) HasLocalSource(projectPath string) bool {
	_, ok := i.GetLocalSourcePath(projectPath)
	return ok
}

// GetLocalSourcePath returns the framework source checkout inside the
// project, if there is one.
func (i *Initializer) GetLocalSourcePath(projectPath string) (string, bool) {
	sourcePath := filepath.Join(projectPath, SourceDirName)
	if !i.fs.IsDir(sourcePath) || !i.versions.Exists(sourcePath) {
		return "", false
	}
	return sourcePath, true
}
