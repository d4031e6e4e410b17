package initializer

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/jakoblorz/go-autoclaude/internal/dirhash"
	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/jakoblorz/go-autoclaude/internal/models"
	"github.com/jakoblorz/go-autoclaude/internal/versioning"
)

// Initializer installs, inspects and updates project data directories.
type Initializer struct {
	fs       filesystem.FileSystem
	hasher   *dirhash.Hasher
	versions *versioning.VersionFile
	metadata *versioning.MetadataFile
	logger   *slog.Logger
}

// Option configures an Initializer.
type Option func(*Initializer)

// WithLogger routes branch-level trace lines to logger (at debug level).
func WithLogger(logger *slog.Logger) Option {
	return func(i *Initializer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithClock overrides the time source for metadata timestamps.
func WithClock(now func() time.Time) Option {
	return func(i *Initializer) {
		i.metadata.WithClock(now)
	}
}

// New creates an Initializer. Without WithLogger it is silent.
func New(fs filesystem.FileSystem, options ...Option) *Initializer {
	i := &Initializer{
		fs:       fs,
		hasher:   dirhash.New(fs),
		versions: versioning.NewVersionFile(fs),
		metadata: versioning.NewMetadataFile(fs),
		logger:   slog.New(slog.DiscardHandler),
	}

	for _, option := range options {
		option(i)
	}

	return i
}

// CheckVersion classifies projectPath against sourcePath.
//
// An install that predates metadata tracking gets its .version.json written
// here when the source is reachable: the baseline hash is taken from the
// installed directory and the version from the source. Use Inspect for a
// read-only classification.
func (i *Initializer) CheckVersion(projectPath, sourcePath string) (*models.VersionCheckResult, error) {
	inspection, err := i.Inspect(projectPath, sourcePath)
	if err != nil {
		return nil, err
	}

	if inspection.State != StateLegacy {
		return &inspection.Result, nil
	}

	return i.MigrateLegacyInstall(projectPath, sourcePath)
}

// Inspect classifies projectPath against sourcePath without writing anything.
func (i *Initializer) Inspect(projectPath, sourcePath string) (*Inspection, error) {
	installedDir := InstalledPath(projectPath)
	log := i.logger.With("project", projectPath, "source", sourcePath)

	if !i.fs.IsDir(installedDir) {
		log.Debug("check: not initialized")
		return &Inspection{
			State:  StateNotInstalled,
			Result: models.VersionCheckResult{Status: StatusNotInitialized},
		}, nil
	}

	sourceReachable := i.sourceExists(sourcePath)
	meta, hasMeta := i.metadata.Read(installedDir)

	if !hasMeta {
		if !sourceReachable {
			log.Debug("check: no metadata and source unreachable, update status unknown")
			return &Inspection{
				State: StateLegacyNoSource,
				Result: models.VersionCheckResult{
					IsInitialized: true,
					Status:        StatusUnknown,
				},
			}, nil
		}

		log.Debug("check: no metadata, source reachable, metadata can be synthesized")
		return &Inspection{
			State: StateLegacy,
			Result: models.VersionCheckResult{
				IsInitialized: true,
				Status:        StatusUnknown,
				SourcePath:    sourcePath,
			},
		}, nil
	}

	if !sourceReachable {
		log.Debug("check: source unreachable, cannot compare", "installedVersion", meta.Version)
		return &Inspection{
			State:    StateSourceUnreachable,
			Metadata: meta,
			Result: models.VersionCheckResult{
				IsInitialized:  true,
				CurrentVersion: meta.Version,
				InstalledHash:  meta.SourceHash,
				Status:         StatusSourceUnreachable,
			},
		}, nil
	}

	sourceVersion, sourceHash, err := i.fingerprint(sourcePath)
	if err != nil {
		return nil, err
	}

	hashChanged := meta.SourceHash != sourceHash
	versionChanged := meta.Version != sourceVersion
	updateAvailable := hashChanged && versionChanged

	log.Debug("check: compared with source",
		"installedVersion", meta.Version,
		"sourceVersion", sourceVersion,
		"installedHash", meta.SourceHash,
		"sourceHash", sourceHash,
		"hashChanged", hashChanged,
		"versionChanged", versionChanged,
		"updateAvailable", updateAvailable,
	)

	status := StatusUpToDate
	if updateAvailable {
		status = StatusUpdateAvailable
	}

	return &Inspection{
		State:    StateTracked,
		Metadata: meta,
		Result: models.VersionCheckResult{
			IsInitialized:   true,
			CurrentVersion:  meta.Version,
			SourceVersion:   sourceVersion,
			UpdateAvailable: updateAvailable,
			InstalledHash:   meta.SourceHash,
			SourceHash:      sourceHash,
			SourcePath:      sourcePath,
			Status:          status,
		},
	}, nil
}

// MigrateLegacyInstall writes .version.json for an installed project that
// has none, using the installed directory's own fingerprint as baseline.
// It is a no-op returning the current status when metadata already exists.
func (i *Initializer) MigrateLegacyInstall(projectPath, sourcePath string) (*models.VersionCheckResult, error) {
	inspection, err := i.Inspect(projectPath, sourcePath)
	if err != nil {
		return nil, err
	}
	if inspection.State != StateLegacy {
		return &inspection.Result, nil
	}

	installedDir := InstalledPath(projectPath)

	installedHash, err := i.hasher.Compute(installedDir)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint %s: %w", installedDir, err)
	}

	sourceVersion, err := i.versions.Read(sourcePath)
	if err != nil {
		return nil, err
	}

	meta := i.metadata.New(sourceVersion, installedHash, sourcePath)
	if err := i.metadata.Write(installedDir, meta); err != nil {
		return nil, err
	}

	i.logger.Debug("check: wrote retroactive metadata",
		"project", projectPath,
		"version", sourceVersion,
		"installedHash", installedHash,
	)

	return &models.VersionCheckResult{
		IsInitialized:  true,
		CurrentVersion: sourceVersion,
		SourceVersion:  sourceVersion,
		InstalledHash:  installedHash,
		SourcePath:     sourcePath,
		Status:         StatusMigrated,
	}, nil
}

// InitializeProject creates the data directory and its metadata. Failures,
// including precondition failures, are reported in the result.
func (i *Initializer) InitializeProject(projectPath, sourcePath string) models.InitializationResult {
	version, err := i.initialize(projectPath, sourcePath)
	if err != nil {
		i.logger.Debug("init: failed", "project", projectPath, "error", err)
		return models.InitializationResult{Success: false, Error: err.Error()}
	}

	return models.InitializationResult{Success: true, Version: version}
}

// UpdateProject re-ensures the data directories and rewrites the metadata
// from the current source, keeping the original initializedAt. No user data
// is migrated.
func (i *Initializer) UpdateProject(projectPath, sourcePath string) models.InitializationResult {
	version, err := i.update(projectPath, sourcePath)
	if err != nil {
		i.logger.Debug("update: failed", "project", projectPath, "error", err)
		return models.InitializationResult{Success: false, Error: err.Error(), WasUpdate: true}
	}

	return models.InitializationResult{Success: true, Version: version, WasUpdate: true}
}

func (i *Initializer) initialize(projectPath, sourcePath string) (string, error) {
	if !i.sourceExists(sourcePath) {
		return "", fmt.Errorf("%w at %s", ErrSourceNotFound, sourcePath)
	}
	if !i.fs.IsDir(projectPath) {
		return "", fmt.Errorf("%w: %s", ErrProjectNotFound, projectPath)
	}

	installedDir := InstalledPath(projectPath)
	if i.fs.Exists(installedDir) {
		return "", ErrAlreadyInitialized
	}

	i.logger.Debug("init: creating data directory", "path", installedDir)
	if err := i.ensureDataDirs(installedDir); err != nil {
		return "", err
	}

	version, hash, err := i.fingerprint(sourcePath)
	if err != nil {
		return "", err
	}

	if err := i.metadata.Write(installedDir, i.metadata.New(version, hash, sourcePath)); err != nil {
		return "", err
	}

	i.logger.Debug("init: done", "project", projectPath, "version", version, "sourceHash", hash)
	return version, nil
}

func (i *Initializer) update(projectPath, sourcePath string) (string, error) {
	if !i.sourceExists(sourcePath) {
		return "", fmt.Errorf("%w at %s", ErrSourceNotFound, sourcePath)
	}

	installedDir := InstalledPath(projectPath)
	if !i.fs.IsDir(installedDir) {
		return "", ErrNotInitialized
	}

	if err := i.ensureDataDirs(installedDir); err != nil {
		return "", err
	}

	version, hash, err := i.fingerprint(sourcePath)
	if err != nil {
		return "", err
	}

	previous, ok := i.metadata.Read(installedDir)
	if !ok {
		i.logger.Debug("update: no previous metadata, initializedAt starts now", "project", projectPath)
	}

	if err := i.metadata.Write(installedDir, i.metadata.Refresh(previous, version, hash, sourcePath)); err != nil {
		return "", err
	}

	i.logger.Debug("update: done", "project", projectPath, "version", version, "sourceHash", hash)
	return version, nil
}

// ensureDataDirs creates installedDir and every DataDirs entry that is
// missing, each with an empty .gitkeep. Partial progress is left in place on
// failure.
func (i *Initializer) ensureDataDirs(installedDir string) error {
	if err := i.fs.MkdirAll(installedDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", installedDir, err)
	}

	for _, name := range DataDirs {
		dir := filepath.Join(installedDir, name)
		if i.fs.IsDir(dir) {
			continue
		}

		if err := i.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		if err := i.fs.WriteFile(filepath.Join(dir, gitKeepName), nil, 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Join(dir, gitKeepName), err)
		}
		i.logger.Debug("created data directory", "path", dir)
	}

	return nil
}

// sourceExists treats an unset source path as missing rather than letting it
// resolve to the working directory.
func (i *Initializer) sourceExists(sourcePath string) bool {
	return sourcePath != "" && i.fs.IsDir(sourcePath)
}

func (i *Initializer) fingerprint(sourcePath string) (version, hash string, err error) {
	version, err = i.versions.Read(sourcePath)
	if err != nil {
		return "", "", err
	}

	hash, err = i.hasher.Compute(sourcePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to fingerprint %s: %w", sourcePath, err)
	}

	return version, hash, nil
}
