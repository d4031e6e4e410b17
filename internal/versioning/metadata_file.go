package versioning

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/jakoblorz/go-autoclaude/internal/models"
)

// MetadataFileName is the metadata record inside the installed data directory.
const MetadataFileName = ".version.json"

// MetadataFile reads and writes .version.json
type MetadataFile struct {
	fs  filesystem.FileSystem
	now func() time.Time
}

// NewMetadataFile creates a new MetadataFile instance
func NewMetadataFile(fs filesystem.FileSystem) *MetadataFile {
	return &MetadataFile{fs: fs, now: time.Now}
}

// WithClock overrides the time source used for timestamps.
func (mf *MetadataFile) WithClock(now func() time.Time) *MetadataFile {
	mf.now = now
	return mf
}

// Path returns the location of the metadata record for installedDir.
func (mf *MetadataFile) Path(installedDir string) string {
	return filepath.Join(installedDir, MetadataFileName)
}

// Read returns the stored metadata. A missing, unreadable or malformed file
// is reported as absent (ok == false); callers treat all three the same.
func (mf *MetadataFile) Read(installedDir string) (meta *models.VersionMetadata, ok bool) {
	data, err := mf.fs.ReadFile(mf.Path(installedDir))
	if err != nil {
		return nil, false
	}

	var m models.VersionMetadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}

	return &m, true
}

// Write overwrites the record in place (no temp file + rename). A torn write
// reads back as absent on the next Read.
func (mf *MetadataFile) Write(installedDir string, meta *models.VersionMetadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode version metadata: %w", err)
	}

	if err := mf.fs.WriteFile(mf.Path(installedDir), data, 0644); err != nil {
		return fmt.Errorf("failed to write version metadata: %w", err)
	}

	return nil
}

// New builds a fresh record with initializedAt == updatedAt == now.
func (mf *MetadataFile) New(version, sourceHash, sourcePath string) *models.VersionMetadata {
	now := mf.timestamp()
	return &models.VersionMetadata{
		Version:       version,
		SourceHash:    sourceHash,
		SourcePath:    sourcePath,
		InitializedAt: now,
		UpdatedAt:     now,
	}
}

// Refresh builds a record that keeps initializedAt from previous (when
// present) and stamps updatedAt with now.
func (mf *MetadataFile) Refresh(previous *models.VersionMetadata, version, sourceHash, sourcePath string) *models.VersionMetadata {
	meta := mf.New(version, sourceHash, sourcePath)
	if previous != nil && previous.InitializedAt != "" {
		meta.InitializedAt = previous.InitializedAt
	}
	return meta
}

func (mf *MetadataFile) timestamp() string {
	return mf.now().UTC().Format(time.RFC3339Nano)
}
