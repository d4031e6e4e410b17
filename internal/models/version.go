package models

import (
	"strings"

	"golang.org/x/mod/semver"
)

// DefaultVersion is reported when a source tree has no VERSION file.
const DefaultVersion = "0.0.0"

// VersionMetadata is persisted as .version.json inside the installed data directory.
type VersionMetadata struct {
	// Version is the source tree's VERSION at the time of the last write
	Version string `json:"version"`

	// SourceHash is the 16 hex char fingerprint of the tree at the last write
	SourceHash string `json:"sourceHash"`

	// SourcePath is the source tree that was fingerprinted
	SourcePath string `json:"sourcePath"`

	// InitializedAt is set once and carried over by every later write
	InitializedAt string `json:"initializedAt"`

	// UpdatedAt is refreshed on every write
	UpdatedAt string `json:"updatedAt"`
}

// VersionCheckResult describes the install/update status of a project.
type VersionCheckResult struct {
	IsInitialized   bool   `json:"isInitialized"`
	CurrentVersion  string `json:"currentVersion"`
	SourceVersion   string `json:"sourceVersion"`
	UpdateAvailable bool   `json:"updateAvailable"`
	InstalledHash   string `json:"installedHash,omitempty"`
	SourceHash      string `json:"sourceHash,omitempty"`
	SourcePath      string `json:"sourcePath,omitempty"`

	// Status names the branch that produced the result, e.g. "update-available"
	Status string `json:"status"`
}

// InitializationResult is returned by initialize and update. Failures are
// reported through Success/Error, never as a Go error.
type InitializationResult struct {
	Success   bool   `json:"success"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
	WasUpdate bool   `json:"wasUpdate"`
}

// VersionDirection tells whether moving from one version string to another
// is an upgrade. It is informational only.
type VersionDirection string

const (
	DirectionSame      VersionDirection = "same"
	DirectionUpgrade   VersionDirection = "upgrade"
	DirectionDowngrade VersionDirection = "downgrade"
	DirectionUnknown   VersionDirection = "unknown"
)

// CompareVersions compares two opaque version strings. When both are valid
// semantic versions (with or without a leading "v") the direction is
// derived from semver ordering, otherwise only equality is known.
func CompareVersions(from, to string) VersionDirection {
	if strings.TrimSpace(from) == strings.TrimSpace(to) {
		return DirectionSame
	}

	a, b := canonical(from), canonical(to)
	if !semver.IsValid(a) || !semver.IsValid(b) {
		return DirectionUnknown
	}

	switch semver.Compare(a, b) {
	case -1:
		return DirectionUpgrade
	case 1:
		return DirectionDowngrade
	default:
		return DirectionSame
	}
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
