package initializer

import "github.com/jakoblorz/go-autoclaude/internal/models"

// State is the classification produced by Inspect.
type State int

const (
	// StateNotInstalled: no data directory.
	StateNotInstalled State = iota
	// StateLegacyNoSource: data directory without metadata, source unreachable.
	StateLegacyNoSource
	// StateLegacy: data directory without metadata, source reachable.
	StateLegacy
	// StateSourceUnreachable: metadata present, source unreachable.
	StateSourceUnreachable
	// StateTracked: metadata present and compared against the source.
	StateTracked
)

func (s State) String() string {
	switch s {
	case StateNotInstalled:
		return "not-installed"
	case StateLegacyNoSource:
		return "legacy-no-source"
	case StateLegacy:
		return "legacy"
	case StateSourceUnreachable:
		return "source-unreachable"
	case StateTracked:
		return "tracked"
	default:
		return "unknown"
	}
}

// Status values reported in VersionCheckResult.Status.
const (
	StatusNotInitialized    = "not-initialized"
	StatusUnknown           = "unknown"
	StatusSourceUnreachable = "source-unreachable"
	StatusUpToDate          = "up-to-date"
	StatusUpdateAvailable   = "update-available"
	StatusMigrated          = "migrated"
)

// Inspection is the read-only result of Inspect.
type Inspection struct {
	State    State
	Result   models.VersionCheckResult
	Metadata *models.VersionMetadata
}
