package initializer

import "errors"

// Precondition failures. They surface as InitializationResult.Error, wrapped
// with the offending path.
var (
	ErrSourceNotFound     = errors.New("auto-claude source not found")
	ErrProjectNotFound    = errors.New("project directory not found")
	ErrAlreadyInitialized = errors.New("project already initialized (.auto-claude exists)")
	ErrNotInitialized     = errors.New("no .auto-claude folder found to update, initialize first")
)
