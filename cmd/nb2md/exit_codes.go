package main

import (
	"errors"
	"os"

	nb2md "github.com/alnah/go-nb2md"
	"github.com/alnah/go-nb2md/internal/config"
	"github.com/alnah/go-nb2md/internal/dateutil"
)

// Exit codes for the nb2md CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitData    = 4 // Malformed or undecodable notebook content
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Notebook content errors (exit 4)
	if errors.Is(err, nb2md.ErrMalformedNotebook) ||
		errors.Is(err, nb2md.ErrEmptyNotebook) ||
		errors.Is(err, nb2md.ErrImageDecode) {
		return ExitData
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrWriteMarkdown) ||
		errors.Is(err, ErrWriteImage) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNotebookExtension) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, nb2md.ErrInvalidMode) ||
		errors.Is(err, nb2md.ErrDocName) ||
		errors.Is(err, nb2md.ErrNilNotebook) {
		return ExitUsage
	}

	return ExitGeneral
}
