package main

import (
	"errors"
	"os"

	nb2md "github.com/alnah/go-nb2md"
)

// Exit codes for the nb2md-check CLI. A validation pass that found invalid
// images is not an operational failure: the full report is still produced
// and the code signals the finding.
const (
	ExitSuccess = 0 // All images valid
	ExitInvalid = 1 // One or more images failed validation
	ExitUsage   = 2 // Invalid flags or arguments
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitData    = 4 // Cross-reference notebook malformed
	ExitGeneral = 5 // Unexpected error
)

// exitCodeFor returns the appropriate exit code for an operational error.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, nb2md.ErrMalformedNotebook) ||
		errors.Is(err, nb2md.ErrEmptyNotebook) {
		return ExitData
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWritePreview) ||
		errors.Is(err, ErrWriteReport) {
		return ExitIO
	}

	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrFrontMatterParse) {
		return ExitUsage
	}

	return ExitGeneral
}
