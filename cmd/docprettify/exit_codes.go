package main

import (
	"context"
	"errors"

	"github.com/alnah/go-docprettify"
	"github.com/alnah/go-docprettify/internal/config"
)

// Exit codes for the docprettify CLI.
// Status 2 is the tool's reserved failure status: bad usage or config, a
// failed asset download, or a page that could not be backed up.
const (
	ExitSuccess = 0 // All pages processed
	ExitGeneral = 1 // I/O failure during the walk, cancellation, unexpected errors
	ExitUsage   = 2 // Usage, config, provisioning and backup failures
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Interrupted runs are not a provisioning failure even mid-download.
	if errors.Is(err, context.Canceled) {
		return ExitGeneral
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, docprettify.ErrInvalidDocRoot) ||
		errors.Is(err, docprettify.ErrEmptyMarker) ||
		errors.Is(err, docprettify.ErrEmptySuffix) ||
		errors.Is(err, docprettify.ErrInvalidAssets) ||
		errors.Is(err, docprettify.ErrProvision) ||
		errors.Is(err, docprettify.ErrBackup) {
		return ExitUsage
	}

	return ExitGeneral
}
