package docprettify

import (
	"errors"

	"github.com/alnah/go-docprettify/internal/fetch"
	"github.com/alnah/go-docprettify/internal/theme"
)

// Sentinel errors for library operations.
var (
	ErrInvalidDocRoot = errors.New("docroot must be a valid path")
	ErrEmptyMarker    = errors.New("marker cannot be empty")
	ErrEmptySuffix    = errors.New("suffix cannot be empty")
	ErrInvalidAssets  = errors.New("invalid asset layout")

	// Provisioning errors. Every provisioning failure wraps ErrProvision.
	ErrProvision         = errors.New("asset provisioning failed")
	ErrAssetNotInArchive = errors.New("asset not found in archive")
	ErrPlace             = errors.New("placing asset failed")
	ErrCleanup           = errors.New("removing temporary files failed")
	ErrTheme             = errors.New("writing theme stylesheet failed")

	// Walk and rewrite errors.
	ErrWalk      = errors.New("scanning documentation tree failed")
	ErrReadHTML  = errors.New("reading HTML file failed")
	ErrBackup    = errors.New("backing up HTML file failed")
	ErrWriteHTML = errors.New("writing HTML file failed")
)

// Errors surfaced from the download and theme packages, re-exported so
// callers can match them without importing internal packages.
var (
	ErrDownload           = fetch.ErrDownload
	ErrExtract            = fetch.ErrExtract
	ErrUnsupportedArchive = fetch.ErrUnsupportedArchive
	ErrUnsafeArchivePath  = fetch.ErrUnsafeArchivePath
	ErrArchiveTooLarge    = fetch.ErrArchiveTooLarge
	ErrUnknownTheme       = theme.ErrUnknownTheme
)
