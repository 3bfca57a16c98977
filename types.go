package docprettify

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docprettify/internal/config"
	"github.com/alnah/go-docprettify/internal/fileutil"
)

// Defaults matching a javadoc-style documentation tree. They are shared
// with the config file defaults.
const (
	DefaultMarker  = config.DefaultMarker
	DefaultSuffix  = config.DefaultSuffix
	DefaultCSSDir  = config.DefaultCSSDir
	DefaultJSDir   = config.DefaultJSDir
	DefaultCSSName = config.DefaultCSSName
	DefaultJSName  = config.DefaultJSName
)

// DefaultSourceURL is the archive fetched when the assets are missing.
const DefaultSourceURL = config.DefaultSourceURL

// defaultTimeout bounds a single archive download.
const defaultTimeout = 2 * time.Minute

// AssetConfig locates the highlighting assets relative to a documentation root.
// CSSDir and JSDir are relative to DocRoot and may be empty.
type AssetConfig struct {
	DocRoot   string
	CSSDir    string
	JSDir     string
	CSSName   string
	JSName    string
	SourceURL string
	Theme     string // chroma style used to generate the stylesheet; empty keeps the archive's
}

// DefaultAssetConfig returns the stock layout for docRoot.
func DefaultAssetConfig(docRoot string) AssetConfig {
	return AssetConfig{
		DocRoot:   docRoot,
		CSSDir:    DefaultCSSDir,
		JSDir:     DefaultJSDir,
		CSSName:   DefaultCSSName,
		JSName:    DefaultJSName,
		SourceURL: DefaultSourceURL,
	}
}

// CSSPath returns the on-disk location of the stylesheet.
func (a AssetConfig) CSSPath() string {
	return filepath.Join(a.DocRoot, filepath.FromSlash(a.CSSDir), a.CSSName)
}

// JSPath returns the on-disk location of the script.
func (a AssetConfig) JSPath() string {
	return filepath.Join(a.DocRoot, filepath.FromSlash(a.JSDir), a.JSName)
}

// CSSHref returns the stylesheet reference for a page depth levels below DocRoot.
func (a AssetConfig) CSSHref(depth int) string {
	return relPrefix(depth) + fileutil.URLDir(a.CSSDir) + a.CSSName
}

// JSHref returns the script reference for a page depth levels below DocRoot.
func (a AssetConfig) JSHref(depth int) string {
	return relPrefix(depth) + fileutil.URLDir(a.JSDir) + a.JSName
}

func relPrefix(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat("../", depth)
}

// Validate checks that the asset names are usable file names and that both
// directories stay inside DocRoot.
func (a AssetConfig) Validate() error {
	if err := fileutil.ValidateName(a.CSSName); err != nil {
		return fmt.Errorf("%w: css name: %w", ErrInvalidAssets, err)
	}
	if err := fileutil.ValidateName(a.JSName); err != nil {
		return fmt.Errorf("%w: js name: %w", ErrInvalidAssets, err)
	}
	if err := fileutil.ValidateRelativeDir(a.CSSDir); err != nil {
		return fmt.Errorf("%w: css dir: %w", ErrInvalidAssets, err)
	}
	if err := fileutil.ValidateRelativeDir(a.JSDir); err != nil {
		return fmt.Errorf("%w: js dir: %w", ErrInvalidAssets, err)
	}
	return nil
}

// Job describes one prettify run over a documentation tree.
type Job struct {
	Assets AssetConfig
	Marker string // case-insensitive content marker; empty means DefaultMarker
	Suffix string // file name suffix; empty means DefaultSuffix
}

// withDefaults fills empty marker and suffix.
func (j Job) withDefaults() Job {
	if j.Marker == "" {
		j.Marker = DefaultMarker
	}
	if j.Suffix == "" {
		j.Suffix = DefaultSuffix
	}
	return j
}

// Validate checks the job before any file is touched.
func (j Job) Validate() error {
	if !fileutil.DirExists(j.Assets.DocRoot) {
		return fmt.Errorf("%w: %q", ErrInvalidDocRoot, j.Assets.DocRoot)
	}
	if j.Marker == "" {
		return ErrEmptyMarker
	}
	if j.Suffix == "" {
		return ErrEmptySuffix
	}
	return j.Assets.Validate()
}

// Stats summarizes a run.
type Stats struct {
	Installed bool // assets were fetched during this run
	Rewritten int  // HTML files rewritten
}

// Option configures a Service, Provisioner, Rewriter or walk.
type Option func(*settings)

// settings holds options shared by every component.
type settings struct {
	out     io.Writer
	verbose bool
	source  ArtifactSource
	timeout time.Duration
}

func newSettings(opts []Option) settings {
	s := settings{out: io.Discard, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// logf writes a progress line when verbose output is enabled.
func (s settings) logf(format string, args ...any) {
	if !s.verbose {
		return
	}
	fmt.Fprintf(s.out, format+"\n", args...)
}

// WithOutput sets the writer for verbose progress and diffs.
// A nil writer discards output.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w == nil {
			w = io.Discard
		}
		s.out = w
	}
}

// WithVerbose enables progress lines and unified diffs of rewritten files.
func WithVerbose(v bool) Option {
	return func(s *settings) {
		s.verbose = v
	}
}

// WithSource replaces the archive source (tests use a local one).
func WithSource(src ArtifactSource) Option {
	return func(s *settings) {
		s.source = src
	}
}

// WithTimeout sets the download timeout of the default HTTP source.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docprettify: WithTimeout duration must be positive")
	}
	return func(s *settings) {
		s.timeout = d
	}
}
