package docprettify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-docprettify/internal/fetch"
	"github.com/alnah/go-docprettify/internal/fileutil"
	"github.com/alnah/go-docprettify/internal/theme"
)

// ArtifactSource retrieves and unpacks the asset archive.
type ArtifactSource interface {
	// Fetch downloads rawURL into dir and returns the saved archive path.
	Fetch(ctx context.Context, rawURL, dir string) (string, error)
	// Extract unpacks archivePath into dir.
	Extract(ctx context.Context, archivePath, dir string) error
}

// Compile-time interface implementation check.
var _ ArtifactSource = (*fetch.HTTPSource)(nil)

// Provisioner makes sure the stylesheet and script exist under the docroot.
type Provisioner struct {
	cfg       settings
	installed bool
}

// NewProvisioner creates a Provisioner. Without WithSource, archives are
// downloaded over HTTP(S) using the configured timeout.
func NewProvisioner(opts ...Option) *Provisioner {
	cfg := newSettings(opts)
	if cfg.source == nil {
		cfg.source = fetch.NewHTTPSource(cfg.timeout)
	}
	return &Provisioner{cfg: cfg}
}

// Installed reports whether the last Ensure call fetched the assets.
func (p *Provisioner) Installed() bool {
	return p.installed
}

// Ensure installs the asset pair when either file is missing, then writes the
// themed stylesheet when a theme is configured. Every failure wraps ErrProvision.
func (p *Provisioner) Ensure(ctx context.Context, a AssetConfig) error {
	p.installed = false

	if a.Theme != "" && !theme.Exists(a.Theme) {
		return fmt.Errorf("%w: %w: %q", ErrProvision, ErrUnknownTheme, a.Theme)
	}

	if fileutil.FileExists(a.CSSPath()) && fileutil.FileExists(a.JSPath()) {
		p.cfg.logf("assets are ok: %s, %s", a.CSSPath(), a.JSPath())
	} else {
		if err := p.install(ctx, a); err != nil {
			return fmt.Errorf("%w: %w", ErrProvision, err)
		}
		p.installed = true
	}

	if a.Theme != "" {
		if err := writeTheme(a); err != nil {
			return fmt.Errorf("%w: %w", ErrProvision, err)
		}
		p.cfg.logf("wrote %q theme to %s", a.Theme, a.CSSPath())
	}
	return nil
}

// install fetches, extracts and places both assets, then removes the
// temporary directory.
func (p *Provisioner) install(ctx context.Context, a AssetConfig) (err error) {
	if a.SourceURL == "" {
		return fmt.Errorf("%w: no source URL configured", ErrDownload)
	}

	tmp, err := os.MkdirTemp("", "docprettify-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer func() {
		p.cfg.logf("removing %s", tmp)
		if rmErr := os.RemoveAll(tmp); rmErr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrCleanup, rmErr)
		}
	}()

	p.cfg.logf("assets not found, downloading %s", a.SourceURL)
	archive, err := p.cfg.source.Fetch(ctx, a.SourceURL, tmp)
	if err != nil {
		return err
	}

	p.cfg.logf("unpacking %s", filepath.Base(archive))
	extracted := filepath.Join(tmp, "extracted")
	if err := p.cfg.source.Extract(ctx, archive, extracted); err != nil {
		return err
	}

	if err := p.place(extracted, a.CSSName, a.CSSPath()); err != nil {
		return err
	}
	return p.place(extracted, a.JSName, a.JSPath())
}

// archiveAssetDirs lists, in order, the archive directories holding the
// built assets. The upstream master archive also ships unbuilt sources
// under js-modules/ that only work through its build.
var archiveAssetDirs = []string{"loader", "src"}

// place moves the file called name from the extracted tree to dest.
func (p *Provisioner) place(extracted, name, dest string) error {
	src, err := fetch.Find(extracted, name, archiveAssetDirs...)
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrAssetNotInArchive, name)
		}
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrPlace, err)
	}
	if err := fileutil.MoveFile(src, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrPlace, err)
	}
	p.cfg.logf("installed %s", dest)
	return nil
}

// writeTheme replaces the stylesheet with one rendered from a chroma style.
func writeTheme(a AssetConfig) error {
	css, err := theme.Stylesheet(a.Theme)
	if err != nil {
		return err
	}
	dest := a.CSSPath()
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrTheme, err)
	}
	if err := os.WriteFile(dest, []byte(css), 0o644); err != nil { // #nosec G306 -- stylesheet is served to browsers
		return fmt.Errorf("%w: %v", ErrTheme, err)
	}
	return nil
}
