package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docprettify/internal/codec"
	"github.com/alnah/go-docprettify/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Defaults mirror the layout javadoc produces: a docs/ root with css/ and js/
// next to the generated pages.
const (
	DefaultDocRoot   = "docs/"
	DefaultMarker    = "<pre"
	DefaultSuffix    = "html"
	DefaultCSSDir    = "css/"
	DefaultJSDir     = "js/"
	DefaultCSSName   = "prettify.css"
	DefaultJSName    = "prettify.js"
	DefaultSourceURL = "https://github.com/googlearchive/code-prettify/archive/refs/heads/master.tar.gz"
	DefaultTimeout   = "2m"
)

// Config holds all configuration for a docprettify run.
type Config struct {
	DocRoot  string         `yaml:"docRoot" toml:"docRoot"`
	Marker   string         `yaml:"marker" toml:"marker"` // Case-insensitive content marker
	Suffix   string         `yaml:"suffix" toml:"suffix"` // File name suffix, e.g. "html"
	Assets   AssetsConfig   `yaml:"assets" toml:"assets"`
	Download DownloadConfig `yaml:"download" toml:"download"`
}

// AssetsConfig defines where the highlighting assets live and where they come from.
type AssetsConfig struct {
	CSSDir    string `yaml:"cssDir" toml:"cssDir"` // Relative to DocRoot
	JSDir     string `yaml:"jsDir" toml:"jsDir"`   // Relative to DocRoot
	CSSName   string `yaml:"cssName" toml:"cssName"`
	JSName    string `yaml:"jsName" toml:"jsName"`
	SourceURL string `yaml:"sourceURL" toml:"sourceURL"` // Archive holding both files
	Theme     string `yaml:"theme" toml:"theme"`         // Optional chroma style for the stylesheet
}

// DownloadConfig defines archive download options.
type DownloadConfig struct {
	Timeout string `yaml:"timeout" toml:"timeout"` // Go duration, e.g. "2m"
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		DocRoot: DefaultDocRoot,
		Marker:  DefaultMarker,
		Suffix:  DefaultSuffix,
		Assets: AssetsConfig{
			CSSDir:    DefaultCSSDir,
			JSDir:     DefaultJSDir,
			CSSName:   DefaultCSSName,
			JSName:    DefaultJSName,
			SourceURL: DefaultSourceURL,
		},
		Download: DownloadConfig{Timeout: DefaultTimeout},
	}
}

// Validate checks that the configuration can drive a run.
// DocRoot existence is checked by the caller, which owns the usage message.
func (c *Config) Validate() error {
	if c.DocRoot == "" {
		return fmt.Errorf("%w: docRoot: must not be empty", ErrInvalidConfig)
	}
	if c.Marker == "" {
		return fmt.Errorf("%w: marker: must not be empty", ErrInvalidConfig)
	}
	if c.Suffix == "" {
		return fmt.Errorf("%w: suffix: must not be empty", ErrInvalidConfig)
	}
	if err := fileutil.ValidateName(c.Assets.CSSName); err != nil {
		return fmt.Errorf("%w: assets.cssName: %v", ErrInvalidConfig, err)
	}
	if err := fileutil.ValidateName(c.Assets.JSName); err != nil {
		return fmt.Errorf("%w: assets.jsName: %v", ErrInvalidConfig, err)
	}
	if err := validateRelativeDir("assets.cssDir", c.Assets.CSSDir); err != nil {
		return err
	}
	if err := validateRelativeDir("assets.jsDir", c.Assets.JSDir); err != nil {
		return err
	}
	if err := validateSourceURL(c.Assets.SourceURL); err != nil {
		return err
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout returns the parsed download timeout. Empty means DefaultTimeout.
func (c *Config) Timeout() (time.Duration, error) {
	raw := c.Download.Timeout
	if raw == "" {
		raw = DefaultTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: download.timeout: %q is not a duration", ErrInvalidConfig, raw)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: download.timeout: must be positive, got %s", ErrInvalidConfig, d)
	}
	return d, nil
}

// validateRelativeDir rejects absolute asset directories and ones escaping
// the doc root, since links are built relative to each page.
func validateRelativeDir(field, dir string) error {
	if err := fileutil.ValidateRelativeDir(dir); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, field, err)
	}
	return nil
}

func validateSourceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: assets.sourceURL: must be an http(s) URL, got %q", ErrInvalidConfig, raw)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their defaults. The result is not
// validated: environment and flags may still override it, so callers run
// Validate after merging.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) || filepath.Ext(nameOrPath) != "" {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	format, err := codec.FormatFor(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := codec.DecodeStrict(format, data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml, .toml
// Tries locations in order: current directory, ~/.config/docprettify/
func resolveConfigPath(name string) (string, error) {
	extensions := codec.Extensions()
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "docprettify", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
