package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DocRoot != "docs/" {
		t.Errorf("DocRoot = %q, want %q", cfg.DocRoot, "docs/")
	}
	if cfg.Marker != "<pre" {
		t.Errorf("Marker = %q, want %q", cfg.Marker, "<pre")
	}
	if cfg.Suffix != "html" {
		t.Errorf("Suffix = %q, want %q", cfg.Suffix, "html")
	}
	if cfg.Assets.CSSDir != "css/" || cfg.Assets.JSDir != "js/" {
		t.Errorf("asset dirs = %q, %q, want css/, js/", cfg.Assets.CSSDir, cfg.Assets.JSDir)
	}
	if cfg.Assets.CSSName != "prettify.css" || cfg.Assets.JSName != "prettify.js" {
		t.Errorf("asset names = %q, %q", cfg.Assets.CSSName, cfg.Assets.JSName)
	}
	if cfg.Assets.Theme != "" {
		t.Errorf("Theme = %q, want empty", cfg.Assets.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantErr   bool
		errSubstr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:      "empty doc root",
			mutate:    func(c *Config) { c.DocRoot = "" },
			wantErr:   true,
			errSubstr: "docRoot",
		},
		{
			name:      "empty marker",
			mutate:    func(c *Config) { c.Marker = "" },
			wantErr:   true,
			errSubstr: "marker",
		},
		{
			name:      "empty suffix",
			mutate:    func(c *Config) { c.Suffix = "" },
			wantErr:   true,
			errSubstr: "suffix",
		},
		{
			name:      "css name with separator",
			mutate:    func(c *Config) { c.Assets.CSSName = "css/prettify.css" },
			wantErr:   true,
			errSubstr: "assets.cssName",
		},
		{
			name:      "empty js name",
			mutate:    func(c *Config) { c.Assets.JSName = "" },
			wantErr:   true,
			errSubstr: "assets.jsName",
		},
		{
			name:      "absolute css dir",
			mutate:    func(c *Config) { c.Assets.CSSDir = "/var/www/css" },
			wantErr:   true,
			errSubstr: "assets.cssDir",
		},
		{
			name:      "js dir escaping root",
			mutate:    func(c *Config) { c.Assets.JSDir = "../js" },
			wantErr:   true,
			errSubstr: "assets.jsDir",
		},
		{
			name:   "nested asset dir",
			mutate: func(c *Config) { c.Assets.CSSDir = "resources/css" },
		},
		{
			name:   "empty asset dir means doc root",
			mutate: func(c *Config) { c.Assets.JSDir = "" },
		},
		{
			name:      "ftp source url",
			mutate:    func(c *Config) { c.Assets.SourceURL = "ftp://example.com/prettify.tar.bz2" },
			wantErr:   true,
			errSubstr: "assets.sourceURL",
		},
		{
			name:      "source url without host",
			mutate:    func(c *Config) { c.Assets.SourceURL = "https:///prettify.zip" },
			wantErr:   true,
			errSubstr: "assets.sourceURL",
		},
		{
			name:      "invalid timeout",
			mutate:    func(c *Config) { c.Download.Timeout = "soon" },
			wantErr:   true,
			errSubstr: "download.timeout",
		},
		{
			name:      "negative timeout",
			mutate:    func(c *Config) { c.Download.Timeout = "-1s" },
			wantErr:   true,
			errSubstr: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("error = %v, want ErrInvalidConfig", err)
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Timeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Download.Timeout = ""

	got, err := cfg.Timeout()
	if err != nil {
		t.Fatalf("Timeout() error = %v", err)
	}
	if got != 2*time.Minute {
		t.Errorf("Timeout() = %v, want 2m", got)
	}

	cfg.Download.Timeout = "45s"
	got, _ = cfg.Timeout()
	if got != 45*time.Second {
		t.Errorf("Timeout() = %v, want 45s", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("yaml overrides defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "docprettify.yaml")
		content := `docRoot: build/javadoc/
assets:
  theme: monokai
  cssDir: styles/
download:
  timeout: 30s
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.DocRoot != "build/javadoc/" {
			t.Errorf("DocRoot = %q", cfg.DocRoot)
		}
		if cfg.Assets.Theme != "monokai" {
			t.Errorf("Theme = %q", cfg.Assets.Theme)
		}
		if cfg.Assets.CSSDir != "styles/" {
			t.Errorf("CSSDir = %q", cfg.Assets.CSSDir)
		}
		// Untouched fields keep defaults.
		if cfg.Assets.JSName != DefaultJSName {
			t.Errorf("JSName = %q, want default %q", cfg.Assets.JSName, DefaultJSName)
		}
		if cfg.Marker != DefaultMarker {
			t.Errorf("Marker = %q, want default", cfg.Marker)
		}
		if d, _ := cfg.Timeout(); d != 30*time.Second {
			t.Errorf("Timeout = %v, want 30s", d)
		}
	})

	t.Run("toml overrides defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "docprettify.toml")
		content := `docRoot = "site/api"
suffix = "htm"

[assets]
sourceURL = "https://mirror.example.com/prettify.zip"
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.DocRoot != "site/api" || cfg.Suffix != "htm" {
			t.Errorf("DocRoot/Suffix = %q/%q", cfg.DocRoot, cfg.Suffix)
		}
		if cfg.Assets.SourceURL != "https://mirror.example.com/prettify.zip" {
			t.Errorf("SourceURL = %q", cfg.Assets.SourceURL)
		}
		if cfg.Assets.CSSName != DefaultCSSName {
			t.Errorf("CSSName = %q, want default", cfg.Assets.CSSName)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("docroot: docs/\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid values left for Validate", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("marker: \"\"\ndownload:\n  timeout: soon\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v, want nil", err)
		}
		if cfg.Download.Timeout != "soon" {
			t.Errorf("Timeout = %q, want file value", cfg.Download.Timeout)
		}
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadConfig("config.json")
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("missing name lists tried paths", func(t *testing.T) {
		_, err := LoadConfig("definitely-not-a-docprettify-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "definitely-not-a-docprettify-config.toml") {
			t.Errorf("error should list tried .toml path: %v", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig() error = %v, want ErrEmptyConfigName", err)
		}
	})
}
