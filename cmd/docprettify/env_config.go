package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-docprettify/internal/config"
)

// envPrefix marks the variables read by docprettify.
const envPrefix = "DOCPRETTIFY_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	ConfigPath string // DOCPRETTIFY_CONFIG: config file name or path
	DocRoot    string // DOCPRETTIFY_DOC_ROOT: documentation root
	SourceURL  string // DOCPRETTIFY_SOURCE_URL: asset archive URL
	Theme      string // DOCPRETTIFY_THEME: chroma style
	Timeout    string // DOCPRETTIFY_TIMEOUT: download timeout
}

// knownEnvVars lists valid DOCPRETTIFY_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCPRETTIFY_CONFIG":     true,
	"DOCPRETTIFY_DOC_ROOT":   true,
	"DOCPRETTIFY_SOURCE_URL": true,
	"DOCPRETTIFY_THEME":      true,
	"DOCPRETTIFY_TIMEOUT":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("DOCPRETTIFY_CONFIG"),
		DocRoot:    os.Getenv("DOCPRETTIFY_DOC_ROOT"),
		SourceURL:  os.Getenv("DOCPRETTIFY_SOURCE_URL"),
		Theme:      os.Getenv("DOCPRETTIFY_THEME"),
		Timeout:    os.Getenv("DOCPRETTIFY_TIMEOUT"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized DOCPRETTIFY_* variables.
// Helps catch typos like DOCPRETTIFY_DOCROOT instead of DOCPRETTIFY_DOC_ROOT.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Flags are applied afterwards, giving flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.DocRoot != "" {
		cfg.DocRoot = env.DocRoot
	}
	if env.SourceURL != "" {
		cfg.Assets.SourceURL = env.SourceURL
	}
	if env.Theme != "" {
		cfg.Assets.Theme = env.Theme
	}
	if env.Timeout != "" {
		cfg.Download.Timeout = env.Timeout
	}
}
