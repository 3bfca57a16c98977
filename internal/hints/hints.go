// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docprettify/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// UserConfigDir resolves the per-user configuration directory.
var UserConfigDir = os.UserConfigDir

// proxyVars are the variables net/http reads for proxy settings.
var proxyVars = []string{"HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy"}

// ForDownload returns hints for archive download errors.
// Suggests proxy settings when none are configured and offline installation
// when running in CI or a container.
func ForDownload(cssPath, jsPath string) string {
	var hints []string

	if !proxyConfigured() {
		hints = append(hints, "behind a proxy, set HTTPS_PROXY")
	}

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if inCI || IsInContainer() {
		hints = append(hints, "commit "+cssPath+" and "+jsPath+" to skip the download")
	}

	hints = append(hints, "use --source-url to fetch from a mirror")
	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow downloads.
func ForTimeout() string {
	return format("for slow connections, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(name string) string {
	hint := "use --config /path/to/file.yaml"

	if dir, err := UserConfigDir(); err == nil && name != "" && !fileutil.IsFilePath(name) && filepath.Ext(name) == "" {
		hint += " or create " + filepath.Join(dir, "docprettify", name+".yaml")
	}

	return format(hint)
}

// ForDocRoot returns hints for an invalid documentation root.
func ForDocRoot() string {
	return format("pass the generated documentation directory with --docroot")
}

// ForBackup returns hints for backup rename errors.
func ForBackup() string {
	return format("check the page's directory is writable")
}

// ForThemeNotFound returns hints for unknown theme errors.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func proxyConfigured() bool {
	for _, name := range proxyVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
