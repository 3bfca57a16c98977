package docprettify

import (
	"fmt"
	"os"
	"strings"
)

// backupSuffix is appended to a page's path to keep its previous content.
const backupSuffix = ".old"

const (
	bodyOnload    = `onload="windowTitle();"`
	prettyOnload  = `onload="prettyPrint(); windowTitle();"`
	headOpenTag   = "<head>"
	bodyOpenStart = "<body"
)

// Snippet returns the markup inserted after <head> for a page depth levels
// below the docroot.
func Snippet(a AssetConfig, depth int) string {
	return "\n" +
		`    <link href="` + a.CSSHref(depth) + `" type="text/css" rel="stylesheet" />` + "\n" +
		`    <script type="text/javascript" src="` + a.JSHref(depth) + `"></script>` + "\n" +
		"    "
}

// InjectAssets returns content with snippet added after every line containing
// <head> and prettyPrint() added to the javadoc onload hook of <body lines.
// Tags are matched case-insensitively; line endings are preserved.
func InjectAssets(content, snippet string) string {
	var b strings.Builder
	b.Grow(len(content) + len(snippet) + len(prettyOnload))

	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, headOpenTag):
			b.WriteString(line)
			b.WriteString(snippet)
			b.WriteString("\n")
		case strings.Contains(lower, bodyOpenStart):
			b.WriteString(strings.ReplaceAll(line, bodyOnload, prettyOnload))
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}

// Rewriter injects the asset references into HTML pages in place, keeping
// the previous content as <page>.old. Rewriting is not idempotent: a second
// pass over the same page adds the snippet again.
type Rewriter struct {
	cfg    settings
	assets AssetConfig
	stats  Stats
}

// NewRewriter creates a Rewriter for the given asset layout.
func NewRewriter(a AssetConfig, opts ...Option) *Rewriter {
	return &Rewriter{cfg: newSettings(opts), assets: a}
}

// Rewrite updates the page at path, which sits depth levels below the docroot.
func (r *Rewriter) Rewrite(path string, depth int) error {
	r.cfg.logf("appending to file [%s] header", path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadHTML, err)
	}
	original, err := os.ReadFile(path) // #nosec G304 -- path comes from the walked tree
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadHTML, err)
	}

	updated := InjectAssets(string(original), Snippet(r.assets, depth))

	backup := path + backupSuffix
	if err := os.Rename(path, backup); err != nil {
		return fmt.Errorf("%w: %v", ErrBackup, err)
	}

	mode := info.Mode().Perm()
	if err := os.WriteFile(path, []byte(updated), mode); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}

	r.stats.Rewritten++

	if r.cfg.verbose {
		diff, err := unifiedDiff(backup, path, string(original), updated)
		if err != nil {
			return err
		}
		fmt.Fprint(r.cfg.out, diff)
	}
	return nil
}

// Stats returns the counters accumulated so far.
func (r *Rewriter) Stats() Stats {
	return r.stats
}
