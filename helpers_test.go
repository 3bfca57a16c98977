package docprettify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates path (and its parents) below root with content.
func writeFile(t *testing.T, root, path, content string) string {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return full
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// fakeSource serves a fixed file tree instead of downloading an archive.
type fakeSource struct {
	files      map[string]string // archive-relative path -> content
	fetchErr   error
	extractErr error

	fetches  int
	archives []string
}

var _ ArtifactSource = (*fakeSource)(nil)

var errFakeFetch = errors.New("fake fetch failure")

func (f *fakeSource) Fetch(_ context.Context, _, dir string) (string, error) {
	f.fetches++
	if f.fetchErr != nil {
		return "", f.fetchErr
	}
	archive := filepath.Join(dir, "fake.tar.gz")
	if err := os.WriteFile(archive, []byte("fake"), 0o600); err != nil {
		return "", err
	}
	f.archives = append(f.archives, archive)
	return archive, nil
}

func (f *fakeSource) Extract(_ context.Context, _, dir string) error {
	if f.extractErr != nil {
		return f.extractErr
	}
	for name, content := range f.files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			return err
		}
		if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
			return err
		}
	}
	return nil
}

// prettifyRelease mimics the layout of the upstream master archive: built
// files in loader/, readable sources in src/, and unbuilt modules in
// js-modules/ that sort ahead of both.
func prettifyRelease() map[string]string {
	return map[string]string{
		"code-prettify-master/js-modules/prettify.js":      "include(\"regexpPrecederPatterns.pl\");\n",
		"code-prettify-master/js-modules/prettify.css":     "/* module css */\n",
		"code-prettify-master/loader/prettify.css":         "/* upstream css */\n",
		"code-prettify-master/loader/prettify.js":          "/* upstream js */\n",
		"code-prettify-master/loader/skins/desert.css":     "/* desert */\n",
		"code-prettify-master/src/prettify.css":            "/* src css */\n",
		"code-prettify-master/src/prettify.js":             "/* src js */\n",
		"code-prettify-master/styles/desert.css":           "/* desert */\n",
		"code-prettify-master/distrib/google/prettify.js":  "/* old js */\n",
		"code-prettify-master/distrib/google/prettify.css": "/* old css */\n",
	}
}
