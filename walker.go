package docprettify

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Handler is called for every matching file with its depth below the walk root.
// Files directly in the root have depth 0.
type Handler func(path string, depth int) error

// Walk visits every file under root whose name ends with suffix and whose
// content contains marker, ignoring case.
func Walk(root, marker, suffix string, handler Handler) error {
	return WalkContext(context.Background(), root, marker, suffix, handler)
}

// WalkContext is Walk with cancellation and options. Directories are visited
// breadth-first in os.ReadDir order; symlinked directories count as
// directories and each real directory is entered once. Read failures wrap
// ErrWalk. Handler errors stop the walk and are returned unchanged.
func WalkContext(ctx context.Context, root, marker, suffix string, handler Handler, opts ...Option) error {
	cfg := newSettings(opts)
	needle := bytes.ToLower([]byte(marker))

	type dirAt struct {
		path  string
		depth int
	}
	queue := []dirAt{{path: root}}
	seen := map[string]bool{}

	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		if real, err := filepath.EvalSymlinks(dir.path); err == nil {
			if seen[real] {
				continue
			}
			seen[real] = true
		}

		cfg.logf("checking dir [%s]", dir.path)
		entries, err := os.ReadDir(dir.path)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWalk, err)
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}

			path := filepath.Join(dir.path, entry.Name())
			if isDir(path, entry) {
				cfg.logf("looping directory [%s] (depth=%d)", path, dir.depth)
				queue = append(queue, dirAt{path: path, depth: dir.depth + 1})
				continue
			}
			if !strings.HasSuffix(entry.Name(), suffix) {
				continue
			}

			cfg.logf("checking file [%s]", path)
			data, err := os.ReadFile(path) // #nosec G304 -- path comes from the walked tree
			if err != nil {
				return fmt.Errorf("%w: %v", ErrWalk, err)
			}
			if !bytes.Contains(bytes.ToLower(data), needle) {
				continue
			}

			cfg.logf("file [%s] contains %s, updating", path, marker)
			if err := handler(path, dir.depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// isDir reports whether entry is a directory or a symlink resolving to one.
func isDir(path string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
