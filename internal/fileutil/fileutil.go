// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath    = errors.New("path cannot be empty")
	ErrSamePath     = errors.New("source and destination are the same file")
	ErrNotRegular   = errors.New("not a regular file")
	ErrNameHasSlash = errors.New("name contains path separator or null byte")
	ErrAbsoluteDir  = errors.New("directory must be relative")
	ErrDirEscapes   = errors.New("directory escapes its root")
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
// Symlinks are followed.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "docprettify" -> false (name)
//   - "./docprettify.yaml" -> true (relative path)
//   - "/etc/docprettify.toml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// ValidateName checks that a file name is a single path element.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyPath
	}
	if strings.ContainsAny(name, "/\\\x00") || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrNameHasSlash, name)
	}
	return nil
}

// ValidateRelativeDir checks that dir is relative and has no ".." element,
// with either separator style. An empty dir is valid.
func ValidateRelativeDir(dir string) error {
	if dir == "" {
		return nil
	}
	slashed := strings.ReplaceAll(dir, "\\", "/")
	if strings.HasPrefix(slashed, "/") || filepath.IsAbs(dir) {
		return fmt.Errorf("%w: %q", ErrAbsoluteDir, dir)
	}
	for _, part := range strings.Split(slashed, "/") {
		if part == ".." {
			return fmt.Errorf("%w: %q", ErrDirEscapes, dir)
		}
	}
	return nil
}

// URLDir normalizes a directory for use inside an HTML attribute:
// forward slashes, no leading "./", and exactly one trailing slash.
// An empty dir stays empty.
func URLDir(dir string) string {
	dir = strings.ReplaceAll(dir, "\\", "/")
	dir = strings.TrimPrefix(dir, "./")
	dir = strings.TrimRight(dir, "/")
	if dir == "" || dir == "." {
		return ""
	}
	return dir + "/"
}

// MoveFile moves src to dst, replacing dst if it exists.
// Falls back to copy+remove when a rename crosses filesystems.
func MoveFile(src, dst string) error {
	if src == "" || dst == "" {
		return ErrEmptyPath
	}
	if filepath.Clean(src) == filepath.Clean(dst) {
		return fmt.Errorf("%w: %s", ErrSamePath, src)
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return fmt.Errorf("renaming %s: %w", src, err)
	}

	if err := CopyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("removing %s after copy: %w", src, err)
	}
	return nil
}

// CopyFile copies a regular file, preserving its permission bits.
func CopyFile(src, dst string) (err error) {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegular, src)
	}

	in, err := os.Open(src) // #nosec G304 -- caller controls the path
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()) // #nosec G304 -- caller controls the path
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", dst, closeErr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}

// isCrossDevice reports whether a rename failed because src and dst
// live on different filesystems.
func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return false
	}
	return errors.Is(linkErr.Err, syscall.EXDEV)
}
