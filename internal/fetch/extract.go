package fetch

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Format identifies an archive layout.
type Format int

// Archive formats.
const (
	FormatUnknown Format = iota
	FormatTarBz2
	FormatTarGz
	FormatTar
	FormatZip
)

// String returns the conventional suffix for the format.
func (f Format) String() string {
	switch f {
	case FormatTarBz2:
		return "tar.bz2"
	case FormatTarGz:
		return "tar.gz"
	case FormatTar:
		return "tar"
	case FormatZip:
		return "zip"
	default:
		return "unknown"
	}
}

// FormatFromName detects the format from a file name suffix.
func FormatFromName(name string) Format {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".tar.bz2"), strings.HasSuffix(lower, ".tbz2"), strings.HasSuffix(lower, ".tbz"):
		return FormatTarBz2
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz
	case strings.HasSuffix(lower, ".tar"):
		return FormatTar
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip
	default:
		return FormatUnknown
	}
}

// tarMagicOffset is where the "ustar" magic sits in a tar header block.
const tarMagicOffset = 257

// FormatFromHeader sniffs the format from the first bytes of an archive.
func FormatFromHeader(head []byte) Format {
	switch {
	case bytes.HasPrefix(head, []byte("BZh")):
		return FormatTarBz2
	case bytes.HasPrefix(head, []byte{0x1f, 0x8b}):
		return FormatTarGz
	case bytes.HasPrefix(head, []byte("PK\x03\x04")):
		return FormatZip
	case len(head) >= tarMagicOffset+5 && string(head[tarMagicOffset:tarMagicOffset+5]) == "ustar":
		return FormatTar
	default:
		return FormatUnknown
	}
}

// Extract unpacks archivePath into dir, creating dir if needed.
// Only directories and regular files are materialized; links are skipped.
func Extract(ctx context.Context, archivePath, dir string) error {
	format, err := detectFormat(archivePath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrExtract, err)
	}

	switch format {
	case FormatZip:
		return extractZip(ctx, archivePath, dir)
	default:
		return extractTar(ctx, archivePath, dir, format)
	}
}

func detectFormat(archivePath string) (Format, error) {
	if f := FormatFromName(archivePath); f != FormatUnknown {
		return f, nil
	}

	file, err := os.Open(archivePath) // #nosec G304 -- archive lives in our temp dir
	if err != nil {
		return FormatUnknown, fmt.Errorf("%w: %v", ErrExtract, err)
	}
	defer func() { _ = file.Close() }()

	head := make([]byte, tarMagicOffset+8)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FormatUnknown, fmt.Errorf("%w: %v", ErrExtract, err)
	}

	if f := FormatFromHeader(head[:n]); f != FormatUnknown {
		return f, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnsupportedArchive, filepath.Base(archivePath))
}

func extractTar(ctx context.Context, archivePath, dir string, format Format) error {
	file, err := os.Open(archivePath) // #nosec G304 -- archive lives in our temp dir
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtract, err)
	}
	defer func() { _ = file.Close() }()

	var r io.Reader = bufio.NewReader(file)
	switch format {
	case FormatTarBz2:
		r = bzip2.NewReader(r)
	case FormatTarGz:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtract, err)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	tr := tar.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, tar.ErrInsecurePath) && hdr != nil {
			return fmt.Errorf("%w: %q", ErrUnsafeArchivePath, hdr.Name)
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtract, err)
		}

		target, err := safeJoin(dir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o750); err != nil {
				return fmt.Errorf("%w: %v", ErrExtract, err)
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		}
	}
}

func extractZip(ctx context.Context, archivePath, dir string) error {
	zr, err := zip.OpenReader(archivePath)
	if errors.Is(err, zip.ErrInsecurePath) {
		if zr != nil {
			_ = zr.Close()
		}
		return fmt.Errorf("%w: %v", ErrUnsafeArchivePath, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtract, err)
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := safeJoin(dir, f.Name)
		if err != nil {
			return err
		}

		mode := f.Mode()
		if mode.IsDir() {
			if err := os.MkdirAll(target, 0o750); err != nil {
				return fmt.Errorf("%w: %v", ErrExtract, err)
			}
			continue
		}
		if !mode.IsRegular() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtract, err)
		}
		err = writeEntry(target, rc, mode.Perm())
		_ = rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// safeJoin joins an archive entry name onto dir, rejecting names that
// would land outside it.
func safeJoin(dir, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: %q", ErrUnsafeArchivePath, name)
	}
	target := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeArchivePath, name)
	}
	return target, nil
}

// writeEntry copies one archive entry to disk, creating parent directories.
func writeEntry(target string, r io.Reader, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrExtract, err)
	}
	if perm == 0 {
		perm = 0o644
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0o600) // #nosec G304 -- target validated by safeJoin
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtract, err)
	}

	n, copyErr := io.Copy(out, io.LimitReader(r, MaxArchiveSize+1))
	closeErr := out.Close()
	if copyErr != nil {
		return fmt.Errorf("%w: %v", ErrExtract, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %v", ErrExtract, closeErr)
	}
	if n > MaxArchiveSize {
		return fmt.Errorf("%w: %w: %s", ErrExtract, ErrArchiveTooLarge, filepath.Base(target))
	}
	return nil
}

// Find locates a file by base name under root. Matches whose parent
// directory is named in preferDirs win, earlier names first. Among the
// rest the shallowest match wins; ties go to the lexically smallest path.
func Find(root, name string, preferDirs ...string) (string, error) {
	var matches []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: scanning %s: %v", ErrExtract, root, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	rank := func(p string) int {
		parent := filepath.Base(filepath.Dir(p))
		for i, dir := range preferDirs {
			if parent == dir {
				return i
			}
		}
		return len(preferDirs)
	}

	sort.Slice(matches, func(i, j int) bool {
		ri, rj := rank(matches[i]), rank(matches[j])
		if ri != rj {
			return ri < rj
		}
		di := strings.Count(matches[i], string(filepath.Separator))
		dj := strings.Count(matches[j], string(filepath.Separator))
		if di != dj {
			return di < dj
		}
		return matches[i] < matches[j]
	})
	return matches[0], nil
}
