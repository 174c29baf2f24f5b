package installer

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data

	"haxeget/internal/logger"
)

// Extractor unpacks release archives. It never deletes the source archive;
// the version store decides when an archive is no longer needed.
type Extractor struct{}

// NewExtractor returns an Extractor supporting every Kind except Unknown.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks src into dest and returns the name of the archive's top-level entry.
func (e *Extractor) Extract(src string, kind Kind, dest string) (string, error) {
	logger.Debug("[DEBUG] Extracting %s (%s) to %s\n", src, kind, dest)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", err
	}

	switch kind {
	case Zip:
		return extractZip(src, dest)
	case SevenZip:
		return extract7z(src, dest)
	case TarGz, TarBz2, TarXz, Tar:
		return extractTarArchive(src, kind, dest)
	default:
		return "", fmt.Errorf("unsupported archive format: %s", src)
	}
}

// PeekTopLevelDirName returns the name of the first entry's top-level directory
// without unpacking anything.
func (e *Extractor) PeekTopLevelDirName(src string, kind Kind) (string, error) {
	var first string
	switch kind {
	case Zip:
		r, err := zip.OpenReader(src)
		if err != nil {
			return "", err
		}
		defer r.Close()
		if len(r.File) > 0 {
			first = r.File[0].Name
		}
	case SevenZip:
		r, err := sevenzip.OpenReader(src)
		if err != nil {
			return "", fmt.Errorf("failed to open 7z archive: %w", err)
		}
		defer r.Close()
		if len(r.File) > 0 {
			first = r.File[0].Name
		}
	case TarGz, TarBz2, TarXz, Tar:
		tr, closer, err := openTar(src, kind)
		if err != nil {
			return "", err
		}
		defer closer.Close()
		hdr, err := tr.Next()
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if hdr != nil {
			first = hdr.Name
		}
	default:
		return "", fmt.Errorf("unsupported archive format: %s", src)
	}

	name := topLevelName(first)
	if name == "" {
		return "", fmt.Errorf("archive %s is empty", src)
	}
	return name, nil
}

// topLevelName returns the first path element of an archive entry name.
func topLevelName(entry string) string {
	entry = strings.ReplaceAll(entry, `\`, "/")
	for _, part := range strings.Split(entry, "/") {
		if part != "" && part != "." {
			return part
		}
	}
	return ""
}

// safeJoin resolves an archive entry name under dest, rejecting entries that escape it.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(strings.ReplaceAll(name, `\`, "/")))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes %s", name, dest)
	}
	return target, nil
}

// checkLinkTarget rejects symlink entries that are absolute or resolve outside dest,
// so later entries cannot be written through them.
func checkLinkTarget(dest, target, link string) error {
	link = strings.ReplaceAll(link, `\`, "/")
	if link == "" || strings.HasPrefix(link, "/") || filepath.IsAbs(link) || filepath.VolumeName(link) != "" {
		return fmt.Errorf("archive symlink %s -> %q escapes %s", target, link, dest)
	}
	resolved := filepath.Join(filepath.Dir(target), filepath.FromSlash(link))
	rel, err := filepath.Rel(dest, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return fmt.Errorf("archive symlink %s -> %q escapes %s", target, link, dest)
	}
	return nil
}

// checkParents fails when a directory between dest and target is a symlink.
func checkParents(dest, target string) error {
	rel, err := filepath.Rel(dest, filepath.Dir(target))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return err
	}
	cur := dest
	for _, part := range strings.Split(rel, string(os.PathSeparator)) {
		cur = filepath.Join(cur, part)
		info, err := os.Lstat(cur)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("archive entry %s is written through symlink %s", target, cur)
		}
	}
	return nil
}

// tarCloser closes the decompressor and the underlying file.
type tarCloser struct {
	closers []io.Closer
}

func (c tarCloser) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i].Close())
	}
	return errors.Join(errs...)
}

// openTar opens src and wraps it in the decompressor kind requires.
func openTar(src string, kind Kind) (*tar.Reader, io.Closer, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, nil, err
	}
	closer := tarCloser{closers: []io.Closer{f}}

	var reader io.Reader = f
	switch kind {
	case TarGz:
		gr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, nil, err
		}
		closer.closers = append(closer.closers, gr)
		reader = gr
	case TarBz2:
		reader = bzip2.NewReader(f)
	case TarXz:
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			_ = f.Close()
			return nil, nil, err
		}
		reader = xzr
	}
	return tar.NewReader(reader), closer, nil
}

// extractTarArchive handles tar and compressed tar variants
func extractTarArchive(src string, kind Kind, dest string) (string, error) {
	tr, closer, err := openTar(src, kind)
	if err != nil {
		return "", err
	}
	defer closer.Close()

	var topLevel string

	// Iterate over each file in the archive
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break // End of archive
		}
		if err != nil {
			return "", err
		}

		// Capture the top-level folder name
		if topLevel == "" {
			topLevel = topLevelName(hdr.Name)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return "", err
		}
		if err := checkParents(dest, target); err != nil {
			return "", err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", err
			}
		case tar.TypeReg:
			if err := writeEntry(target, hdr.FileInfo().Mode().Perm(), tr); err != nil {
				return "", err
			}
		case tar.TypeSymlink:
			if err := checkLinkTarget(dest, target, hdr.Linkname); err != nil {
				return "", err
			}
			if err := replaceWith(target, func() error { return os.Symlink(hdr.Linkname, target) }); err != nil {
				return "", err
			}
		case tar.TypeLink:
			source, err := safeJoin(dest, hdr.Linkname)
			if err != nil {
				return "", err
			}
			if err := replaceWith(target, func() error { return os.Link(source, target) }); err != nil {
				return "", err
			}
		default:
			logger.Debug("[DEBUG] Skipping tar entry %s of type %c\n", hdr.Name, hdr.Typeflag)
		}
	}
	return topLevel, nil
}

// extractZip extracts a .zip archive
func extractZip(src, dest string) (string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return "", err
	}
	defer r.Close()

	var topLevel string
	for _, f := range r.File {
		if topLevel == "" {
			topLevel = topLevelName(f.Name)
		}
		if err := extractFile(dest, f.Name, f.FileInfo(), f.Open); err != nil {
			return "", err
		}
	}
	return topLevel, nil
}

// extract7z handles .7z extraction using the sevenzip library
func extract7z(src, dest string) (string, error) {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	var topLevel string
	for _, f := range r.File {
		if topLevel == "" {
			topLevel = topLevelName(f.Name)
		}
		if err := extractFile(dest, f.Name, f.FileInfo(), f.Open); err != nil {
			return "", err
		}
	}
	return topLevel, nil
}

// extractFile writes one zip or 7z member under dest.
func extractFile(dest, name string, info fs.FileInfo, open func() (io.ReadCloser, error)) error {
	target, err := safeJoin(dest, name)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	rc, err := open()
	if err != nil {
		return err
	}
	defer rc.Close()

	mode := info.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	return writeEntry(target, mode, rc)
}

// writeEntry creates target with mode and copies r into it. An existing file is
// unlinked first so a running executable can be replaced.
func writeEntry(target string, mode os.FileMode, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return replaceWith(target, func() error {
		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, r); err != nil {
			_ = out.Close()
			return err
		}
		return out.Close()
	})
}

// replaceWith removes whatever non-directory sits at target and runs create.
func replaceWith(target string, create func() error) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if info, err := os.Lstat(target); err == nil && !info.IsDir() {
		if err := os.Remove(target); err != nil {
			return err
		}
	}
	return create()
}
