package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"haxeget/internal/logger"
	"haxeget/internal/paths"
)

// LinkKind is the kind of filesystem object a link exposes.
type LinkKind int

const (
	// FileLink exposes an executable or other regular file.
	FileLink LinkKind = iota
	// DirLink exposes a directory, e.g. the standard library.
	DirLink
)

func (k LinkKind) String() string {
	if k == DirLink {
		return "directory"
	}
	return "file"
}

// verify checks that target is the kind of object k links to.
func (k LinkKind) verify(target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if (k == DirLink) != info.IsDir() {
		return fmt.Errorf("%s is not a %s", target, k)
	}
	return nil
}

// create points path at target. os.Symlink picks a directory link on Windows when
// the target is a directory, so both kinds share the same call once verified.
func (k LinkKind) create(target, path string) error {
	if err := k.verify(target); err != nil {
		return err
	}
	return os.Symlink(target, path)
}

// Link is one exposed tool: Name is the fixed path under the store root and Target
// is the path inside an extracted directory, both slash separated.
type Link struct {
	Name   string
	Target string
	Kind   LinkKind
}

// LinkSwitcher creates and removes the links exposing one extracted directory.
type LinkSwitcher struct {
	layout paths.Layout
}

// NewLinkSwitcher returns a switcher for the links under layout.Root.
func NewLinkSwitcher(layout paths.Layout) *LinkSwitcher {
	return &LinkSwitcher{layout: layout}
}

// Path returns the fixed location of l.
func (s *LinkSwitcher) Path(l Link) string {
	return s.layout.LinkPath(filepath.FromSlash(l.Name))
}

// Target returns where l points for the extracted directory dir.
func (s *LinkSwitcher) Target(dir string, l Link) string {
	return filepath.Join(s.layout.ExtractedPath(dir), filepath.FromSlash(l.Target))
}

// Switch points every link in links at dir. Each fixed path is cleared first, so a
// run interrupted half way is repaired by the next Switch.
func (s *LinkSwitcher) Switch(dir string, links []Link) error {
	for _, l := range links {
		path := s.Path(l)
		target := s.Target(dir, l)
		if err := removeLink(path); err != nil {
			return pathErr("remove link", path, err)
		}
		logger.Debug("[DEBUG] Linking %s -> %s (%s)\n", path, target, l.Kind)
		if err := l.Kind.create(target, path); err != nil {
			return &LinkError{Link: path, Target: target, Err: err}
		}
	}
	return nil
}

// Clear removes every link in links. Missing links are not an error.
func (s *LinkSwitcher) Clear(links []Link) error {
	for _, l := range links {
		path := s.Path(l)
		logger.Debug("[DEBUG] Removing link %s\n", path)
		if err := removeLink(path); err != nil {
			return pathErr("remove link", path, err)
		}
	}
	return nil
}

// removeLink deletes whatever sits at path: a link, a file, or a real directory.
func removeLink(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
