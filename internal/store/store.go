// Package store is the version store: the ledger of installed versions, the
// current version pointer, and the links that expose exactly one version at a time.
//
// Every version name is Absent (no ledger entry), Installed (ledger entry), or
// Active (ledger entry, pointer, and links all naming it). Install moves Absent to
// Installed, Use moves Installed to Active, Uninstall returns any state to Absent.
//
// Concurrent invocations against one store root are only safe when the store lock
// is enabled; without it two mutations may interleave their file rewrites.
package store

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"strings"

	"haxeget/internal/installer"
	"haxeget/internal/logger"
	"haxeget/internal/paths"
	"haxeget/internal/state"
)

// Extractor unpacks an archive into a directory and reports the archive's top-level
// entry name.
type Extractor interface {
	Extract(archivePath string, kind installer.Kind, dest string) (string, error)
}

// Options configure Open. Zero values select the file-backed defaults.
type Options struct {
	Ledger    state.Ledger
	Pointer   state.Pointer
	Extractor Extractor
	Packages  *Packages
	// Lock holds <root>/.lock during mutating operations.
	Lock bool
}

// Store is the version store façade. It exclusively owns the ledger, the pointer,
// and the links under its root.
type Store struct {
	layout    paths.Layout
	ledger    state.Ledger
	pointer   state.Pointer
	links     *LinkSwitcher
	extractor Extractor
	packages  Packages
	lock      *Lock
}

// InstallOptions tune Install.
type InstallOptions struct {
	// Force reinstalls an installed version, deleting its old extracted directory first.
	Force bool
}

// Open creates the store layout if needed and returns a Store over it.
func Open(layout paths.Layout, opts Options) (*Store, error) {
	if err := layout.Ensure(); err != nil {
		return nil, pathErr("create store", layout.Root, err)
	}

	s := &Store{
		layout:    layout,
		ledger:    opts.Ledger,
		pointer:   opts.Pointer,
		links:     NewLinkSwitcher(layout),
		extractor: opts.Extractor,
	}
	if s.ledger == nil {
		s.ledger = state.NewFileLedger(layout.LedgerFile)
	}
	if s.pointer == nil {
		s.pointer = state.NewFilePointer(layout.PointerFile)
	}
	if s.extractor == nil {
		s.extractor = installer.NewExtractor()
	}
	if opts.Packages != nil {
		s.packages = *opts.Packages
	} else {
		s.packages = DefaultPackages(paths.Current())
	}
	if opts.Lock {
		s.lock = NewLock(layout.LockFile)
	}
	return s, nil
}

// Layout returns the store's on-disk layout.
func (s *Store) Layout() paths.Layout {
	return s.layout
}

// Package returns the package version belongs to.
func (s *Store) Package(version string) Package {
	return s.packages.For(version)
}

// Find returns the extracted directory of an installed version.
func (s *Store) Find(version string) (string, bool, error) {
	dir, ok, err := s.ledger.Find(version)
	if err != nil {
		return "", false, pathErr("read ledger", s.layout.LedgerFile, err)
	}
	return dir, ok, nil
}

// IsInstalled reports whether version has a ledger entry.
func (s *Store) IsInstalled(version string) (bool, error) {
	_, ok, err := s.Find(version)
	return ok, err
}

// Install unpacks archive into bin/, deletes the archive, and records version as
// extracted to dir. dir is relative to bin/; when the archive's actual top-level
// entry differs from the last element of dir, the actual name is recorded.
// It does not change which version is active. Force-reinstalling the active
// version repoints its links (and the pointer) at the new directory.
func (s *Store) Install(version string, archive installer.Archive, dir string, opts InstallOptions) error {
	if err := validName(version); err != nil {
		return err
	}
	return s.lock.with(func() error {
		old, ok, err := s.Find(version)
		if err != nil {
			return err
		}
		if ok && !opts.Force {
			return &VersionError{Version: version, Err: ErrAlreadyInstalled}
		}

		pkg := s.packages.For(version)
		active := false
		if ok {
			if active, err = s.isActive(version, pkg); err != nil {
				return err
			}
			oldPath := s.layout.ExtractedPath(old)
			logger.Debug("[DEBUG] Reinstalling %s, removing %s\n", version, oldPath)
			if err := os.RemoveAll(oldPath); err != nil {
				return pathErr("remove", oldPath, err)
			}
		}

		// The old directory is gone; a failed reinstall leaves version Absent.
		fail := func(err error) error {
			if ok {
				s.forget(version, pkg, active)
			}
			return err
		}

		dir = path.Clean(filepath.ToSlash(dir))
		parent := path.Dir(dir)
		dest := s.layout.ExtractedPath(parent)
		top, err := s.extractor.Extract(archive.Path, archive.Kind, dest)
		if err != nil {
			return fail(pathErr("extract", archive.Path, err))
		}
		if top != "" && top != path.Base(dir) {
			logger.Warn("[WARN] %s unpacked to %s, expected %s\n", archive.Path, top, path.Base(dir))
			dir = path.Join(parent, top)
		}
		if err := validName(dir); err != nil {
			return fail(err)
		}

		if err := s.ledger.Upsert(version, dir); err != nil {
			return fail(pathErr("update ledger", s.layout.LedgerFile, err))
		}
		if active {
			logger.Debug("[DEBUG] %s is active, repointing links at %s\n", version, dir)
			if err := s.activate(version, dir, pkg); err != nil {
				return err
			}
		}
		if err := os.Remove(archive.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return pathErr("remove archive", archive.Path, err)
		}
		logger.Debug("[DEBUG] Installed %s into %s\n", version, s.layout.ExtractedPath(dir))
		return nil
	})
}

// isActive reports whether version is the active one. A primary package is active
// when the pointer names it; an auxiliary package when any of its links exist.
func (s *Store) isActive(version string, pkg Package) (bool, error) {
	if !pkg.Primary {
		for _, l := range pkg.Links {
			if _, err := os.Lstat(s.links.Path(l)); err == nil {
				return true, nil
			}
		}
		return false, nil
	}
	rec, ok, err := s.pointer.Get()
	if errors.Is(err, ErrCorruptState) {
		logger.Warn("[WARN] %v; treating %s as inactive\n", err, version)
		return false, nil
	}
	if err != nil {
		return false, pathErr("read current version", s.layout.PointerFile, err)
	}
	return ok && rec.Version == version, nil
}

// activate points pkg's links at dir and, for primary packages, sets the pointer.
func (s *Store) activate(version, dir string, pkg Package) error {
	if err := s.links.Switch(dir, pkg.Links); err != nil {
		return err
	}
	if !pkg.Primary {
		return nil
	}
	if err := s.pointer.Set(version, dir); err != nil {
		return pathErr("write current version", s.layout.PointerFile, err)
	}
	return nil
}

// forget drops version from the ledger after its directory was removed, clearing
// its links and the pointer when it was active. Failures are only logged.
func (s *Store) forget(version string, pkg Package, active bool) {
	if err := s.ledger.Remove(version); err != nil {
		logger.Warn("[WARN] Could not remove %s from %s: %v\n", version, s.layout.LedgerFile, err)
	}
	if !active {
		return
	}
	if err := s.links.Clear(pkg.Links); err != nil {
		logger.Warn("[WARN] Could not clear links of %s: %v\n", version, err)
	}
	if pkg.Primary {
		if err := s.pointer.Clear(); err != nil {
			logger.Warn("[WARN] Could not clear %s: %v\n", s.layout.PointerFile, err)
		}
	}
}

// Use makes version active: every link of its package is replaced to point into
// its extracted directory, then the pointer is updated for primary packages.
// An uninstalled version fails with ErrNotInstalled before anything is touched.
func (s *Store) Use(version string) (Package, error) {
	pkg := s.packages.For(version)
	if _, ok, err := s.Find(version); err != nil {
		return pkg, err
	} else if !ok {
		return pkg, &VersionError{Version: version, Err: ErrNotInstalled}
	}

	err := s.lock.with(func() error {
		dir, ok, err := s.Find(version)
		if err != nil {
			return err
		}
		if !ok {
			return &VersionError{Version: version, Err: ErrNotInstalled}
		}
		return s.activate(version, dir, pkg)
	})
	return pkg, err
}

// Uninstall removes version. When it is the active version, or when nothing is
// recorded as active, its package's links are removed and the pointer is cleared.
// Auxiliary packages always lose their links.
func (s *Store) Uninstall(version string) error {
	return s.lock.with(func() error {
		dir, ok, err := s.Find(version)
		if err != nil {
			return err
		}
		if !ok {
			return &VersionError{Version: version, Err: ErrNotInstalled}
		}

		pkg := s.packages.For(version)
		clearLinks := !pkg.Primary
		if pkg.Primary {
			rec, active, err := s.pointer.Get()
			switch {
			case errors.Is(err, ErrCorruptState):
				logger.Warn("[WARN] %v; clearing links\n", err)
				clearLinks = true
			case err != nil:
				return pathErr("read current version", s.layout.PointerFile, err)
			default:
				clearLinks = !active || rec.Version == version
			}
		}

		if clearLinks {
			if err := s.links.Clear(pkg.Links); err != nil {
				return err
			}
			if pkg.Primary {
				if err := s.pointer.Clear(); err != nil {
					return pathErr("clear current version", s.layout.PointerFile, err)
				}
			}
		}

		extracted := s.layout.ExtractedPath(dir)
		logger.Debug("[DEBUG] Removing %s\n", extracted)
		if err := os.RemoveAll(extracted); err != nil {
			return pathErr("remove", extracted, err)
		}
		if err := s.ledger.Remove(version); err != nil {
			return pathErr("update ledger", s.layout.LedgerFile, err)
		}
		return nil
	})
}

// Entries yields installed versions in installation order.
func (s *Store) Entries() iter.Seq2[state.Entry, error] {
	return func(yield func(state.Entry, error) bool) {
		for e, err := range s.ledger.All() {
			if !yield(e, pathErr("read ledger", s.layout.LedgerFile, err)) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

// List returns the installed version names in installation order.
func (s *Store) List() ([]string, error) {
	var versions []string
	for e, err := range s.Entries() {
		if err != nil {
			return versions, err
		}
		versions = append(versions, e.Version)
	}
	return versions, nil
}

// Current returns the active version record, or false when nothing is active.
func (s *Store) Current() (state.Record, bool, error) {
	rec, ok, err := s.pointer.Get()
	if err != nil {
		return state.Record{}, false, pathErr("read current version", s.layout.PointerFile, err)
	}
	if !ok || rec.Version == "" {
		return state.Record{}, false, nil
	}
	return rec, true, nil
}

// validName rejects names that cannot be stored as a single whitespace separated field.
func validName(name string) error {
	if name == "" || name == "." || strings.ContainsFunc(name, isSpace) {
		return &VersionError{Version: name, Err: ErrInvalidVersion}
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}
