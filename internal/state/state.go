// Package state persists the two records the version store keeps on disk: the
// ledger of installed versions and the pointer to the active one.
//
// Both files are plain text with whitespace separated fields and are rewritten in
// full on every mutation. Nothing here locks; callers serialize mutations.
package state

import (
	"errors"
	"iter"
	"os"
	"path/filepath"
)

// ErrCorruptState is returned when a ledger or pointer file exists but cannot be parsed.
var ErrCorruptState = errors.New("corrupt state")

// Entry is one installed version: its user facing name and the directory,
// relative to bin/, its files were extracted to.
type Entry struct {
	Version string
	Dir     string
}

// Record is the active version as stored by a Pointer.
type Record struct {
	Version string
	Dir     string
}

// Ledger maps installed version names to extracted directory names.
type Ledger interface {
	// Find returns the extracted directory of version, or false when absent.
	Find(version string) (string, bool, error)
	// Upsert records version, replacing any previous entry for it.
	Upsert(version, dir string) error
	// Remove drops version. Removing an absent version is a no-op.
	Remove(version string) error
	// All yields entries in insertion order. Each call starts a new pass.
	All() iter.Seq2[Entry, error]
}

// Pointer stores the single active version record.
type Pointer interface {
	// Get returns the record, or false when nothing is recorded.
	Get() (Record, bool, error)
	// Set overwrites the record.
	Set(version, dir string) error
	// Clear forgets the record.
	Clear() error
}

// writeFile replaces path with data by writing a sibling temp file and renaming it.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
