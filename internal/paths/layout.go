package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout captures the canonical locations under a store root.
type Layout struct {
	Root        string
	BinDir      string
	MetaDir     string
	LedgerFile  string
	PointerFile string
	LockFile    string
}

// NewLayout returns the layout rooted at root.
func NewLayout(root string) Layout {
	metaDir := filepath.Join(root, "_current")
	return Layout{
		Root:        root,
		BinDir:      filepath.Join(root, "bin"),
		MetaDir:     metaDir,
		LedgerFile:  filepath.Join(metaDir, "installed"),
		PointerFile: filepath.Join(metaDir, "haxe_version"),
		LockFile:    filepath.Join(root, ".lock"),
	}
}

// Ensure creates the root, its fixed subdirectories, and empty metadata files.
// Existing content is never truncated.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.Root, l.BinDir, l.MetaDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory %s: %w", dir, err)
		}
	}
	for _, file := range []string{l.LedgerFile, l.PointerFile} {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_RDONLY, 0o644)
		if err != nil {
			return fmt.Errorf("create store file %s: %w", file, err)
		}
		_ = f.Close()
	}
	return nil
}

// ExtractedPath returns the absolute location of an extracted directory recorded
// in the ledger. Ledger entries always use forward slashes.
func (l Layout) ExtractedPath(dir string) string {
	return filepath.Join(l.BinDir, filepath.FromSlash(dir))
}

// LinkPath returns the fixed location of an exposed tool link.
func (l Layout) LinkPath(name string) string {
	return filepath.Join(l.Root, name)
}
