package store

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"haxeget/internal/installer"
	"haxeget/internal/paths"
	"haxeget/internal/state"
)

// fakeExtractor unpacks "archives" whose content is the top-level directory name,
// creating a minimal Haxe or Neko tree under it.
type fakeExtractor struct {
	skip  map[string]bool
	calls int
}

func (f *fakeExtractor) Extract(src string, kind installer.Kind, dest string) (string, error) {
	f.calls++
	data, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}
	top := strings.TrimSpace(string(data))
	root := filepath.Join(dest, top)
	if err := os.MkdirAll(filepath.Join(root, "std"), 0o755); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Join(root, "tools"), 0o755); err != nil {
		return "", err
	}
	for _, name := range []string{"haxe", "haxelib", "neko", "tools/ceramic", "std/Std.hx"} {
		if f.skip[name] {
			continue
		}
		if err := os.WriteFile(filepath.Join(root, filepath.FromSlash(name)), []byte(top), 0o755); err != nil {
			return "", err
		}
	}
	return top, nil
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}
}

func linuxPackages() *Packages {
	p := DefaultPackages(paths.Platform{OS: "linux", Arch: "amd64"})
	return &p
}

func newTestStore(t *testing.T) (*Store, *fakeExtractor) {
	t.Helper()
	skipOnWindows(t)
	ex := &fakeExtractor{}
	s, err := Open(paths.NewLayout(t.TempDir()), Options{Extractor: ex, Packages: linuxPackages()})
	require.NoError(t, err)
	return s, ex
}

// writeArchive drops a fake archive into bin/ naming top as its top-level directory.
func writeArchive(t *testing.T, s *Store, top string) installer.Archive {
	t.Helper()
	path := filepath.Join(s.Layout().BinDir, top+".tar.gz")
	require.NoError(t, os.WriteFile(path, []byte(top), 0o644))
	return installer.Archive{Path: path, Kind: installer.TarGz}
}

func install(t *testing.T, s *Store, version, top string) {
	t.Helper()
	require.NoError(t, s.Install(version, writeArchive(t, s, top), top, InstallOptions{}))
}

func toolchainLinks(s *Store) []string {
	var out []string
	for _, l := range s.packages.Toolchain.Links {
		out = append(out, s.links.Path(l))
	}
	return out
}

func requireAbsent(t *testing.T, path string) {
	t.Helper()
	_, err := os.Lstat(path)
	require.True(t, os.IsNotExist(err), "expected %s to be gone, got %v", path, err)
}

func ledgerLines(t *testing.T, s *Store) []string {
	t.Helper()
	data, err := os.ReadFile(s.Layout().LedgerFile)
	require.NoError(t, err)
	return strings.Fields(strings.ReplaceAll(string(data), " ", "="))
}

// writeTarGz builds a real gzip'd tarball with the given files (name -> content).
func writeTarGz(t *testing.T, path string, files map[string]string, dirs ...string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for _, d := range dirs {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: d + "/", Typeflag: tar.TypeDir, Mode: 0o755}))
	}
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Typeflag: tar.TypeReg, Mode: 0o755, Size: int64(len(content))}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

var _ state.Ledger = (*state.MemoryLedger)(nil)
