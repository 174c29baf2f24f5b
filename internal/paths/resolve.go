package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// EnvRoot overrides the store root on every platform.
const EnvRoot = "HAXEGET_ROOT"

// Resolver derives the store root from the platform and the environment.
// Getenv and HomeDir are injectable so resolution is testable for any platform.
type Resolver struct {
	Platform Platform
	Getenv   func(string) string
	HomeDir  func() (string, error)
}

// NewResolver returns a Resolver for the running platform and process environment.
func NewResolver() Resolver {
	return Resolver{
		Platform: Current(),
		Getenv:   os.Getenv,
		HomeDir:  homedir.Dir,
	}
}

// Resolve returns the store root directory. It does not create it.
func (r Resolver) Resolve() (string, error) {
	if err := r.Platform.Check(); err != nil {
		return "", err
	}
	if root := strings.TrimSpace(r.Getenv(EnvRoot)); root != "" {
		return root, nil
	}

	if r.Platform.Windows() {
		drive, err := r.systemDrive()
		if err != nil {
			return "", err
		}
		return drive + ".haxeget", nil
	}

	home, err := r.HomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	if r.Platform.OS == "darwin" {
		return filepath.Join(home, ".haxeget"), nil
	}

	base := r.Getenv("XDG_BIN_HOME")
	if base == "" {
		base = filepath.Join(home, ".local", "bin")
	}
	return filepath.Join(base, "haxeget"), nil
}

// systemDrive extracts "C:\" from SystemRoot (e.g. C:\Windows).
func (r Resolver) systemDrive() (string, error) {
	sysRoot := r.Getenv("SystemRoot")
	idx := strings.Index(sysRoot, `:\`)
	if idx < 0 {
		return "", fmt.Errorf("cannot determine system drive from SystemRoot %q", sysRoot)
	}
	return sysRoot[:idx+2], nil
}
