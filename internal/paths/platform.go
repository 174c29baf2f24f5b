package paths

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsupportedPlatform is returned for every OS/architecture pair that has no
// known release archive. It is fatal: nothing else can work without a store root.
var ErrUnsupportedPlatform = errors.New("your operating system and/or architecture is unsupported")

// TargetKind selects which family of release archives a suffix is computed for.
type TargetKind int

const (
	// Release is a tagged release archive, e.g. haxe-4.3.1-linux64.tar.gz.
	Release TargetKind = iota
	// Nightly is a rolling build from the build server, e.g. haxe_latest.tar.gz.
	Nightly
)

// Platform is the OS family and CPU architecture everything platform dependent
// is derived from. All OS branching of the program lives on this type.
type Platform struct {
	OS   string
	Arch string
}

// Current returns the platform the binary was compiled for.
func Current() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// Check reports ErrUnsupportedPlatform when p has no archive mapping.
func (p Platform) Check() error {
	switch {
	case p.OS == "linux" && p.Arch == "amd64":
	case p.OS == "darwin":
	case p.OS == "windows":
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedPlatform, p)
	}
	return nil
}

// Windows reports whether links and executables follow Windows conventions.
func (p Platform) Windows() bool {
	return p.OS == "windows"
}

// ExeName returns the executable file name for name on p.
func (p Platform) ExeName(name string) string {
	if p.Windows() {
		return name + ".exe"
	}
	return name
}

// ArchiveSuffix maps p to the suffix a release archive is expected to carry.
func (p Platform) ArchiveSuffix(kind TargetKind) (string, error) {
	if err := p.Check(); err != nil {
		return "", err
	}

	if kind == Nightly {
		if p.Windows() {
			return ".zip", nil
		}
		return ".tar.gz", nil
	}

	switch p.OS {
	case "linux":
		return "-linux64.tar.gz", nil
	case "darwin":
		return "-osx.tar.gz", nil
	default:
		if p.Arch == "amd64" {
			return "-win64.zip", nil
		}
		return "-win.zip", nil
	}
}

// BuildServerDir is the per-platform directory name used by the nightly build server.
func (p Platform) BuildServerDir() (string, error) {
	if err := p.Check(); err != nil {
		return "", err
	}
	switch p.OS {
	case "linux":
		return "linux64", nil
	case "darwin":
		return "mac", nil
	default:
		if p.Arch == "amd64" {
			return "windows64", nil
		}
		return "windows", nil
	}
}

// CeramicAsset is the release asset name of the Ceramic engine bundle.
func (p Platform) CeramicAsset() (string, error) {
	if p.Arch != "amd64" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, p)
	}
	switch p.OS {
	case "linux":
		return "ceramic-linux.zip", nil
	case "darwin":
		return "ceramic-mac.zip", nil
	case "windows":
		return "ceramic-windows.zip", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, p)
}

// SelfAsset is the release asset name of haxeget itself.
func (p Platform) SelfAsset() (string, error) {
	switch {
	case p.OS == "linux" && p.Arch == "amd64":
		return "haxeget-x86_64-unknown-linux-gnu.tar.gz", nil
	case p.OS == "darwin" && p.Arch == "amd64":
		return "haxeget-x86_64-apple-darwin.tar.gz", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, p)
}
