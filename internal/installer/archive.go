package installer

import (
	"fmt"
	"strings"
)

// Kind identifies the packaging of a downloaded archive.
type Kind int

const (
	Unknown Kind = iota
	TarGz
	TarBz2
	TarXz
	Tar
	Zip
	SevenZip
)

func (k Kind) String() string {
	switch k {
	case TarGz:
		return "tar.gz"
	case TarBz2:
		return "tar.bz2"
	case TarXz:
		return "tar.xz"
	case Tar:
		return "tar"
	case Zip:
		return "zip"
	case SevenZip:
		return "7z"
	}
	return "unknown"
}

// Archive is a fully downloaded local archive handed to the version store.
type Archive struct {
	Path string
	Kind Kind
}

// KindFromName infers the archive kind from a file name suffix.
func KindFromName(name string) (Kind, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return TarGz, nil
	case strings.HasSuffix(lower, ".tar.bz2"):
		return TarBz2, nil
	case strings.HasSuffix(lower, ".tar.xz"):
		return TarXz, nil
	case strings.HasSuffix(lower, ".tar"):
		return Tar, nil
	case strings.HasSuffix(lower, ".zip"):
		return Zip, nil
	case strings.HasSuffix(lower, ".7z"):
		return SevenZip, nil
	}
	return Unknown, fmt.Errorf("unsupported archive format: %s", name)
}
