package store

import "haxeget/internal/paths"

// Package is the set of links a version name exposes when it is used.
type Package struct {
	Name string
	// Subdir is the directory under bin/ the package's archives are unpacked into.
	Subdir string
	Links  []Link
	// Primary packages own the current pointer; auxiliary ones only own their links.
	Primary bool
}

// ExtractedDir returns the ledger directory for an archive whose top-level entry is top.
func (p Package) ExtractedDir(top string) string {
	if p.Subdir == "" {
		return top
	}
	return p.Subdir + "/" + top
}

// Packages resolves version names to packages.
type Packages struct {
	Toolchain Package
	Auxiliary map[string]Package
}

// For returns the package version belongs to.
func (p Packages) For(version string) Package {
	if pkg, ok := p.Auxiliary[version]; ok {
		return pkg
	}
	return p.Toolchain
}

// DefaultPackages returns the Haxe toolchain plus the Neko and Ceramic auxiliaries,
// with executable names adjusted for platform.
func DefaultPackages(platform paths.Platform) Packages {
	haxe := platform.ExeName("haxe")
	haxelib := platform.ExeName("haxelib")
	neko := platform.ExeName("neko")

	ceramic := Link{Name: "ceramic", Target: "tools/ceramic", Kind: FileLink}
	if platform.Windows() {
		ceramic = Link{Name: "ceramic.bat", Target: "tools/ceramic.bat", Kind: FileLink}
	}

	return Packages{
		Toolchain: Package{
			Name: "haxe",
			Links: []Link{
				{Name: haxe, Target: haxe, Kind: FileLink},
				{Name: haxelib, Target: haxelib, Kind: FileLink},
				{Name: "std", Target: "std", Kind: DirLink},
			},
			Primary: true,
		},
		Auxiliary: map[string]Package{
			"neko": {
				Name:   "neko",
				Subdir: "neko",
				Links:  []Link{{Name: neko, Target: neko, Kind: FileLink}},
			},
			"ceramic": {
				Name:  "ceramic",
				Links: []Link{ceramic},
			},
		},
	}
}
