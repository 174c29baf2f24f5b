package main

import (
	"haxeget/cmd"
)

// main is the program entry point. It delegates to cmd.Execute().
//
// haxeget installs Haxe toolchains (tagged releases and nightly builds, plus Neko
// and Ceramic) into a per-user store and switches between them by repointing a
// fixed set of links. The store keeps two plain-text files:
//   - _current/installed: one "version directory" line per installed version
//   - _current/haxe_version: the active Haxe version and its directory
//
// The links (haxe, haxelib, std and friends) live directly in the store root, so
// putting that one directory on PATH is enough to pick up whichever version is active.
func main() {
	cmd.Execute()
}
