package installer

import (
	"fmt"
	"strings"

	"haxeget/internal/paths"
)

// detectShell tries to figure out which shell the current user is using by reading the
// SHELL environment variable. It currently supports detection of zsh and bash,
// returning "zsh" as a default fallback if the shell is unknown or unsupported.
func detectShell(getenv func(string) string) string {
	shell := getenv("SHELL")
	if strings.Contains(shell, "bash") {
		return "bash"
	}
	return "zsh"
}

// shellRC maps a shell to the rc file users edit.
func shellRC(shell string) string {
	if shell == "bash" {
		return "~/.bashrc"
	}
	return "~/.zshrc"
}

// Notes returns the environment hints shown after switching pkg, given the store
// root and the process environment. Nothing is printed for settings already in place.
func Notes(pkg string, p paths.Platform, root string, getenv func(string) string) []string {
	switch pkg {
	case Ceramic:
		return nil
	case Neko:
		if p.Windows() {
			return []string{fmt.Sprintf("Note: You will need to run `setx /M NEKO_INSTPATH %s` and add `%%NEKO_INSTPATH%%` to your PATH vars to use Neko!", root)}
		}
		return nil
	}

	if p.Windows() {
		return []string{fmt.Sprintf("Note: You will need to run `setx /M HAXEPATH %s` and add `%%HAXEPATH%%` to your PATH vars to use this version of Haxe!", root)}
	}
	if getenv("HAXE_STD_PATH") == "" {
		rc := shellRC(detectShell(getenv))
		return []string{fmt.Sprintf("Note: You will need to add `export HAXE_STD_PATH=%s/std/` to your shell config (i.e %s)", root, rc)}
	}
	return nil
}
