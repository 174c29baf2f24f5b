package installer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"haxeget/internal/paths"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestNotes_UnixStdPath(t *testing.T) {
	notes := Notes("haxe", linux, "/home/logo/.local/bin/haxeget", env(map[string]string{"SHELL": "/bin/bash"}))
	require.Len(t, notes, 1)
	require.Contains(t, notes[0], "export HAXE_STD_PATH=/home/logo/.local/bin/haxeget/std/")
	require.Contains(t, notes[0], "~/.bashrc")

	require.Empty(t, Notes("haxe", linux, "/r", env(map[string]string{"HAXE_STD_PATH": "/r/std"})))
	require.Empty(t, Notes(Neko, linux, "/r", env(nil)))
	require.Empty(t, Notes(Ceramic, linux, "/r", env(nil)))
}

func TestNotes_Windows(t *testing.T) {
	win := paths.Platform{OS: "windows", Arch: "amd64"}
	notes := Notes("haxe", win, `C:\.haxeget`, env(nil))
	require.Len(t, notes, 1)
	require.Contains(t, notes[0], `setx /M HAXEPATH C:\.haxeget`)

	notes = Notes(Neko, win, `C:\.haxeget`, env(nil))
	require.Contains(t, notes[0], "NEKO_INSTPATH")
}

func TestDetectShell(t *testing.T) {
	require.Equal(t, "zsh", detectShell(env(map[string]string{"SHELL": "/usr/bin/fish"})))
	require.Equal(t, "bash", detectShell(env(map[string]string{"SHELL": "/bin/bash"})))
}
