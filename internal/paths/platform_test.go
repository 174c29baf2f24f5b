package paths

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArchiveSuffix(t *testing.T) {
	cases := []struct {
		platform Platform
		kind     TargetKind
		want     string
	}{
		{Platform{"linux", "amd64"}, Release, "-linux64.tar.gz"},
		{Platform{"darwin", "arm64"}, Release, "-osx.tar.gz"},
		{Platform{"windows", "amd64"}, Release, "-win64.zip"},
		{Platform{"windows", "386"}, Release, "-win.zip"},
		{Platform{"linux", "amd64"}, Nightly, ".tar.gz"},
		{Platform{"darwin", "amd64"}, Nightly, ".tar.gz"},
		{Platform{"windows", "amd64"}, Nightly, ".zip"},
	}
	for _, tc := range cases {
		got, err := tc.platform.ArchiveSuffix(tc.kind)
		require.NoError(t, err, tc.platform.String())
		require.Equal(t, tc.want, got, tc.platform.String())
	}
}

func TestArchiveSuffix_Unsupported(t *testing.T) {
	for _, p := range []Platform{{"linux", "arm64"}, {"freebsd", "amd64"}} {
		_, err := p.ArchiveSuffix(Release)
		require.ErrorIs(t, err, ErrUnsupportedPlatform)
	}
}

func TestBuildServerDir(t *testing.T) {
	dir, err := Platform{"windows", "386"}.BuildServerDir()
	require.NoError(t, err)
	require.Equal(t, "windows", dir)

	dir, err = Platform{"darwin", "arm64"}.BuildServerDir()
	require.NoError(t, err)
	require.Equal(t, "mac", dir)
}

func TestExeName(t *testing.T) {
	require.Equal(t, "haxe.exe", Platform{"windows", "amd64"}.ExeName("haxe"))
	require.Equal(t, "haxe", Platform{"linux", "amd64"}.ExeName("haxe"))
}

func TestCeramicAndSelfAssets(t *testing.T) {
	name, err := Platform{"darwin", "amd64"}.CeramicAsset()
	require.NoError(t, err)
	require.Equal(t, "ceramic-mac.zip", name)

	_, err = Platform{"darwin", "arm64"}.CeramicAsset()
	require.ErrorIs(t, err, ErrUnsupportedPlatform)

	name, err = Platform{"linux", "amd64"}.SelfAsset()
	require.NoError(t, err)
	require.Equal(t, "haxeget-x86_64-unknown-linux-gnu.tar.gz", name)

	_, err = Platform{"windows", "amd64"}.SelfAsset()
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
}
