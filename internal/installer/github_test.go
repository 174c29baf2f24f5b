package installer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haxeget/internal/paths"
)

// releaseServer serves a releases API for HaxeFoundation/haxe and ceramic plus the
// archives it links to. Requested paths are recorded.
func releaseServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var requested []string
	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/repos/HaxeFoundation/haxe/releases", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "haxeget-test", r.Header.Get("User-Agent"))
		_ = json.NewEncoder(w).Encode([]Release{
			{Name: "4.3.1", TagName: "4.3.1", Assets: []Asset{
				{Name: "haxe-4.3.1-linux64.tar.gz", BrowserDownloadURL: srv.URL + "/dl/haxe-4.3.1-linux64.tar.gz"},
				{Name: "haxe-4.3.1-win64.zip", BrowserDownloadURL: srv.URL + "/dl/haxe-4.3.1-win64.zip"},
			}},
			{Name: "4.2.5", TagName: "4.2.5"},
		})
	})
	mux.HandleFunc("/repos/ceramic-engine/ceramic/releases", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Release{
			{Name: "v2", TagName: "v2.0.0", Assets: []Asset{{Name: "ceramic-linux.zip", BrowserDownloadURL: srv.URL + "/dl/ceramic-linux.zip"}}},
			{Name: "v1", TagName: "v1.0.0"},
		})
	})
	mux.HandleFunc("/repos/l0go/haxeget/releases", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})
	mux.HandleFunc("/dl/", func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		_, _ = fmt.Fprint(w, strings.Repeat("x", 2048))
	})
	mux.HandleFunc("/builds/", func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		_, _ = fmt.Fprint(w, "nightly")
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &requested
}

func newFetcher(t *testing.T, srv *httptest.Server, p paths.Platform) *Fetcher {
	t.Helper()
	return &Fetcher{
		GitHub:     &GitHub{BaseURL: srv.URL, UserAgent: "haxeget-test", Client: srv.Client()},
		Platform:   p,
		NightlyURL: srv.URL + "/builds",
		UserAgent:  "haxeget-test",
		Client:     srv.Client(),
		BinDir:     t.TempDir(),
	}
}

var linux = paths.Platform{OS: "linux", Arch: "amd64"}

func TestGitHub_FindRelease(t *testing.T) {
	srv, _ := releaseServer(t)
	gh := &GitHub{BaseURL: srv.URL, UserAgent: "haxeget-test", Client: srv.Client()}

	r, err := gh.FindRelease(context.Background(), HaxeRepo, "4.3.1")
	require.NoError(t, err)
	require.Len(t, r.Assets, 2)

	_, err = gh.FindRelease(context.Background(), HaxeRepo, "9.9.9")
	require.ErrorIs(t, err, ErrVersionNotFound)
}

func TestGitHub_LatestAndEmpty(t *testing.T) {
	srv, _ := releaseServer(t)
	gh := &GitHub{BaseURL: srv.URL, Client: srv.Client()}

	r, err := gh.Latest(context.Background(), CeramicRepo)
	require.NoError(t, err)
	require.Equal(t, "v2.0.0", r.TagName)

	_, err = gh.Latest(context.Background(), SelfRepo)
	require.ErrorIs(t, err, ErrVersionNotFound)
}

func TestGitHub_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)
	gh := &GitHub{BaseURL: srv.URL, Client: srv.Client()}
	_, err := gh.Releases(context.Background(), HaxeRepo)
	require.ErrorContains(t, err, "HTTP status 403")
}

func TestFetchArchive_Stable(t *testing.T) {
	srv, requested := releaseServer(t)
	f := newFetcher(t, srv, linux)
	var progress strings.Builder
	f.Progress = &progress

	archive, err := f.FetchArchive(context.Background(), "4.3.1")
	require.NoError(t, err)
	require.Equal(t, TarGz, archive.Kind)
	require.Equal(t, filepath.Join(f.BinDir, "haxe-4.3.1-linux64.tar.gz"), archive.Path)
	require.Equal(t, []string{"/dl/haxe-4.3.1-linux64.tar.gz"}, *requested)

	info, err := os.Stat(archive.Path)
	require.NoError(t, err)
	require.EqualValues(t, 2048, info.Size())
	require.Contains(t, progress.String(), "100%")
}

func TestFetchArchive_StableErrors(t *testing.T) {
	srv, _ := releaseServer(t)
	f := newFetcher(t, srv, linux)

	_, err := f.FetchArchive(context.Background(), "9.9.9")
	require.ErrorIs(t, err, ErrVersionNotFound)

	_, err = f.FetchArchive(context.Background(), "4.2.5")
	require.ErrorIs(t, err, ErrAssetNotFound)

	f.Platform = paths.Platform{OS: "linux", Arch: "arm64"}
	_, err = f.FetchArchive(context.Background(), "4.3.1")
	require.ErrorIs(t, err, paths.ErrUnsupportedPlatform)
}

func TestFetchArchive_NightlyAndNeko(t *testing.T) {
	srv, requested := releaseServer(t)
	f := newFetcher(t, srv, paths.Platform{OS: "windows", Arch: "amd64"})

	archive, err := f.FetchArchive(context.Background(), Nightly)
	require.NoError(t, err)
	require.Equal(t, Zip, archive.Kind)
	require.Equal(t, filepath.Join(f.BinDir, "haxe_latest.zip"), archive.Path)

	_, err = f.FetchArchive(context.Background(), Neko)
	require.NoError(t, err)
	require.Equal(t, []string{"/builds/haxe/windows64/haxe_latest.zip", "/builds/neko/windows64/neko_latest.zip"}, *requested)
}

func TestFetchArchive_Ceramic(t *testing.T) {
	srv, requested := releaseServer(t)
	f := newFetcher(t, srv, linux)
	archive, err := f.FetchArchive(context.Background(), Ceramic)
	require.NoError(t, err)
	require.Equal(t, Zip, archive.Kind)
	require.Equal(t, []string{"/dl/ceramic-linux.zip"}, *requested)
}

func TestDownloadFile_FailureLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	dest := filepath.Join(t.TempDir(), "a.tar.gz")
	err := downloadFile(context.Background(), srv.Client(), "", srv.URL+"/a.tar.gz", dest, nil)
	require.ErrorContains(t, err, "HTTP status 404")
	_, err = os.Stat(dest)
	require.True(t, os.IsNotExist(err))
}
