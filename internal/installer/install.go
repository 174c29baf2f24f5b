package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"haxeget/internal/logger"
	"haxeget/internal/paths"
)

// Version names with a special download source. Anything else is a tagged Haxe release.
const (
	Nightly = "nightly"
	Neko    = "neko"
	Ceramic = "ceramic"
)

// Fetcher downloads the archive for a version name into the store's bin directory.
type Fetcher struct {
	GitHub     *GitHub
	Platform   paths.Platform
	NightlyURL string
	UserAgent  string
	Client     *http.Client
	BinDir     string
	Progress   io.Writer
}

// FetchArchive resolves version against its source and downloads the archive.
// An unknown tagged release yields ErrVersionNotFound.
func (f *Fetcher) FetchArchive(ctx context.Context, version string) (Archive, error) {
	logger.Debug("[DEBUG] FetchArchive: resolving %s for %s\n", version, f.Platform)

	switch version {
	case Nightly:
		logger.Info("[INFO] Downloading Haxe nightly\n")
		return f.fetchBuild(ctx, "haxe", "haxe_latest")
	case Neko:
		logger.Info("[INFO] Downloading latest Neko\n")
		return f.fetchBuild(ctx, "neko", "neko_latest")
	case Ceramic:
		return f.fetchCeramic(ctx)
	default:
		return f.fetchStable(ctx, version)
	}
}

// FetchSelf downloads the newest haxeget release archive.
func (f *Fetcher) FetchSelf(ctx context.Context) (Archive, error) {
	name, err := f.Platform.SelfAsset()
	if err != nil {
		return Archive{}, err
	}
	release, err := f.GitHub.Latest(ctx, SelfRepo)
	if err != nil {
		return Archive{}, err
	}
	logger.Info("[INFO] Downloading Haxeget %s\n", release.TagName)
	return f.fetchAsset(ctx, release, name)
}

func (f *Fetcher) fetchStable(ctx context.Context, version string) (Archive, error) {
	suffix, err := f.Platform.ArchiveSuffix(paths.Release)
	if err != nil {
		return Archive{}, err
	}
	release, err := f.GitHub.FindRelease(ctx, HaxeRepo, version)
	if err != nil {
		return Archive{}, err
	}
	logger.Info("[INFO] Downloading Haxe %s\n", version)
	return f.fetchAsset(ctx, release, "haxe-"+version+suffix)
}

func (f *Fetcher) fetchCeramic(ctx context.Context) (Archive, error) {
	name, err := f.Platform.CeramicAsset()
	if err != nil {
		return Archive{}, err
	}
	release, err := f.GitHub.Latest(ctx, CeramicRepo)
	if err != nil {
		return Archive{}, err
	}
	logger.Info("[INFO] Downloading Ceramic %s\n", release.TagName)
	return f.fetchAsset(ctx, release, name)
}

// fetchBuild downloads a rolling build, e.g. <nightly>/haxe/linux64/haxe_latest.tar.gz.
func (f *Fetcher) fetchBuild(ctx context.Context, project, base string) (Archive, error) {
	suffix, err := f.Platform.ArchiveSuffix(paths.Nightly)
	if err != nil {
		return Archive{}, err
	}
	sys, err := f.Platform.BuildServerDir()
	if err != nil {
		return Archive{}, err
	}
	name := base + suffix
	url := fmt.Sprintf("%s/%s/%s/%s", strings.TrimRight(f.NightlyURL, "/"), project, sys, name)
	return f.fetchURL(ctx, url, name)
}

func (f *Fetcher) fetchAsset(ctx context.Context, release Release, name string) (Archive, error) {
	asset, err := release.FindAsset(name)
	if err != nil {
		return Archive{}, err
	}
	return f.fetchURL(ctx, asset.BrowserDownloadURL, name)
}

func (f *Fetcher) fetchURL(ctx context.Context, url, name string) (Archive, error) {
	kind, err := KindFromName(name)
	if err != nil {
		return Archive{}, err
	}
	dest := filepath.Join(f.BinDir, name)
	if err := downloadFile(ctx, f.Client, f.UserAgent, url, dest, f.Progress); err != nil {
		return Archive{}, err
	}
	return Archive{Path: dest, Kind: kind}, nil
}
