package installer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"haxeget/internal/logger"
)

// ErrVersionNotFound is returned when the release catalog has no release with the
// requested name. It propagates through the version store unchanged.
var ErrVersionNotFound = errors.New("the specified version was not found")

// ErrAssetNotFound is returned when a release exists but ships no archive for this platform.
var ErrAssetNotFound = errors.New("no matching asset for this platform")

// Repositories whose releases haxeget installs.
const (
	HaxeRepo    = "HaxeFoundation/haxe"
	CeramicRepo = "ceramic-engine/ceramic"
	SelfRepo    = "l0go/haxeget"
)

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`                 // Asset filename
	BrowserDownloadURL string `json:"browser_download_url"` // Direct download URL for the asset
}

// Release represents the structure of a GitHub release JSON response.
type Release struct {
	Name    string  `json:"name"`     // Release title, e.g. 4.3.1
	TagName string  `json:"tag_name"` // The release tag
	Assets  []Asset `json:"assets"`
}

// FindAsset returns the asset named name.
func (r Release) FindAsset(name string) (Asset, error) {
	for _, a := range r.Assets {
		if a.Name == name {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("%w: %s in release %s", ErrAssetNotFound, name, r.TagName)
}

// GitHub is a minimal client for the GitHub releases API.
type GitHub struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

// Releases lists the most recent releases of repo, newest first.
func (g *GitHub) Releases(ctx context.Context, repo string) ([]Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases?per_page=100", strings.TrimRight(g.BaseURL, "/"), repo)
	logger.Debug("[DEBUG] Fetching GitHub releases from URL: %s\n", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.UserAgent != "" {
		req.Header.Set("User-Agent", g.UserAgent)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET error fetching releases for %s: %w", repo, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub release fetch failed for %s: HTTP status %d", repo, resp.StatusCode)
	}

	var releases []Release
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("failed to decode GitHub release JSON for %s: %w", repo, err)
	}
	logger.Debug("[DEBUG] %s has %d releases\n", repo, len(releases))
	return releases, nil
}

// FindRelease returns the release of repo whose name or tag equals version.
func (g *GitHub) FindRelease(ctx context.Context, repo, version string) (Release, error) {
	releases, err := g.Releases(ctx, repo)
	if err != nil {
		return Release{}, err
	}
	for _, r := range releases {
		if r.Name == version || r.TagName == version {
			return r, nil
		}
	}
	return Release{}, fmt.Errorf("%w: %s", ErrVersionNotFound, version)
}

// Latest returns the newest release of repo.
func (g *GitHub) Latest(ctx context.Context, repo string) (Release, error) {
	releases, err := g.Releases(ctx, repo)
	if err != nil {
		return Release{}, err
	}
	if len(releases) == 0 {
		return Release{}, fmt.Errorf("%w: %s has no releases", ErrVersionNotFound, repo)
	}
	return releases[0], nil
}
