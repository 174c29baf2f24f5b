package config

import "time"

// Defaults used when the config file is absent or leaves a key unset.
const (
	DefaultGitHubAPI  = "https://api.github.com"
	DefaultNightlyURL = "https://build.haxe.org/builds"
	DefaultUserAgent  = "haxeget (https://github.com/l0go/haxeget)"
	DefaultTimeout    = 5 * time.Minute
)

// Config holds user settings read from config.yaml.
// - Root: store root override; empty means resolve from the environment.
// - GitHubAPI/NightlyURL: where releases and rolling builds are fetched from.
// - Lock: hold the store's advisory lock while mutating it.
// - AutoUse: switch to a version right after installing it.
type Config struct {
	Root       string        `yaml:"root"`
	GitHubAPI  string        `yaml:"github_api"`
	NightlyURL string        `yaml:"nightly_url"`
	UserAgent  string        `yaml:"user_agent"`
	Timeout    time.Duration `yaml:"timeout"`
	Lock       *bool         `yaml:"lock"`
	AutoUse    *bool         `yaml:"auto_use"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		GitHubAPI:  DefaultGitHubAPI,
		NightlyURL: DefaultNightlyURL,
		UserAgent:  DefaultUserAgent,
		Timeout:    DefaultTimeout,
	}
}

// LockEnabled reports whether the store lock should be used. Defaults to true.
func (c Config) LockEnabled() bool {
	return c.Lock == nil || *c.Lock
}

// AutoUseEnabled reports whether installs switch to the new version. Defaults to true.
func (c Config) AutoUseEnabled() bool {
	return c.AutoUse == nil || *c.AutoUse
}

// RC is the project file naming the Haxe version a project expects.
type RC struct {
	Version string `json:"version"`
}
