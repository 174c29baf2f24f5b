package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"haxeget/internal/config"
	"haxeget/internal/installer"
	"haxeget/internal/logger"
	"haxeget/internal/paths"
	"haxeget/internal/store"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// noColor disables colored output.
var noColor bool

// configPath holds the path to the YAML configuration file.
// Empty means <user config dir>/haxeget/config.yaml.
var configPath string

// app is what every subcommand works against. It is built in PersistentPreRunE.
var app struct {
	cfg      config.Config
	platform paths.Platform
	store    *store.Store
	fetcher  *installer.Fetcher
}

// rootCmd is the base command for the CLI tool `haxeget`.
var rootCmd = &cobra.Command{
	Use:           "haxeget",
	Short:         "Install and switch between Haxe versions",
	SilenceUsage:  true,
	SilenceErrors: true,

	// PersistentPreRunE runs before any subcommand: logger, config, then the store.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(debug)
		if noColor {
			logger.Disable()
		}
		return setup()
	},
}

func setup() error {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	logger.Debug("[DEBUG] Loaded config from %s\n", path)

	platform := paths.Current()
	root := cfg.Root
	if root == "" || os.Getenv(paths.EnvRoot) != "" {
		if root, err = paths.NewResolver().Resolve(); err != nil {
			return err
		}
	} else if err := platform.Check(); err != nil {
		return err
	}
	logger.Debug("[DEBUG] Using store root %s\n", root)

	layout := paths.NewLayout(root)
	s, err := store.Open(layout, store.Options{Lock: cfg.LockEnabled()})
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: cfg.Timeout}
	app.cfg = cfg
	app.platform = platform
	app.store = s
	app.fetcher = &installer.Fetcher{
		GitHub:     &installer.GitHub{BaseURL: cfg.GitHubAPI, UserAgent: cfg.UserAgent, Client: client},
		Platform:   platform,
		NightlyURL: cfg.NightlyURL,
		UserAgent:  cfg.UserAgent,
		Client:     client,
		BinDir:     layout.BinDir,
		Progress:   os.Stderr,
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
}

// Execute runs the selected subcommand. Failures are reported once and exit with status 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("[ERROR] %v\n", err)
		stop()
		os.Exit(1)
	}
}
