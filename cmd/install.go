package cmd

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"haxeget/internal/installer"
	"haxeget/internal/logger"
	"haxeget/internal/store"
)

var (
	installForce bool
	installNoUse bool
)

var installCmd = &cobra.Command{
	Use:     "install <version>",
	Aliases: []string{"i"},
	Short:   "Download and install a Haxe version, nightly, neko, or ceramic",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version := args[0]
		if err := install(cmd.Context(), version, installForce); err != nil {
			return err
		}
		if installNoUse || !app.cfg.AutoUseEnabled() {
			return nil
		}
		return use(version)
	},
}

// install fetches and unpacks version. The ledger is checked before anything is downloaded.
func install(ctx context.Context, version string, force bool) error {
	if !force {
		installed, err := app.store.IsInstalled(version)
		if err != nil {
			return err
		}
		if installed {
			return &store.VersionError{Version: version, Err: store.ErrAlreadyInstalled}
		}
	}

	archive, err := app.fetcher.FetchArchive(ctx, version)
	if err != nil {
		return err
	}

	top, err := installer.NewExtractor().PeekTopLevelDirName(archive.Path, archive.Kind)
	if err == nil {
		pkg := app.store.Package(version)
		err = app.store.Install(version, archive, pkg.ExtractedDir(top), store.InstallOptions{Force: force})
	}
	if err != nil {
		if rmErr := os.Remove(archive.Path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			logger.Warn("[WARN] Could not remove %s: %v\n", archive.Path, rmErr)
		}
		return err
	}

	logger.Info("[INFO] Installed %s\n", version)
	return nil
}

func init() {
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Reinstall even if the version is already installed")
	installCmd.Flags().BoolVar(&installNoUse, "no-use", false, "Do not switch to the version after installing")
	rootCmd.AddCommand(installCmd)
}
