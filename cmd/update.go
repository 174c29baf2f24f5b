package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"haxeget/internal/installer"
	"haxeget/internal/logger"
)

// updateCmd replaces the haxeget binary in the store root with the latest release.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update haxeget itself",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, err := app.fetcher.FetchSelf(cmd.Context())
		if err != nil {
			return err
		}
		root := app.store.Layout().Root
		_, err = installer.NewExtractor().Extract(archive.Path, archive.Kind, root)
		if rmErr := os.Remove(archive.Path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			logger.Warn("[WARN] Could not remove %s: %v\n", archive.Path, rmErr)
		}
		if err != nil {
			return err
		}
		logger.Info("[INFO] Updated haxeget in %s\n", root)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
