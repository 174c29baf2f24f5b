package cmd

import (
	"github.com/spf13/cobra"

	"haxeget/internal/config"
	"haxeget/internal/logger"
)

var rcPath string

// rcCmd installs (when needed) and uses the version named by a project's .haxerc.
var rcCmd = &cobra.Command{
	Use:     "rc",
	Aliases: []string{"sync"},
	Short:   "Install and use the version named in .haxerc",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := config.LoadRC(rcPath)
		if err != nil {
			return err
		}
		logger.Debug("[DEBUG] %s requests Haxe %s\n", rcPath, rc.Version)

		installed, err := app.store.IsInstalled(rc.Version)
		if err != nil {
			return err
		}
		if !installed {
			if err := install(cmd.Context(), rc.Version, false); err != nil {
				return err
			}
		}
		return use(rc.Version)
	},
}

func init() {
	rcCmd.Flags().StringVar(&rcPath, "file", config.RCFile, "Path to the .haxerc file")
	rootCmd.AddCommand(rcCmd)
}
