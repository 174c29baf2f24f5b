package cmd

import (
	"github.com/spf13/cobra"

	"haxeget/internal/logger"
)

var uninstallCmd = &cobra.Command{
	Use:     "uninstall <version>",
	Aliases: []string{"remove"},
	Short:   "Remove an installed version",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.store.Uninstall(args[0]); err != nil {
			return err
		}
		logger.Info("[INFO] Uninstalled %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
