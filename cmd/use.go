package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"haxeget/internal/installer"
	"haxeget/internal/logger"
)

var useCmd = &cobra.Command{
	Use:     "use <version>",
	Aliases: []string{"switch"},
	Short:   "Make an installed version the active one",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return use(args[0])
	},
}

func use(version string) error {
	pkg, err := app.store.Use(version)
	if err != nil {
		return err
	}
	logger.Info("[INFO] Now using %s\n", version)
	for _, note := range installer.Notes(pkg.Name, app.platform, app.store.Layout().Root, os.Getenv) {
		logger.Warn("%s\n", note)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(useCmd)
}
