package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"haxeget/internal/logger"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed versions, oldest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		versions, err := app.store.List()
		if err != nil {
			return err
		}
		printList(cmd.OutOrStdout(), versions, activeVersion())
		return nil
	},
}

// activeVersion returns the active version, or "" when none is set or the pointer
// can't be read. list only needs the ledger, so pointer errors are warnings here.
func activeVersion() string {
	rec, ok, err := app.store.Current()
	if err != nil {
		logger.Warn("[WARN] %v\n", err)
		return ""
	}
	if !ok {
		return ""
	}
	return rec.Version
}

func printList(out io.Writer, versions []string, active string) {
	for _, v := range versions {
		marker := " "
		if active != "" && v == active {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, v)
	}
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the active Haxe version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, ok, err := app.store.Current()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "no active version")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Haxe %s\n", rec.Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(currentCmd)
}
