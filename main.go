package main

import (
	"os"

	"github.com/SerafimArts/algebraic-types/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "algt [subcommand]",
	Short:        "algt\n algebraic type resolution and override variance checking",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.CheckCmd)
	rootCmd.AddCommand(cmd.DNFCmd)
}
