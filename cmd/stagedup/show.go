package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/stagedup/internal/cli"
)

var showCmd = &cobra.Command{
	Use:   "show [stage file]",
	Short: "Print a report of a stage file",
	Long:  `Prints the prims of a stage as a Markdown table, rendered for the terminal when stdout is a TTY.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stagePath, _ := cmd.Flags().GetString("stage")
		if !cmd.Flags().Changed("stage") && len(args) > 0 {
			stagePath = args[0]
		}
		plain, _ := cmd.Flags().GetBool("plain")
		rich := !plain && term.IsTerminal(int(os.Stdout.Fd()))
		return cli.Show(stagePath, cmd.OutOrStdout(), rich)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().String("stage", "stage.yaml", "Stage file (YAML)")
	showCmd.Flags().Bool("plain", false, "Print raw Markdown even on a terminal")
}
