package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/stagedup/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate [stage file]",
	Short: "Check a stage file for structural errors",
	Long:  `Reports missing parents, duplicate paths, broken references and reference cycles.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stagePath, _ := cmd.Flags().GetString("stage")
		if !cmd.Flags().Changed("stage") && len(args) > 0 {
			stagePath = args[0]
		}
		return cli.Validate(stagePath, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("stage", "stage.yaml", "Stage file (YAML)")
}
