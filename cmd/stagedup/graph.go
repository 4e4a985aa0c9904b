package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/stagedup/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [stage file]",
	Short: "Export the prim hierarchy visualization",
	Long:  `Reads a stage file and outputs a Mermaid diagram (graph TD) of its prim hierarchy and references.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stagePath, _ := cmd.Flags().GetString("stage")
		if !cmd.Flags().Changed("stage") && len(args) > 0 {
			stagePath = args[0]
		}
		return cli.Graph(stagePath, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("stage", "stage.yaml", "Stage file (YAML)")
}
