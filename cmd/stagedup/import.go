package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/stagedup/internal/cli"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Build a stage file from a document directory",
	Long: `Reads a Loam directory where every Markdown/YAML document describes one prim
(frontmatter keys: path, type, translate, references, instanceable) and writes
the resulting stage file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		out, _ := cmd.Flags().GetString("out")
		id, _ := cmd.Flags().GetString("id")

		snap, err := cli.Import(cmd.Context(), dir, out, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d prims into %s\n", len(snap.Prims), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("dir", ".", "Document directory")
	importCmd.Flags().String("out", "stage.yaml", "Stage file to write")
	importCmd.Flags().String("id", "", "Stage ID (defaults to the directory name)")
}
