package main

import (
	"errors"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/stagedup/internal/cli"
	"github.com/aretw0/stagedup/pkg/params"
)

// errRejected signals a trigger rejected at the boundary. Its status line is
// already printed, so Execute only sets the exit code.
var errRejected = errors.New("trigger rejected")

var duplicateCmd = &cobra.Command{
	Use:   "duplicate",
	Short: "Duplicate prims of a stage file along an axis",
	Long: `Duplicates every selected prim count times, offsetting copy i by i*distance
along the axis. Copies are named {name}_{axis}{NN}; existing prims are never
overwritten. The stage file is rewritten unless --dry-run is set.`,
	Example: `  stagedup duplicate --stage city.yaml --select /World/Box --count 3 --distance 100 --axis x
  stagedup duplicate --stage city.yaml --select /World/Box --instances`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.DuplicateOptions{}
		opts.StagePath, _ = cmd.Flags().GetString("stage")
		opts.Selection, _ = cmd.Flags().GetStringSlice("select")
		opts.Count, _ = cmd.Flags().GetInt("count")
		opts.Distance, _ = cmd.Flags().GetFloat64("distance")
		opts.Axis, _ = cmd.Flags().GetString("axis")
		opts.UseInstances, _ = cmd.Flags().GetBool("instances")
		opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
		opts.Report, _ = cmd.Flags().GetBool("report")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		res, err := cli.RunDuplicate(ctx, opts, cmd.OutOrStdout(), termenv.EnvColorProfile(), logger)
		if err != nil {
			return err
		}
		if res.Err != nil {
			return errRejected
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(duplicateCmd)

	duplicateCmd.Flags().String("stage", "", "Stage file (YAML)")
	duplicateCmd.Flags().StringSlice("select", nil, "Prim paths to duplicate (repeatable)")
	duplicateCmd.Flags().Int("count", params.DefaultCount, "Copies per prim")
	duplicateCmd.Flags().Float64("distance", params.DefaultDistance, "Spacing between copies")
	duplicateCmd.Flags().String("axis", "z", "Axis: x, y or z")
	duplicateCmd.Flags().Bool("instances", false, "Create instanceable references instead of deep copies")
	duplicateCmd.Flags().Bool("dry-run", false, "Run without writing the stage file")
	duplicateCmd.Flags().Bool("report", false, "Print a table of every attempt")
	_ = duplicateCmd.MarkFlagRequired("stage")
}
