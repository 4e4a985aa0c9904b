package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/muesli/termenv"

	"github.com/aretw0/stagedup"
	"github.com/aretw0/stagedup/internal/presentation/tui"
	"github.com/aretw0/stagedup/pkg/adapters/file"
	"github.com/aretw0/stagedup/pkg/adapters/memory"
	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/params"
)

// DuplicateOptions holds the flags of the duplicate command.
type DuplicateOptions struct {
	StagePath    string
	Selection    []string
	Count        int
	Distance     float64
	Axis         string
	UseInstances bool
	DryRun       bool
	Report       bool
}

// Raw returns the options as the loosely typed parameter map a host hands in.
func (o DuplicateOptions) Raw() map[string]any {
	return map[string]any{
		params.KeyCount:        o.Count,
		params.KeyDistance:     o.Distance,
		params.KeyAxis:         o.Axis,
		params.KeyUseInstances: o.UseInstances,
	}
}

// RunDuplicate loads a stage file, runs one trigger and writes the file back
// when anything was created. The status line always goes to out.
func RunDuplicate(ctx context.Context, opts DuplicateOptions, out io.Writer, profile termenv.Profile, logger *slog.Logger) (domain.Result, error) {
	snap, err := file.ReadStage(opts.StagePath)
	if err != nil {
		return domain.Result{}, err
	}
	stage, err := memory.FromSnapshot(snap)
	if err != nil {
		return domain.Result{}, fmt.Errorf("failed to open stage: %w", err)
	}

	dup := stagedup.New(stagedup.WithLogger(logger))
	res := dup.Trigger(ctx, stage, opts.Selection, opts.Raw())

	fmt.Fprintln(out, tui.StatusLine(res, profile))
	if opts.Report && res.Err == nil {
		fmt.Fprint(out, tui.RunReport(res))
	}

	if res.Err != nil || res.Created == 0 || opts.DryRun {
		return res, nil
	}
	if err := file.WriteStage(opts.StagePath, stage.Snapshot()); err != nil {
		return res, err
	}
	logger.Info("stage written", "path", opts.StagePath, "created", res.Created)
	return res, nil
}
