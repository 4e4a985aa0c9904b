package stagedup

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/stagedup/internal/runtime"
	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/params"
	"github.com/aretw0/stagedup/pkg/ports"
)

// Duplicator is the high-level entry point of the library.
// It holds no per-run state, so one value can serve any number of hosts.
type Duplicator struct {
	engine *runtime.Engine
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option defines a functional option for configuring the Duplicator.
type Option func(*Duplicator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Duplicator) {
		d.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls are chained.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Duplicator) {
		d.hooks = d.hooks.Merge(hooks)
	}
}

// New creates a Duplicator.
func New(opts ...Option) *Duplicator {
	d := &Duplicator{}
	for _, opt := range opts {
		opt(d)
	}

	// Never hand a nil logger to the runtime.
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	d.engine = runtime.NewEngine(
		runtime.WithLogger(d.logger),
		runtime.WithLifecycleHooks(d.hooks),
	)
	return d
}

// Run duplicates every prim of selection on stage with an already built request.
func (d *Duplicator) Run(ctx context.Context, stage ports.Stage, selection []domain.Path, req domain.Request) domain.Result {
	return d.engine.Run(ctx, stage, selection, req)
}

// Trigger is the full click handler: it decodes raw host input, applies the
// boundary checks in order and runs the duplication.
//
// Checks, first failure wins: unreadable input, non-positive count, no stage,
// empty selection. Selected strings that are not valid prim paths are reported
// as skipped, like sources that do not exist.
func (d *Duplicator) Trigger(ctx context.Context, stage ports.Stage, selection []string, raw map[string]any) domain.Result {
	req, err := params.Decode(raw)
	if err != nil {
		d.logger.Debug("rejecting trigger", "err", err)
		return domain.Rejected(err)
	}
	if err := req.Validate(); err != nil {
		d.logger.Debug("rejecting trigger", "err", err)
		return domain.Rejected(err)
	}
	if !ports.IsOpen(stage) {
		return domain.Rejected(domain.ErrNoStage)
	}
	if len(selection) == 0 {
		return domain.Rejected(domain.ErrEmptySelection)
	}

	paths, rejected := domain.ParsePaths(selection)
	if len(paths) == 0 {
		res := domain.Result{Status: domain.StatusDone(0)}
		for _, r := range rejected {
			res.Skipped = append(res.Skipped, domain.Path(r))
		}
		return res
	}

	res := d.engine.Run(ctx, stage, paths, req)
	for _, r := range rejected {
		d.logger.Debug("skipping malformed selection entry", "path", r)
		res.Skipped = append(res.Skipped, domain.Path(r))
	}
	return res
}
