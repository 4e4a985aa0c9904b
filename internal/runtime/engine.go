package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/ports"
)

// Engine runs the duplicate loop over a stage.
type Engine struct {
	placer *Placer
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine. Without a logger it stays silent.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		placer: NewPlacer(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run makes req.Count duplicates of every prim in selection.
//
// Rejections happen before any mutation and come back as Result.Err with the
// matching status. Once the loop starts, no per-copy failure stops it: sources
// that do not resolve are skipped, failed creations are not counted, and copies
// whose offset could not be applied still are.
func (e *Engine) Run(ctx context.Context, stage ports.Stage, selection []domain.Path, req domain.Request) domain.Result {
	if err := req.Validate(); err != nil {
		return domain.Rejected(err)
	}
	if !ports.IsOpen(stage) {
		return domain.Rejected(domain.ErrNoStage)
	}
	if len(selection) == 0 {
		return domain.Rejected(domain.ErrEmptySelection)
	}

	stageID := StageID(stage)
	logger := e.logger.With("stage", stageID)
	started := e.now()

	if e.hooks.OnRunStart != nil {
		e.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: started, Type: domain.EventRunStart, StageID: stageID},
			Request:   req,
			Selection: selection,
		})
	}
	logger.Debug("duplicate run started",
		"selection", len(selection),
		"count", req.Count,
		"distance", req.Distance,
		"axis", req.Axis.String(),
		"instances", req.UseInstances,
	)

	var result domain.Result
	occupied := stageOccupied(stage)
	for _, path := range selection {
		source, ok := resolveSource(stage, path)
		if !ok {
			logger.Debug("skipping unresolved source", "path", path)
			result.Skipped = append(result.Skipped, path)
			continue
		}

		for i := 1; i <= req.Count; i++ {
			attempt := e.attempt(stage, source, path, req, i, occupied)
			result.Attempts = append(result.Attempts, attempt)
			if attempt.Counted() {
				result.Created++
			}
			e.logAttempt(logger, attempt)

			if e.hooks.OnAttempt != nil {
				e.hooks.OnAttempt(ctx, &domain.AttemptEvent{
					EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventAttempt, StageID: stageID},
					Attempt:   attempt,
				})
			}
		}
	}

	result.Status = domain.StatusDone(result.Created)
	duration := e.now().Sub(started)
	logger.Info("duplicate run finished",
		"created", result.Created,
		"attempts", len(result.Attempts),
		"skipped", len(result.Skipped),
		"duration", duration,
	)

	if e.hooks.OnRunFinish != nil {
		e.hooks.OnRunFinish(ctx, &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventRunFinish, StageID: stageID},
			Request:   req,
			Selection: selection,
			Created:   result.Created,
			Duration:  duration,
		})
	}
	return result
}

// attempt names and places copy number index of the prim at path. A stage
// that panics while names are probed fails this copy only.
func (e *Engine) attempt(stage ports.Stage, source ports.Prim, path domain.Path, req domain.Request, index int, occupied OccupiedFunc) domain.Attempt {
	var attempt domain.Attempt
	err := guard(func() error {
		target := ResolveTarget(path.Parent(), path.Name(), req.Axis, index, occupied)
		attempt = e.placer.Place(stage, source, target, req, index)
		return nil
	})
	if err != nil {
		return domain.Attempt{
			Source:   path,
			Target:   path.Parent().Child(CandidateName(path.Name(), req.Axis, index, 0)),
			Index:    index,
			Strategy: e.placer.strategy(req.UseInstances).Name(),
			Creation: domain.CreationFailed,
			Error:    err.Error(),
		}
	}
	return attempt
}

// resolveSource looks up a selected prim. A lookup that panics leaves the
// source unresolved.
func resolveSource(stage ports.Stage, path domain.Path) (ports.Prim, bool) {
	var source ports.Prim
	err := guard(func() error {
		prim, ok := stage.PrimAt(path)
		if !ok || prim == nil || !prim.IsValid() {
			return domain.ErrPrimNotFound
		}
		source = prim
		return nil
	})
	return source, err == nil
}

func (e *Engine) logAttempt(logger *slog.Logger, a domain.Attempt) {
	switch {
	case a.Creation == domain.CreationFailed:
		logger.Warn("duplicate not created", "source", a.Source, "target", a.Target, "index", a.Index, "err", a.Error)
	case a.Transform == domain.TransformFailed:
		logger.Warn("duplicate created without offset", "target", a.Target, "index", a.Index, "err", a.Error)
	default:
		logger.Debug("duplicate created", "target", a.Target, "index", a.Index, "strategy", a.Strategy)
	}
}

// StageID returns the identifier of stages that expose one, or "".
func StageID(stage ports.Stage) string {
	if s, ok := stage.(interface{ ID() string }); ok {
		return s.ID()
	}
	return ""
}

func stageOccupied(stage ports.Stage) OccupiedFunc {
	return func(p domain.Path) bool {
		prim, ok := stage.PrimAt(p)
		return ok && prim != nil && prim.IsValid()
	}
}
