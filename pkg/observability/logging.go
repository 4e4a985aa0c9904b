package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/stagedup/pkg/domain"
)

// LogHooks returns lifecycle hooks that write one debug line per event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.DebugContext(ctx, "Run Start", "stage", e.StageID, "selection", e.Selection, "count", e.Request.Count)
		},
		OnAttempt: func(ctx context.Context, e *domain.AttemptEvent) {
			a := e.Attempt
			if a.Error != "" {
				logger.DebugContext(ctx, "Attempt (Error)", "target", a.Target, "creation", a.Creation, "transform", a.Transform, "err", a.Error)
			} else {
				logger.DebugContext(ctx, "Attempt (Success)", "target", a.Target, "offset", a.Offset)
			}
		},
		OnRunFinish: func(ctx context.Context, e *domain.RunEvent) {
			logger.DebugContext(ctx, "Run Finish", "stage", e.StageID, "created", e.Created, "duration", e.Duration)
		},
	}
}
