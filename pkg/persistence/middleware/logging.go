package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.StageStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at debug level and failures at warn.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.StageStore) ports.StageStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, stageID string, started time.Time, err error) {
	attrs := []any{"op", op, "stage", stageID, "duration", time.Since(started)}
	if err != nil {
		m.logger.WarnContext(ctx, "stage store call failed", append(attrs, "err", err)...)
		return
	}
	m.logger.DebugContext(ctx, "stage store call", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, stageID string, snapshot *domain.StageSnapshot) error {
	started := time.Now()
	err := m.next.Save(ctx, stageID, snapshot)
	m.log(ctx, "save", stageID, started, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, stageID string) (*domain.StageSnapshot, error) {
	started := time.Now()
	snap, err := m.next.Load(ctx, stageID)
	m.log(ctx, "load", stageID, started, err)
	return snap, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, stageID string) error {
	started := time.Now()
	err := m.next.Delete(ctx, stageID)
	m.log(ctx, "delete", stageID, started, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	started := time.Now()
	ids, err := m.next.List(ctx)
	m.log(ctx, "list", "", started, err)
	return ids, err
}
