package ports

import (
	"context"

	"github.com/aretw0/stagedup/pkg/domain"
)

// StageLoader builds a snapshot from an external source (e.g. a document directory).
type StageLoader interface {
	LoadStage(ctx context.Context) (*domain.StageSnapshot, error)
}
