package ports

import (
	"context"

	"github.com/aretw0/stagedup/pkg/domain"
)

// StageStore defines the interface for persisting stage snapshots.
// It lets hosts keep a stage between triggers (CLI files, HTTP workspaces).
type StageStore interface {
	// Save persists the snapshot under the given stage ID.
	Save(ctx context.Context, stageID string, snapshot *domain.StageSnapshot) error

	// Load retrieves the snapshot for a given stage ID.
	// Returns domain.ErrStageNotFound if the stage does not exist.
	Load(ctx context.Context, stageID string) (*domain.StageSnapshot, error)

	// Delete removes the stage. Deleting an unknown stage is not an error.
	Delete(ctx context.Context, stageID string) error

	// List returns the IDs of all stored stages.
	List(ctx context.Context) ([]string, error)
}
