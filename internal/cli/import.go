package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/stagedup/internal/validator"
	"github.com/aretw0/stagedup/pkg/adapters/file"
	"github.com/aretw0/stagedup/pkg/adapters/loam"
	"github.com/aretw0/stagedup/pkg/adapters/memory"
	"github.com/aretw0/stagedup/pkg/domain"
)

// Import converts a Loam document directory into a stage file.
func Import(ctx context.Context, dir, outPath, stageID string) (*domain.StageSnapshot, error) {
	loader, err := loam.Open(dir)
	if err != nil {
		return nil, err
	}
	if stageID != "" {
		loader.StageID = stageID
	}

	snap, err := loader.LoadStage(ctx)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateStage(snap); err != nil {
		return nil, fmt.Errorf("imported stage is inconsistent: %w", err)
	}
	if _, err := memory.FromSnapshot(snap); err != nil {
		return nil, fmt.Errorf("imported stage is inconsistent: %w", err)
	}
	if err := file.WriteStage(outPath, snap); err != nil {
		return nil, err
	}
	return snap, nil
}
