package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/ports"
)

const ext = ".yaml"

// Store implements ports.StageStore using the local filesystem.
// It stores one YAML stage file per stage in a configured directory.
type Store struct {
	BasePath string
}

var _ ports.StageStore = (*Store)(nil)

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".stagedup/stages".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".stagedup", "stages")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(stageID string) string {
	return filepath.Join(s.BasePath, stageID+ext)
}

// Save persists the snapshot atomically.
func (s *Store) Save(ctx context.Context, stageID string, snapshot *domain.StageSnapshot) error {
	if err := domain.ValidateStageID(stageID); err != nil {
		return err
	}
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	stored := snapshot.Clone()
	stored.ID = stageID
	return WriteStage(s.path(stageID), stored)
}

// Load retrieves the snapshot from its YAML file.
func (s *Store) Load(ctx context.Context, stageID string) (*domain.StageSnapshot, error) {
	if err := domain.ValidateStageID(stageID); err != nil {
		return nil, err
	}

	snap, err := ReadStage(s.path(stageID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrStageNotFound
		}
		return nil, err
	}
	snap.ID = stageID
	return snap, nil
}

// Delete removes the stage file.
func (s *Store) Delete(ctx context.Context, stageID string) error {
	if err := domain.ValidateStageID(stageID); err != nil {
		return err
	}

	err := os.Remove(s.path(stageID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete stage file: %w", err)
	}
	return nil
}

// List returns all stored stage IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ext))
	}
	sort.Strings(ids)
	return ids, nil
}
