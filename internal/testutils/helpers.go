package testutils

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stagedup/pkg/adapters/file"
	"github.com/aretw0/stagedup/pkg/domain"
)

// SetupTestRepo creates a temporary Loam repository holding docs, keyed by
// document ID (e.g. "World/Box.md"). Versioning is off so no git binary is needed.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, docs map[string]string, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	opts = append([]loam.Option{loam.WithVersioning(false)}, opts...)
	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	ctx := context.Background()
	for id, content := range docs {
		require.NoError(t, repo.Save(ctx, core.Document{ID: id, Content: content}), "Failed to save %s", id)
	}
	return absPath, repo
}

// WriteStageFile writes snap as YAML under a temp dir and returns the file path.
func WriteStageFile(t *testing.T, snap *domain.StageSnapshot) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), snap.ID+".yaml")
	require.NoError(t, file.WriteStage(path, snap), "Failed to write stage file")
	return path
}
