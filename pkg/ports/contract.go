package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ContractSnapshot returns the small stage used by the store contract.
func ContractSnapshot(stageID string) *domain.StageSnapshot {
	offset := domain.Vec3{X: 1.5, Y: -2, Z: 300}
	snap := domain.NewSnapshot(stageID)
	snap.Prims = []domain.PrimSpec{
		{Path: "/World", Type: domain.PrimTypeXform},
		{
			Path: "/World/Box",
			Type: domain.PrimTypeMesh,
			XformOps: []domain.XformOpSpec{
				{Name: domain.OpTranslate.OpName(), Type: domain.OpTranslate, Value: &offset},
			},
		},
		{
			Path:         "/World/Box_x01",
			Type:         domain.PrimTypeXform,
			Instanceable: true,
			References:   []domain.Path{"/World/Box"},
		},
	}
	return snap
}

// RunStageStoreContract runs a suite of tests to verify that a StageStore implementation
// adheres to the defined interface contract.
func RunStageStoreContract(t *testing.T, store StageStore) {
	ctx := context.Background()
	stageID := "contract-test-stage-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := ContractSnapshot(stageID)

		err := store.Save(ctx, stageID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, stageID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, stageID, loaded.ID)
		assert.Equal(t, domain.AxisZ, loaded.UpAxis)
		require.Len(t, loaded.Prims, 3)
		assert.Nil(t, domain.DiffSnapshots(snap, loaded), "round trip must not change the stage")

		box, ok := loaded.Find("/World/Box")
		require.True(t, ok)
		v, ok := box.Translate()
		require.True(t, ok)
		assert.InDelta(t, 300.0, v.Z, 1e-9)

		inst, ok := loaded.Find("/World/Box_x01")
		require.True(t, ok)
		assert.True(t, inst.Instanceable)
		assert.Equal(t, []domain.Path{"/World/Box"}, inst.References)
	})

	t.Run("Save isolates caller", func(t *testing.T) {
		snap := ContractSnapshot(stageID + "-iso")
		require.NoError(t, store.Save(ctx, snap.ID, snap))
		defer func() { _ = store.Delete(ctx, snap.ID) }()

		snap.Prims = snap.Prims[:1]

		loaded, err := store.Load(ctx, snap.ID)
		require.NoError(t, err)
		assert.Len(t, loaded.Prims, 3, "mutating the saved value must not leak into the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+stageID)
		assert.ErrorIs(t, err, domain.ErrStageNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, stageID, ContractSnapshot(stageID))
		require.NoError(t, err)

		err = store.Delete(ctx, stageID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, stageID)
		assert.ErrorIs(t, err, domain.ErrStageNotFound, "Load after Delete should return ErrStageNotFound")

		assert.NoError(t, store.Delete(ctx, stageID), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := stageID + "-1"
		id2 := stageID + "-2"
		_ = store.Save(ctx, id1, ContractSnapshot(id1))
		_ = store.Save(ctx, id2, ContractSnapshot(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		stages, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, stages, id1)
		assert.Contains(t, stages, id2)
	})
}
