package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stagedup/internal/testutils"
	"github.com/aretw0/stagedup/pkg/adapters/memory"
	"github.com/aretw0/stagedup/pkg/domain"
)

func setupRepo(t *testing.T, docs map[string]string) *Loader {
	t.Helper()
	_, repo := testutils.SetupTestRepo(t, docs)
	return New(loam.NewTypedRepository[PrimMetadata](repo), "city")
}

func TestLoader_LoadStage(t *testing.T) {
	loader := setupRepo(t, map[string]string{
		"World.md": `---
type: Xform
---
Root of the scene.`,
		"World/Box.md": `---
type: Mesh
translate: [1, 2.5, 300]
---
A box.`,
		"World/Box_inst.md": `---
type: Xform
instanceable: true
references: [/World/Box]
---`,
	})

	snap, err := loader.LoadStage(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "city", snap.ID)
	assert.Equal(t, domain.Path("/World"), snap.Prims[0].Path, "parents first")

	box, ok := snap.Find("/World/Box")
	require.True(t, ok)
	assert.Equal(t, domain.PrimTypeMesh, box.Type)
	v, ok := box.Translate()
	require.True(t, ok)
	assert.Equal(t, domain.Vec3{X: 1, Y: 2.5, Z: 300}, v)

	inst, ok := snap.Find("/World/Box_inst")
	require.True(t, ok)
	assert.True(t, inst.Instanceable)
	assert.Equal(t, []domain.Path{"/World/Box"}, inst.References)

	// The snapshot must materialise.
	stage, err := memory.FromSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, 3, stage.Len())
}

func TestLoader_ExplicitPathAndMissingAncestors(t *testing.T) {
	loader := setupRepo(t, map[string]string{
		"lamp.md": `---
path: /Props/Lights/Lamp
type: Mesh
---`,
	})

	snap, err := loader.LoadStage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Path{"/Props", "/Props/Lights", "/Props/Lights/Lamp"}, snap.Paths())

	props, _ := snap.Find("/Props")
	assert.Equal(t, domain.PrimTypeNone, props.Type)
}

func TestLoader_Collision(t *testing.T) {
	loader := setupRepo(t, map[string]string{
		"a.md": "---\npath: /Box\n---",
		"b.md": "---\npath: /Box\n---",
	})

	_, err := loader.LoadStage(context.Background())
	assert.ErrorContains(t, err, "collision detected")
}

func TestLoader_BadTranslate(t *testing.T) {
	loader := setupRepo(t, map[string]string{
		"Box.md": "---\ntranslate: [1, 2]\n---",
	})

	_, err := loader.LoadStage(context.Background())
	assert.ErrorContains(t, err, "want 3 components")
}

func TestDecodeVec3(t *testing.T) {
	v, err := decodeVec3([]any{1, "2.5", 3.0})
	require.NoError(t, err)
	assert.Equal(t, domain.Vec3{X: 1, Y: 2.5, Z: 3}, v)

	_, err = decodeVec3([]any{1, "x", 3})
	assert.Error(t, err)
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "World/Box", trimExtension("World/Box.md"))
	assert.Equal(t, "Box", trimExtension("/Box.yaml"))
	assert.Equal(t, "Box", trimExtension("Box"))
}
