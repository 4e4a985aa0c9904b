package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stagedup/pkg/adapters/file"
	"github.com/aretw0/stagedup/pkg/domain"
)

const cityYAML = `id: city
up_axis: Y
prims:
  - path: /World/Box
    type: Mesh
    xform_ops:
      - name: xformOp:translate
        type: translate
        value: {x: 1, y: 2, z: 3}
  - path: /World
    type: Xform
`

func TestDecode(t *testing.T) {
	snap, err := file.Decode([]byte(cityYAML))
	require.NoError(t, err)

	assert.Equal(t, "city", snap.ID)
	assert.Equal(t, domain.AxisY, snap.UpAxis)
	assert.Equal(t, []domain.Path{"/World", "/World/Box"}, snap.Paths(), "parents first")

	box, ok := snap.Find("/World/Box")
	require.True(t, ok)
	v, ok := box.Translate()
	require.True(t, ok)
	assert.Equal(t, domain.Vec3{X: 1, Y: 2, Z: 3}, v)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"relative path", "prims:\n  - path: World\n", domain.ErrInvalidPath},
		{"root listed", "prims:\n  - path: /\n", domain.ErrInvalidPath},
		{"duplicate", "prims:\n  - path: /A\n  - path: /A\n", domain.ErrPrimExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := file.Decode([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := file.Decode([]byte("prims:\n  - path: /A\n    colour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestWriteReadStage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scene.yaml")
	snap, err := file.Decode([]byte(cityYAML))
	require.NoError(t, err)
	snap.ID = ""

	require.NoError(t, file.WriteStage(path, snap))

	loaded, err := file.ReadStage(path)
	require.NoError(t, err)
	assert.Equal(t, "scene", loaded.ID, "id falls back to the file name")
	assert.Equal(t, domain.AxisY, loaded.UpAxis)
	assert.Equal(t, snap.Paths(), loaded.Paths())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestReadStage_Missing(t *testing.T) {
	_, err := file.ReadStage(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
