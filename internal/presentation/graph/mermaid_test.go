package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stagedup/internal/presentation/graph"
	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/dsl"
)

func scene(t *testing.T) *domain.StageSnapshot {
	t.Helper()
	b := dsl.New("city")
	b.Xform("/World")
	b.Mesh("/World/Box")
	b.Add("/World/Props").Type(domain.PrimTypeScope)
	b.Xform("/World/Box_x01").References("/World/Box").Instanceable()
	snap, err := b.Snapshot()
	require.NoError(t, err)
	return snap
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(scene(t), nil)

	tests := []struct {
		name string
		want string
	}{
		{"Header", "graph TD\n"},
		{"Xform Shape", "World[\"World\"]"},
		{"Mesh Shape", "World__Box((\"Box\"))"},
		{"Scope Shape", "World__Props[/\"Props\"/]"},
		{"Instance Label", "World__Box_x01[\"Box_x01 <br/> instance\"]"},
		{"Parent Edge", "World --> World__Box\n"},
		{"Reference Edge", "World__Box_x01 -. ref .-> World__Box\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, out, tt.want)
		})
	}

	assert.NotContains(t, out, "classDef", "no overlay requested")
	assert.NotContains(t, out, "--> World\n", "top-level prims have no parent edge")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	out := graph.GenerateMermaid(scene(t), &graph.Overlay{
		Sources: []domain.Path{"/World/Box"},
		Created: []domain.Path{"/World/Box_x01", "/World/Box_x01"},
	})

	assert.Contains(t, out, "class World__Box source;")
	assert.Equal(t, 1, strings.Count(out, "class World__Box_x01 created;"), "classes are deduplicated")
}

func TestGenerateMermaid_NilSnapshot(t *testing.T) {
	assert.Equal(t, "graph TD\n", graph.GenerateMermaid(nil, nil))
}
