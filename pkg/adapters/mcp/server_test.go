package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stagedup/pkg/adapters/memory"
	"github.com/aretw0/stagedup/pkg/dsl"
	"github.com/aretw0/stagedup/pkg/workspace"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	b := dsl.New("city")
	b.Xform("/World")
	b.Mesh("/World/Box")
	snap, err := b.Snapshot()
	require.NoError(t, err)

	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), "city", snap))
	return NewServer(workspace.NewManager(store))
}

// newCallToolRequest builds a tool call request with arguments.
func newCallToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestNewServer(t *testing.T) {
	s := newTestServer(t)
	require.NotNil(t, s.mcpServer)
}

func TestHandleDuplicate(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleDuplicate(context.Background(), newCallToolRequest("duplicate_along_axis", map[string]any{
		"stage_id":      "city",
		"selection":     `["/World/Box", "/World/Gone"]`,
		"count":         float64(2),
		"distance":      float64(50),
		"axis":          "y",
		"use_instances": true,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	resp, ok := result.StructuredContent.(DuplicateResponse)
	require.True(t, ok, "got %T", result.StructuredContent)
	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, "Done: Duplicated 2", resp.Status)
	assert.Equal(t, []string{"/World/Box_y01", "/World/Box_y02"}, resp.Targets)
	assert.Equal(t, []string{"/World/Gone"}, resp.Skipped)

	snap, err := s.workspace.Load(context.Background(), "city")
	require.NoError(t, err)
	inst, ok := snap.Find("/World/Box_y02")
	require.True(t, ok)
	assert.True(t, inst.Instanceable)
}

func TestHandleDuplicate_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"MissingStage", map[string]any{"selection": "/World/Box"}, "stage_id is required"},
		{"UnknownStage", map[string]any{"stage_id": "nope", "selection": "/World/Box"}, `stage "nope" not found`},
		{"EmptySelection", map[string]any{"stage_id": "city", "selection": ""}, "Please select an Xform or Mesh"},
		{"CountNotPositive", map[string]any{"stage_id": "city", "selection": "/World/Box", "count": float64(-1)}, "Count must be > 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleDuplicate(context.Background(), newCallToolRequest("duplicate_along_axis", tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, textOf(t, result), tt.want)
		})
	}
}

func TestHandleListStages(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleListStages(context.Background(), newCallToolRequest("list_stages", nil))
	require.NoError(t, err)

	var ids []string
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &ids))
	assert.Equal(t, []string{"city"}, ids)
}

func TestHandleStageGraph(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleStageGraph(context.Background(), newCallToolRequest("get_stage_graph", map[string]any{"stage_id": "city"}))
	require.NoError(t, err)
	assert.Contains(t, textOf(t, result), "World --> World__Box")
}

func TestReadStage(t *testing.T) {
	s := newTestServer(t)

	var req mcp.ReadResourceRequest
	req.Params.URI = "stagedup://stages/city"
	contents, err := s.readStage(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Contains(t, text.Text, `"/World/Box"`)

	req.Params.URI = "other://city"
	_, err = s.readStage(context.Background(), req)
	assert.Error(t, err)
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"JSONArray", `["/A", "/B"]`, []string{"/A", "/B"}},
		{"Comma", " /A, /B ,", []string{"/A", "/B"}},
		{"List", []any{"/A", 3, "/B"}, []string{"/A", "/B"}},
		{"Empty", "", nil},
		{"Other", 42, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSelection(tt.in))
		})
	}
}
