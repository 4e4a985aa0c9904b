package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/stagedup"
	"github.com/aretw0/stagedup/internal/logging"
	"github.com/aretw0/stagedup/internal/presentation/graph"
	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/workspace"
)

const stageURIPrefix = "stagedup://stages/"

// DuplicateResponse is the structured output of the duplicate_along_axis tool.
type DuplicateResponse struct {
	Created int      `json:"created" jsonschema_description:"Number of duplicates created"`
	Status  string   `json:"status" jsonschema_description:"Human-readable outcome"`
	Targets []string `json:"targets" jsonschema_description:"Paths of the created duplicates"`
	Skipped []string `json:"skipped,omitempty" jsonschema_description:"Selected paths that did not resolve"`
}

// Server exposes a stage workspace as an MCP Server.
type Server struct {
	workspace *workspace.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(ws *workspace.Manager, opts ...Option) *Server {
	s := &Server{
		workspace: ws,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("stagedup-mcp", strings.TrimSpace(stagedup.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("duplicate_along_axis",
		mcp.WithDescription("Duplicate the selected prims of a stored stage, offsetting each copy along an axis. Copies are named {name}_{axis}{NN}."),
		mcp.WithString("stage_id", mcp.Required(), mcp.Description("ID of the stored stage")),
		mcp.WithString("selection", mcp.Required(), mcp.Description("Prim paths to duplicate: a JSON array or a comma-separated list")),
		mcp.WithNumber("count", mcp.Description("Copies per prim (default 10)")),
		mcp.WithNumber("distance", mcp.Description("Spacing between copies (default 300)")),
		mcp.WithString("axis", mcp.Description("x, y or z (default z)")),
		mcp.WithBoolean("use_instances", mcp.Description("Create instanceable references instead of deep copies")),
		mcp.WithOutputSchema[DuplicateResponse](),
	), s.handleDuplicate)

	s.mcpServer.AddTool(mcp.NewTool("list_stages",
		mcp.WithDescription("List the IDs of the stored stages."),
	), s.handleListStages)

	s.mcpServer.AddTool(mcp.NewTool("get_stage_graph",
		mcp.WithDescription("Get a Mermaid flowchart of a stage's prim hierarchy."),
		mcp.WithString("stage_id", mcp.Required(), mcp.Description("ID of the stored stage")),
	), s.handleStageGraph)
}

func (s *Server) handleDuplicate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	stageID, _ := args["stage_id"].(string)
	if stageID == "" {
		return mcp.NewToolResultError("stage_id is required"), nil
	}

	raw := make(map[string]any)
	for _, key := range []string{"count", "distance", "axis", "use_instances"} {
		if v, ok := args[key]; ok {
			raw[key] = v
		}
	}

	out, err := s.workspace.Duplicate(ctx, stageID, parseSelection(args["selection"]), raw)
	if err != nil {
		if errors.Is(err, domain.ErrStageNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("stage %q not found", stageID)), nil
		}
		s.logger.Error("MCP duplicate failed", "stage_id", stageID, "err", err)
		return mcp.NewToolResultErrorFromErr("duplicate failed", err), nil
	}
	if out.Result.Err != nil {
		return mcp.NewToolResultError(out.Result.Status), nil
	}

	resp := DuplicateResponse{
		Created: out.Result.Created,
		Status:  out.Result.Status,
		Targets: []string{},
	}
	for _, p := range out.Result.Targets() {
		resp.Targets = append(resp.Targets, string(p))
	}
	for _, p := range out.Result.Skipped {
		resp.Skipped = append(resp.Skipped, string(p))
	}
	return mcp.NewToolResultStructuredOnly(resp), nil
}

func (s *Server) handleListStages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.workspace.List(ctx)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("list failed", err), nil
	}
	if ids == nil {
		ids = []string{}
	}
	jsonBytes, _ := json.Marshal(ids)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleStageGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stageID, _ := request.GetArguments()["stage_id"].(string)
	snap, err := s.workspace.Load(ctx, stageID)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("load failed", err), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(snap, nil)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(stageURIPrefix+"{id}", "Stored Stage",
		mcp.WithTemplateDescription("Snapshot of a stored stage"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.readStage)
}

func (s *Server) readStage(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	stageID := strings.TrimPrefix(uri, stageURIPrefix)
	if stageID == "" || stageID == uri {
		return nil, fmt.Errorf("invalid stage uri %q", uri)
	}

	snap, err := s.workspace.Load(ctx, stageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stage: %w", err)
	}
	jsonBytes, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

// parseSelection accepts a JSON array, a comma-separated string or a list.
func parseSelection(v any) []string {
	switch sel := v.(type) {
	case []string:
		return sel
	case []any:
		out := make([]string, 0, len(sel))
		for _, item := range sel {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		sel = strings.TrimSpace(sel)
		if sel == "" {
			return nil
		}
		var list []string
		if strings.HasPrefix(sel, "[") && json.Unmarshal([]byte(sel), &list) == nil {
			return list
		}
		var out []string
		for _, part := range strings.Split(sel, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}
