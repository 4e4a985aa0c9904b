package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/stagedup"
	"github.com/aretw0/stagedup/internal/cli"
	"github.com/aretw0/stagedup/internal/config"
	"github.com/aretw0/stagedup/pkg/adapters/mcp"
	"github.com/aretw0/stagedup/pkg/workspace"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes stored stages to AI agents as MCP tools and resources.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")

		backend, err := cli.OpenBackend(cfg, logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		ws := workspace.NewManager(backend.Store,
			workspace.WithDuplicator(stagedup.New(stagedup.WithLogger(logger))),
			workspace.WithLocker(backend.Locker),
			workspace.WithLogger(logger),
		)
		srv := mcp.NewServer(ws, mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting stagedup MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			if err := srv.ServeSSE(ctx, cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("store", config.StoreFile, "Stage store: file, memory, redis or sqlite")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
