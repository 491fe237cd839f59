package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/claimdesk/internal/mcp"
	"github.com/ziadkadry99/claimdesk/internal/progress"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing claim evaluation and policy search tools to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)
		ctx := context.Background()

		a, err := openApp(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.ingestDocuments(ctx, "", progress.Nop{}); err != nil {
			return fmt.Errorf("ingesting documents: %w", err)
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "claimdesk MCP server started on stdio (documents=%d, chunks=%d)\n",
			a.chunks.Len(), a.chunks.ChunkCount())

		srv := mcpserver.NewServer(a.processor, a.documents)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
