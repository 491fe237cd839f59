package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/claimdesk/internal/dashboard"
	"github.com/ziadkadry99/claimdesk/internal/documents"
	"github.com/ziadkadry99/claimdesk/internal/history"
	"github.com/ziadkadry99/claimdesk/internal/logger"
	"github.com/ziadkadry99/claimdesk/internal/pipeline"
	"github.com/ziadkadry99/claimdesk/internal/progress"
	"github.com/ziadkadry99/claimdesk/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the claim desk HTTP server",
	Long:  `Ingests the configured policy documents, then serves the REST API, the claim desk dashboard and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}
		log := newLogger(cfg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := openApp(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.ingestDocuments(ctx, "", progress.Nop{})
		if err != nil {
			return fmt.Errorf("ingesting documents: %w", err)
		}
		log.Info().
			Int("ingested", report.Ingested).
			Int("restored", report.Restored).
			Int("failed", report.Failed).
			Int("chunks", a.chunks.ChunkCount()).
			Msg("policy documents loaded")

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, logger.Component(log, "http"), a.metrics)
		registerAllRoutes(srv, a)

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "claimdesk server v%s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.DatabasePath())
		fmt.Fprintf(os.Stderr, "  Documents: %s (%d loaded)\n", cfg.DocumentsDir, a.chunks.Len())

		return srv.Start()
	},
}

// registerAllRoutes wires up all feature routes.
func registerAllRoutes(srv *server.Server, a *app) {
	r := srv.Router()

	pipeline.RegisterRoutes(r, a.processor)
	documents.RegisterRoutes(r, a.ingester)
	history.RegisterRoutes(r, a.history)

	dash := dashboard.New(a.processor, a.history, logger.Component(a.logger, "dashboard"))
	dash.RegisterRoutes(r)
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8001, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}
