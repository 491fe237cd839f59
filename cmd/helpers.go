package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/claimdesk/internal/config"
	"github.com/ziadkadry99/claimdesk/internal/db"
	"github.com/ziadkadry99/claimdesk/internal/decision"
	"github.com/ziadkadry99/claimdesk/internal/documents"
	"github.com/ziadkadry99/claimdesk/internal/history"
	"github.com/ziadkadry99/claimdesk/internal/logger"
	"github.com/ziadkadry99/claimdesk/internal/metrics"
	"github.com/ziadkadry99/claimdesk/internal/pipeline"
	"github.com/ziadkadry99/claimdesk/internal/progress"
	"github.com/ziadkadry99/claimdesk/internal/retrieval"
	"github.com/ziadkadry99/claimdesk/internal/walker"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `claimdesk init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Config{Level: level, Pretty: cfg.Log.Pretty})
}

// app holds the components shared by every command.
type app struct {
	cfg       *config.Config
	logger    zerolog.Logger
	db        *db.DB
	metrics   *metrics.Metrics
	chunks    *retrieval.Store
	documents *documents.Store
	history   *history.Store
	ingester  *documents.Ingester
	processor *pipeline.Processor
}

// openApp opens the database and wires the stores, ingester and processor.
// Documents already recorded in the database are restored into the chunk
// store.
func openApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	m := metrics.New()
	chunks := retrieval.NewStore(retrieval.Options{
		ChunkSize:    cfg.Chunking.Size,
		ChunkOverlap: cfg.Chunking.Overlap,
		Threshold:    cfg.Search.Threshold,
		TopK:         cfg.Search.TopK,
	})
	docs := documents.NewStore(database)
	hist := history.NewStore(database)

	a := &app{
		cfg:       cfg,
		logger:    log,
		db:        database,
		metrics:   m,
		chunks:    chunks,
		documents: docs,
		history:   hist,
		ingester:  documents.NewIngester(docs, chunks, logger.Component(log, "ingest"), m),
		processor: pipeline.New(pipeline.Options{
			Table:     decision.NewTable(cfg.Rules, cfg.Procedures),
			Chunks:    chunks,
			History:   hist,
			Documents: docs,
			Metrics:   m,
			Logger:    logger.Component(log, "pipeline"),
			TopK:      cfg.Search.TopK,
		}),
	}

	n, err := a.ingester.Restore(ctx)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("restoring documents: %w", err)
	}
	log.Debug().Int("documents", n).Msg("restored documents from database")
	return a, nil
}

// ingestDocuments ingests the configured documents directory when it exists.
func (a *app) ingestDocuments(ctx context.Context, dir string, reporter progress.Reporter) (documents.Report, error) {
	if dir == "" {
		dir = a.cfg.DocumentsDir
	}
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			a.logger.Warn().Str("dir", dir).Msg("documents directory not found, nothing to ingest")
			return documents.Report{}, nil
		}
		return documents.Report{}, fmt.Errorf("accessing documents directory: %w", err)
	}

	return a.ingester.IngestDir(ctx, walker.Config{
		RootDir: dir,
		Include: a.cfg.Include,
		Exclude: a.cfg.Exclude,
	}, reporter)
}

func (a *app) Close() error {
	return a.db.Close()
}
