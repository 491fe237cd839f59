package documents

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/claimdesk/internal/metrics"
	"github.com/ziadkadry99/claimdesk/internal/progress"
	"github.com/ziadkadry99/claimdesk/internal/retrieval"
	"github.com/ziadkadry99/claimdesk/internal/walker"
)

// Report summarises a directory ingestion run.
type Report struct {
	Total    int `json:"total"`
	Ingested int `json:"ingested"`
	Restored int `json:"restored"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Ingester reads policy documents, loads them into the chunk store and
// records the outcome in the document store. Failures are recorded on the
// document, never returned, so one bad file does not stop a batch.
type Ingester struct {
	store   *Store
	chunks  *retrieval.Store
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewIngester creates an Ingester. m may be nil.
func NewIngester(store *Store, chunks *retrieval.Store, logger zerolog.Logger, m *metrics.Metrics) *Ingester {
	return &Ingester{store: store, chunks: chunks, logger: logger, metrics: m}
}

// IngestText ingests already extracted text under name. If the chunk store
// already holds a document with that name, the stored record is returned
// unchanged.
func (in *Ingester) IngestText(ctx context.Context, name string, format walker.Format, text, contentHash string) (*Document, error) {
	if contentHash == "" {
		contentHash = walker.HashBytes([]byte(text))
	}

	summary, added, err := in.chunks.Ingest(name, text)
	if err != nil {
		return in.recordFailure(ctx, name, format, contentHash, err)
	}

	if !added {
		doc, err := in.store.GetByName(ctx, name)
		if err == nil {
			in.observe("skipped")
			return doc, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	cleaned := retrieval.CleanText(text)
	doc := &Document{
		ID:          summary.ID,
		Name:        name,
		Type:        formatType(format),
		Processed:   true,
		ContentHash: contentHash,
		TextContent: cleaned,
		TextLength:  utf8.RuneCountInString(cleaned),
		ChunkCount:  summary.ChunkCount,
		PolicyInfo:  summary.PolicyInfo,
	}
	if err := in.store.Upsert(ctx, doc); err != nil {
		return nil, fmt.Errorf("recording document %s: %w", name, err)
	}

	in.observe("ingested")
	in.logger.Info().
		Str("document", name).
		Int("chunks", doc.ChunkCount).
		Int("text_length", doc.TextLength).
		Msg("document ingested")
	return doc, nil
}

// IngestFile extracts and ingests one discovered file.
func (in *Ingester) IngestFile(ctx context.Context, file walker.FileInfo) (*Document, error) {
	text, err := ReadFile(file.Path, file.Format)
	if err != nil {
		return in.recordFailure(ctx, file.RelPath, file.Format, file.ContentHash, err)
	}
	return in.IngestText(ctx, file.RelPath, file.Format, text, file.ContentHash)
}

// IngestDir discovers documents under cfg.RootDir and ingests each one.
// Files whose stored record has the same content hash are restored from the
// database instead of being read again.
func (in *Ingester) IngestDir(ctx context.Context, cfg walker.Config, reporter progress.Reporter) (Report, error) {
	if reporter == nil {
		reporter = progress.Nop{}
	}

	files, err := walker.Walk(cfg)
	if err != nil {
		return Report{}, fmt.Errorf("discovering documents: %w", err)
	}

	report := Report{Total: len(files)}
	reporter.Start(len(files))
	defer reporter.Finish()

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		reporter.Update(i+1, file.RelPath)

		if _, ok := in.chunks.Get(file.RelPath); ok {
			report.Skipped++
			continue
		}

		if prev, err := in.store.GetByName(ctx, file.RelPath); err == nil && prev.Processed && prev.ContentHash == file.ContentHash {
			if err := in.restore(prev); err != nil {
				in.logger.Warn().Err(err).Str("document", prev.Name).Msg("restore failed, re-reading file")
			} else {
				report.Restored++
				continue
			}
		}

		doc, err := in.IngestFile(ctx, file)
		if err != nil {
			return report, err
		}
		if doc.Processed {
			report.Ingested++
		} else {
			report.Failed++
		}
	}
	return report, nil
}

// Restore loads every processed document from the database into the chunk
// store. It returns the number of documents restored.
func (in *Ingester) Restore(ctx context.Context) (int, error) {
	processed := true
	docs, err := in.store.Find(ctx, Filter{Processed: &processed})
	if err != nil {
		return 0, fmt.Errorf("loading documents: %w", err)
	}

	n := 0
	for i := range docs {
		if err := in.restore(&docs[i]); err != nil {
			in.logger.Warn().Err(err).Str("document", docs[i].Name).Msg("skipping stored document")
			continue
		}
		n++
	}
	if n > 0 {
		in.logger.Info().Int("documents", n).Int("chunks", in.chunks.ChunkCount()).Msg("restored documents")
	}
	return n, nil
}

func (in *Ingester) restore(doc *Document) error {
	_, _, err := in.chunks.Ingest(doc.Name, doc.TextContent)
	if err != nil {
		return err
	}
	in.observe("restored")
	return nil
}

func (in *Ingester) recordFailure(ctx context.Context, name string, format walker.Format, hash string, cause error) (*Document, error) {
	in.logger.Warn().Err(cause).Str("document", name).Msg("document ingestion failed")

	doc := &Document{
		ID:          retrieval.DocumentID(name),
		Name:        name,
		Type:        formatType(format),
		Processed:   false,
		Error:       cause.Error(),
		ContentHash: hash,
	}
	if err := in.store.Upsert(ctx, doc); err != nil {
		return nil, fmt.Errorf("recording failed document %s: %w", name, err)
	}
	in.observe("failed")
	return doc, nil
}

func (in *Ingester) observe(status string) {
	in.metrics.ObserveIngest(status, in.chunks.ChunkCount())
}

func formatType(f walker.Format) string {
	if f == walker.FormatUnknown {
		return string(walker.FormatText)
	}
	return string(f)
}
