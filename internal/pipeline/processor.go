// Package pipeline runs claim queries end to end: extraction, chunk search,
// rule evaluation, justification and confidence scoring.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/claimdesk/internal/assess"
	"github.com/ziadkadry99/claimdesk/internal/decision"
	"github.com/ziadkadry99/claimdesk/internal/documents"
	"github.com/ziadkadry99/claimdesk/internal/extract"
	"github.com/ziadkadry99/claimdesk/internal/history"
	"github.com/ziadkadry99/claimdesk/internal/justify"
	"github.com/ziadkadry99/claimdesk/internal/metrics"
	"github.com/ziadkadry99/claimdesk/internal/retrieval"
)

// Options wire a Processor. Table and Chunks are required; the rest may be nil.
type Options struct {
	Table     *decision.Table
	Chunks    *retrieval.Store
	History   *history.Store
	Documents *documents.Store
	Assessor  *assess.Assessor
	Metrics   *metrics.Metrics
	Logger    zerolog.Logger
	TopK      int
}

// Processor answers claim queries. It holds no per-request state and is
// safe for concurrent use.
type Processor struct {
	table     *decision.Table
	parser    *extract.Parser
	engine    *decision.Engine
	chunks    *retrieval.Store
	history   *history.Store
	documents *documents.Store
	assessor  *assess.Assessor
	metrics   *metrics.Metrics
	logger    zerolog.Logger
	topK      int
	now       func() time.Time
}

// New creates a Processor.
func New(opts Options) *Processor {
	if opts.TopK <= 0 {
		opts.TopK = retrieval.DefaultTopK
	}
	if opts.Assessor == nil {
		opts.Assessor = assess.New()
	}
	return &Processor{
		table:     opts.Table,
		parser:    extract.NewParser(opts.Table.ProcedureNames()),
		engine:    decision.NewEngine(opts.Table),
		chunks:    opts.Chunks,
		history:   opts.History,
		documents: opts.Documents,
		assessor:  opts.Assessor,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		topK:      opts.TopK,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ProcessQuery answers one claim query. It never fails: any internal error
// becomes a response with decision "error" and the message in the
// justification. The query is recorded in the session history when a
// history store is configured; an empty sessionID gets a fresh one.
func (p *Processor) ProcessQuery(ctx context.Context, query, sessionID string) QueryResponse {
	start := time.Now()
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	resp := p.evaluate(query)
	resp.SessionID = sessionID

	elapsed := time.Since(start)
	resp.ProcessingTime = elapsed.Seconds()
	resp.Metadata.ProcessingTime = resp.ProcessingTime

	p.metrics.ObserveQuery(string(resp.Decision), elapsed, resp.Metadata.ChunksAnalyzed)
	p.record(ctx, resp)

	p.logger.Info().
		Str("session_id", sessionID).
		Str("decision", string(resp.Decision)).
		Float64("amount", resp.Amount).
		Float64("confidence", resp.ConfidenceScore).
		Dur("elapsed", elapsed).
		Msg("query processed")
	return resp
}

func (p *Processor) evaluate(query string) (resp QueryResponse) {
	defer func() {
		if r := recover(); r != nil {
			resp = p.errorResponse(query, fmt.Sprint(r))
		}
	}()

	parsed := p.parser.Parse(query)
	matches := p.chunks.Search(query, p.topK)
	res := p.engine.Evaluate(parsed, matches)
	if res.Decision == decision.Error {
		return p.errorResponse(query, res.Err)
	}

	return QueryResponse{
		Query:             query,
		Decision:          res.Decision,
		Amount:            res.Amount,
		Justification:     justify.Justification(res, parsed, matches),
		ConfidenceScore:   justify.ConfidenceScore(parsed, matches, res),
		ReferencedClauses: justify.ReferencedClauses(matches),
		ParsedInfo:        &parsed,
		Metadata: Metadata{
			ChunksAnalyzed:  len(matches),
			DecisionFactors: res.Factors,
			Timestamp:       p.now(),
		},
	}
}

func (p *Processor) errorResponse(query, msg string) QueryResponse {
	p.logger.Error().Str("query", query).Str("error", msg).Msg("query processing failed")
	return QueryResponse{
		Query:             query,
		Decision:          decision.Error,
		Amount:            0,
		Justification:     justify.ErrorJustification(msg),
		ConfidenceScore:   0,
		ReferencedClauses: []justify.Clause{},
		Metadata: Metadata{
			DecisionFactors: []string{},
			Timestamp:       p.now(),
		},
	}
}

func (p *Processor) record(ctx context.Context, resp QueryResponse) {
	if p.history == nil {
		return
	}
	result, err := json.Marshal(resp)
	if err != nil {
		p.logger.Warn().Err(err).Msg("encoding query result")
		return
	}
	rec := &history.Record{
		SessionID:       resp.SessionID,
		Query:           resp.Query,
		Decision:        string(resp.Decision),
		Amount:          resp.Amount,
		ConfidenceScore: resp.ConfidenceScore,
		Result:          result,
		Timestamp:       resp.Metadata.Timestamp,
		ProcessingTime:  resp.ProcessingTime,
	}
	if err := p.history.Insert(ctx, rec); err != nil {
		p.logger.Warn().Err(err).Str("session_id", resp.SessionID).Msg("recording query")
	}
}

// SearchSimilarChunks returns the chunks most similar to query. topK <= 0
// uses the configured default.
func (p *Processor) SearchSimilarChunks(query string, topK int) []retrieval.Match {
	if topK <= 0 {
		topK = p.topK
	}
	return p.chunks.Search(query, topK)
}

// Assess returns the advisory estimate for query, using the best matching
// policy chunks as context.
func (p *Processor) Assess(query string) assess.Assessment {
	matches := p.chunks.Search(query, p.topK)
	texts := make([]string, len(matches))
	for i, m := range matches {
		texts[i] = m.Text
	}
	return p.assessor.Assess(query, strings.Join(texts, "\n"))
}

// DecisionRules returns the active decision thresholds.
func (p *Processor) DecisionRules() decision.Rules {
	return p.table.Rules()
}

// Procedures returns the active procedure table.
func (p *Processor) Procedures() []decision.Procedure {
	return p.table.Procedures()
}

// DocumentSummaries lists the documents held by the chunk store.
func (p *Processor) DocumentSummaries() []retrieval.Summary {
	return p.chunks.Summaries()
}

// Info returns the processor configuration snapshot.
func (p *Processor) Info() Info {
	return Info{
		ModelInfo:         p.assessor.ModelInfo(),
		DocumentSummaries: p.DocumentSummaries(),
		DecisionRules:     p.DecisionRules(),
		ProcedureMappings: p.Procedures(),
		Status:            "active",
	}
}

// Stats counts documents, queries and sessions.
func (p *Processor) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{
		TotalDocuments: p.chunks.Len(),
		TotalChunks:    p.chunks.ChunkCount(),
		SystemStatus:   "operational",
	}

	if p.documents != nil {
		n, err := p.documents.Count(ctx, documents.Filter{})
		if err != nil {
			return Stats{}, fmt.Errorf("counting documents: %w", err)
		}
		stats.TotalDocuments = n
	}

	if p.history != nil {
		n, err := p.history.Count(ctx, history.Filter{})
		if err != nil {
			return Stats{}, fmt.Errorf("counting queries: %w", err)
		}
		stats.TotalQueries = n

		sessions, err := p.history.DistinctSessions(ctx)
		if err != nil {
			return Stats{}, fmt.Errorf("listing sessions: %w", err)
		}
		stats.TotalSessions = len(sessions)
	}
	return stats, nil
}
