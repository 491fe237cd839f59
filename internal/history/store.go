// Package history persists processed claim queries and the sessions they
// belong to.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ziadkadry99/claimdesk/internal/db"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("not found")

// timeLayout sorts lexically, so ORDER BY timestamp is chronological.
const timeLayout = "2006-01-02 15:04:05.000000"

var recordColumns = []string{
	"id", "session_id", "query", "decision", "amount",
	"confidence_score", "result", "timestamp", "processing_time",
}

// Store provides access to the queries and sessions tables.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Insert stores a query record and bumps its session, creating the session
// on first use. Missing IDs and timestamps are filled in.
func (s *Store) Insert(ctx context.Context, rec *Record) error {
	if rec.SessionID == "" {
		return errors.New("session id is required")
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	if len(rec.Result) == 0 {
		rec.Result = []byte("{}")
	}
	ts := rec.Timestamp.UTC().Format(timeLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	insert, args, err := sq.Insert("queries").
		Columns(recordColumns...).
		Values(rec.ID, rec.SessionID, rec.Query, rec.Decision, rec.Amount,
			rec.ConfidenceScore, string(rec.Result), ts, rec.ProcessingTime).
		ToSql()
	if err != nil {
		return fmt.Errorf("building query insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
		return fmt.Errorf("inserting query record: %w", err)
	}

	upsert, args, err := sq.Insert("sessions").
		Columns("id", "created_at", "updated_at", "query_count").
		Values(rec.SessionID, ts, ts, 1).
		Suffix("ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at, query_count = sessions.query_count + 1").
		ToSql()
	if err != nil {
		return fmt.Errorf("building session upsert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, args...); err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing query record: %w", err)
	}
	return nil
}

func applyFilter(b sq.SelectBuilder, f Filter) sq.SelectBuilder {
	if f.SessionID != "" {
		b = b.Where(sq.Eq{"session_id": f.SessionID})
	}
	if f.Decision != "" {
		b = b.Where(sq.Eq{"decision": f.Decision})
	}
	if f.Since != nil {
		b = b.Where(sq.GtOrEq{"timestamp": f.Since.UTC().Format(timeLayout)})
	}
	return b
}

// Find returns matching records, oldest first.
func (s *Store) Find(ctx context.Context, f Filter) ([]Record, error) {
	b := applyFilter(sq.Select(recordColumns...).From("queries"), f).
		OrderBy("timestamp ASC", "rowid ASC")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	return s.query(ctx, b)
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	b := sq.Select(recordColumns...).From("queries").
		OrderBy("timestamp DESC", "rowid DESC").
		Limit(uint64(limit))
	return s.query(ctx, b)
}

func (s *Store) query(ctx context.Context, b sq.SelectBuilder) ([]Record, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building find query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			rec    Record
			result string
			ts     string
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Query, &rec.Decision, &rec.Amount,
			&rec.ConfidenceScore, &result, &ts, &rec.ProcessingTime); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec.Result = []byte(result)
		rec.Timestamp = parseTimestamp(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of matching records.
func (s *Store) Count(ctx context.Context, f Filter) (int, error) {
	query, args, err := applyFilter(sq.Select("COUNT(*)").From("queries"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count query: %w", err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// DistinctSessions returns every session id that has at least one record.
func (s *Store) DistinctSessions(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("DISTINCT session_id").From("queries").OrderBy("session_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building distinct query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetSession returns a single session.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	query, args, err := sq.Select("id", "created_at", "updated_at", "query_count").
		From("sessions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building session query: %w", err)
	}

	var (
		sess             Session
		created, updated string
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&sess.ID, &created, &updated, &sess.QueryCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	sess.CreatedAt = parseTimestamp(created)
	sess.UpdatedAt = parseTimestamp(updated)
	return &sess, nil
}

// The driver may hand DATETIME columns back already converted, so accept
// the layouts it produces as well as our own.
func parseTimestamp(ts string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, time.DateTime} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}
