// Package documents persists policy documents and feeds their text into the
// in-memory chunk store.
package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ziadkadry99/claimdesk/internal/db"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

const timeLayout = "2006-01-02 15:04:05.000000"

var documentColumns = []string{
	"id", "name", "type", "upload_date", "processed", "error",
	"content_hash", "text_content", "text_length", "chunk_count", "policy_info",
}

// Store provides access to the documents table.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Upsert inserts a document or replaces the record with the same name.
func (s *Store) Upsert(ctx context.Context, doc *Document) error {
	if doc.Name == "" {
		return errors.New("document name is required")
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.UploadDate.IsZero() {
		doc.UploadDate = time.Now().UTC()
	}
	if doc.Type == "" {
		doc.Type = "text"
	}

	info, err := json.Marshal(doc.PolicyInfo)
	if err != nil {
		return fmt.Errorf("marshalling policy info: %w", err)
	}
	var errText sql.NullString
	if doc.Error != "" {
		errText = sql.NullString{String: doc.Error, Valid: true}
	}

	query, args, err := sq.Insert("documents").
		Columns(documentColumns...).
		Values(doc.ID, doc.Name, doc.Type, doc.UploadDate.UTC().Format(timeLayout), doc.Processed, errText,
			doc.ContentHash, doc.TextContent, doc.TextLength, doc.ChunkCount, string(info)).
		Suffix(`ON CONFLICT(name) DO UPDATE SET
			id = excluded.id, type = excluded.type, upload_date = excluded.upload_date,
			processed = excluded.processed, error = excluded.error, content_hash = excluded.content_hash,
			text_content = excluded.text_content, text_length = excluded.text_length,
			chunk_count = excluded.chunk_count, policy_info = excluded.policy_info`).
		ToSql()
	if err != nil {
		return fmt.Errorf("building document upsert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}
	return nil
}

// GetByName returns the document with the given name.
func (s *Store) GetByName(ctx context.Context, name string) (*Document, error) {
	query, args, err := sq.Select(documentColumns...).From("documents").Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building document query: %w", err)
	}
	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting document %s: %w", name, err)
	}
	return doc, nil
}

func applyFilter(b sq.SelectBuilder, f Filter) sq.SelectBuilder {
	if f.Processed != nil {
		b = b.Where(sq.Eq{"processed": *f.Processed})
	}
	if f.Type != "" {
		b = b.Where(sq.Eq{"type": f.Type})
	}
	return b
}

// Find returns matching documents ordered by upload date.
func (s *Store) Find(ctx context.Context, f Filter) ([]Document, error) {
	query, args, err := applyFilter(sq.Select(documentColumns...).From("documents"), f).
		OrderBy("upload_date ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building find query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// Count returns the number of matching documents.
func (s *Store) Count(ctx context.Context, f Filter) (int, error) {
	query, args, err := applyFilter(sq.Select("COUNT(*)").From("documents"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count query: %w", err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// DistinctTypes returns the document types present in the store.
func (s *Store) DistinctTypes(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("DISTINCT type").From("documents").OrderBy("type").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building distinct query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying document types: %w", err)
	}
	defer rows.Close()

	types := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(sc scanner) (*Document, error) {
	var (
		doc      Document
		uploaded string
		errText  sql.NullString
		info     string
	)
	err := sc.Scan(&doc.ID, &doc.Name, &doc.Type, &uploaded, &doc.Processed, &errText,
		&doc.ContentHash, &doc.TextContent, &doc.TextLength, &doc.ChunkCount, &info)
	if err != nil {
		return nil, err
	}
	doc.UploadDate = parseTimestamp(uploaded)
	doc.Error = errText.String
	if err := json.Unmarshal([]byte(info), &doc.PolicyInfo); err != nil {
		return nil, fmt.Errorf("decoding policy info: %w", err)
	}
	return &doc, nil
}

func parseTimestamp(ts string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, time.DateTime} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}
