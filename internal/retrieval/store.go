// Package retrieval holds ingested policy documents as overlapping word
// chunks with keyword-count feature vectors and answers similarity queries
// against them.
package retrieval

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// DefaultThreshold is the minimum dot-product score a chunk needs to be returned.
const DefaultThreshold = 0.5

// DefaultTopK is the number of matches returned when the caller does not ask
// for a specific count.
const DefaultTopK = 5

var (
	// ErrEmptyName is returned when a document is ingested without a name.
	ErrEmptyName = errors.New("document name is required")
	// ErrNoText is returned when a document yields no chunks after cleaning.
	ErrNoText = errors.New("document contains no extractable text")
)

var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("claimdesk/documents"))

// DocumentID returns the stable identifier for a document name.
func DocumentID(name string) string {
	return uuid.NewSHA1(documentNamespace, []byte(name)).String()
}

// Chunk is one window of a document's cleaned text.
type Chunk struct {
	Index  int
	Text   string
	Vector []float64
}

// Document is an ingested document and its chunks.
type Document struct {
	ID         string
	Name       string
	TextLength int
	PolicyInfo PolicyInfo
	Chunks     []Chunk
}

// Summary describes a stored document without its chunk text.
type Summary struct {
	ID         string     `json:"id"`
	Name       string     `json:"filename"`
	ChunkCount int        `json:"chunk_count"`
	TextLength int        `json:"text_length"`
	PolicyInfo PolicyInfo `json:"policy_info"`
}

// Match is a chunk that scored above the similarity threshold.
type Match struct {
	Document   string  `json:"document"`
	DocumentID string  `json:"document_id"`
	Text       string  `json:"chunk"`
	Similarity float64 `json:"similarity"`
	ChunkIndex int     `json:"chunk_index"`
}

// Options configure a Store. Zero values fall back to the package defaults;
// a zero overlap is only defaulted when ChunkSize is defaulted too.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
	Threshold    float64
	TopK         int
}

// Store is an in-memory chunk store. Readers never observe a partially
// ingested document, and concurrent ingestion of the same name runs once.
type Store struct {
	mu    sync.RWMutex
	docs  map[string]*Document
	order []string

	group singleflight.Group

	chunkSize    int
	chunkOverlap int
	threshold    float64
	topK         int
}

// NewStore creates an empty Store.
func NewStore(opts Options) *Store {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
		if opts.ChunkOverlap == 0 {
			opts.ChunkOverlap = DefaultChunkOverlap
		}
	}
	if opts.ChunkOverlap < 0 || opts.ChunkOverlap >= opts.ChunkSize {
		opts.ChunkOverlap = 0
	}
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	return &Store{
		docs:         make(map[string]*Document),
		chunkSize:    opts.ChunkSize,
		chunkOverlap: opts.ChunkOverlap,
		threshold:    opts.Threshold,
		topK:         opts.TopK,
	}
}

type ingestResult struct {
	summary Summary
	added   bool
}

// Ingest cleans and chunks text and stores it under name. If a document with
// that name already exists the call is a no-op and added is false.
func (s *Store) Ingest(name, text string) (Summary, bool, error) {
	if name == "" {
		return Summary{}, false, ErrEmptyName
	}
	if existing, ok := s.Get(name); ok {
		return existing, false, nil
	}

	v, err, _ := s.group.Do(name, func() (interface{}, error) {
		if existing, ok := s.Get(name); ok {
			return ingestResult{summary: existing}, nil
		}

		doc, err := s.build(name, text)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if existing, ok := s.docs[name]; ok {
			return ingestResult{summary: summarize(existing)}, nil
		}
		s.docs[name] = doc
		s.order = append(s.order, name)
		return ingestResult{summary: summarize(doc), added: true}, nil
	})
	if err != nil {
		return Summary{}, false, fmt.Errorf("ingest %s: %w", name, err)
	}
	res := v.(ingestResult)
	return res.summary, res.added, nil
}

func (s *Store) build(name, text string) (*Document, error) {
	cleaned := CleanText(text)
	parts := SplitChunks(cleaned, s.chunkSize, s.chunkOverlap)
	if len(parts) == 0 {
		return nil, ErrNoText
	}

	chunks := make([]Chunk, len(parts))
	for i, part := range parts {
		chunks[i] = Chunk{Index: i, Text: part, Vector: Features(part)}
	}
	return &Document{
		ID:         DocumentID(name),
		Name:       name,
		TextLength: utf8.RuneCountInString(cleaned),
		PolicyInfo: ExtractPolicyInfo(cleaned),
		Chunks:     chunks,
	}, nil
}

// Search scores every stored chunk against the query's feature vector and
// returns up to topK chunks scoring above the threshold, best first. Equal
// scores keep ingestion order. topK <= 0 uses the store default.
func (s *Store) Search(query string, topK int) []Match {
	if topK <= 0 {
		topK = s.topK
	}
	qv := Features(query)

	s.mu.RLock()
	var matches []Match
	for _, name := range s.order {
		doc := s.docs[name]
		for _, c := range doc.Chunks {
			score := Dot(c.Vector, qv)
			if score > s.threshold {
				matches = append(matches, Match{
					Document:   doc.Name,
					DocumentID: doc.ID,
					Text:       c.Text,
					Similarity: score,
					ChunkIndex: c.Index,
				})
			}
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	if matches == nil {
		matches = []Match{}
	}
	return matches
}

// Get returns the summary of a stored document.
func (s *Store) Get(name string) (Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[name]
	if !ok {
		return Summary{}, false
	}
	return summarize(doc), true
}

// Summaries lists stored documents in ingestion order.
func (s *Store) Summaries() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, summarize(s.docs[name]))
	}
	return out
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// ChunkCount returns the total number of stored chunks.
func (s *Store) ChunkCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, doc := range s.docs {
		n += len(doc.Chunks)
	}
	return n
}

func summarize(doc *Document) Summary {
	return Summary{
		ID:         doc.ID,
		Name:       doc.Name,
		ChunkCount: len(doc.Chunks),
		TextLength: doc.TextLength,
		PolicyInfo: doc.PolicyInfo,
	}
}
