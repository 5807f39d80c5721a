// Package memory is the semantic memory of previously seen plots.
//
// Content records are stored in Badger as (text representation, metadata,
// identifier) triples together with their embedding vector. Retrieval is a
// brute-force cosine scan, nearest first; a personal library is small enough
// that an approximate index would only add moving parts.
package memory

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/cinelogapp/cinelog-server/internal/domain"
	"github.com/cinelogapp/cinelog-server/internal/id"
)

// recordPrefix namespaces content records in the key space.
const recordPrefix = "rec:"

// ErrNotFound is returned when a record id has no stored content.
var ErrNotFound = errors.New("memory: record not found")

// SearchIndexer keeps an external keyword index in sync with the store.
// The store calls it on every upsert/delete without depending on the search
// implementation.
type SearchIndexer interface {
	IndexContent(ctx context.Context, rec *domain.ContentRecord) error
	DeleteContent(ctx context.Context, id string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexContent is a no-op.
func (NoopSearchIndexer) IndexContent(context.Context, *domain.ContentRecord) error { return nil }

// DeleteContent is a no-op.
func (NoopSearchIndexer) DeleteContent(context.Context, string) error { return nil }

// MemorizeInput is the payload of a memorize call.
type MemorizeInput struct {
	Title    string
	Overview string
	Rating   int // 0-10, or domain.RatingUnknown
	Genres   []string
}

// Match is one nearest-neighbor result.
type Match struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Overview string  `json:"overview"`
	Score    float64 `json:"score"`

	// InWatchlist is set by the reconciler when the title is already queued.
	InWatchlist bool `json:"in_watchlist,omitempty"`
}

// Store persists content records and their embeddings.
type Store struct {
	db       *badger.DB
	embedder Embedder
	indexer  SearchIndexer
	logger   *slog.Logger
}

// Open opens (or creates) the memory store at the given path.
func Open(path string, embedder Embedder, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable Badger's internal logging
	opts.SyncWrites = true
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	logger.Info("memory store opened", "path", path)

	return &Store{
		db:       db,
		embedder: embedder,
		indexer:  NoopSearchIndexer{},
		logger:   logger,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetSearchIndexer wires the keyword index. Set after store creation to
// avoid a circular dependency between store and search.
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	s.indexer = indexer
}

// Memorize upserts a content record keyed by its title-derived identifier
// and returns that identifier. Memorizing the same title again replaces the
// stored record wholesale (last write wins); the embedding is recomputed
// from the fresh text representation on every call.
func (s *Store) Memorize(ctx context.Context, in MemorizeInput) (string, error) {
	if in.Title == "" {
		return "", fmt.Errorf("memorize: title is required")
	}
	if in.Rating != domain.RatingUnknown && (in.Rating < 0 || in.Rating > 10) {
		return "", fmt.Errorf("memorize: rating %d out of range", in.Rating)
	}

	recID := id.ForTitle(in.Title)
	text := domain.ContentText(in.Title, in.Overview, in.Genres)

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return "", fmt.Errorf("embed %q: %w", in.Title, err)
	}

	now := time.Now().UTC()
	rec := domain.ContentRecord{
		ID:        recID,
		Title:     in.Title,
		Overview:  in.Overview,
		Text:      text,
		Rating:    in.Rating,
		Genres:    in.Genres,
		Vector:    vector,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Preserve the original creation time across upserts.
	if prev, err := s.Get(ctx, recID); err == nil {
		rec.CreatedAt = prev.CreatedAt
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	data, err := json.Marshal(&rec)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(recordPrefix+recID), data)
	})
	if err != nil {
		return "", fmt.Errorf("store record: %w", err)
	}

	if err := s.indexer.IndexContent(ctx, &rec); err != nil {
		s.logger.Warn("failed to index memorized content", "id", recID, "error", err)
	}

	s.logger.Info("memorized content", "id", recID, "title", in.Title)
	return recID, nil
}

// Get retrieves a record by identifier.
func (s *Store) Get(ctx context.Context, recID string) (*domain.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec domain.ContentRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(recordPrefix + recID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get key: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Forget removes a record and its index entry. Missing records are fine.
func (s *Store) Forget(ctx context.Context, recID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(recordPrefix + recID))
	})
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if err := s.indexer.DeleteContent(ctx, recID); err != nil {
		s.logger.Warn("failed to delete content from index", "id", recID, "error", err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte(recordPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// All returns every stored record. Used to repopulate the keyword index
// after a mapping rebuild; a personal library fits in memory.
func (s *Store) All(ctx context.Context) ([]*domain.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var recs []*domain.ContentRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(recordPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec domain.ContentRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("unmarshal record: %w", err)
			}
			recs = append(recs, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// FindSimilar embeds the query with the memorization-time embedding function
// and returns up to limit records ordered nearest first. An empty store
// yields an empty slice, not an error; an unavailable embedder propagates.
func (s *Store) FindSimilar(ctx context.Context, query string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 5
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches := []Match{}
	err = s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(recordPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec domain.ContentRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("unmarshal record: %w", err)
			}
			matches = append(matches, Match{
				ID:       rec.ID,
				Title:    rec.Title,
				Overview: rec.Overview,
				Score:    cosine(queryVec, rec.Vector),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
