// Package service provides the business logic layer for content memory,
// discovery, and the viewing library.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cinelogapp/cinelog-server/internal/domain"
	"github.com/cinelogapp/cinelog-server/internal/errors"
	"github.com/cinelogapp/cinelog-server/internal/memory"
	"github.com/cinelogapp/cinelog-server/internal/search"
	"github.com/cinelogapp/cinelog-server/internal/store"
)

// MemoryService orchestrates semantic memory operations: memorizing plots,
// similarity recall, and keyword search over what has been memorized.
// Recall results are reconciled against the viewing library, the same as
// catalog discovery output.
type MemoryService struct {
	store   *memory.Store
	index   *search.Index
	library store.Library
	logger  *slog.Logger
}

// NewMemoryService creates a new memory service.
func NewMemoryService(memStore *memory.Store, index *search.Index, library store.Library, logger *slog.Logger) *MemoryService {
	return &MemoryService{
		store:   memStore,
		index:   index,
		library: library,
		logger:  logger,
	}
}

// Memorize stores a piece of content in semantic memory and returns its
// stable identifier. Calling it again with the same title overwrites the
// previous record rather than duplicating it.
func (s *MemoryService) Memorize(ctx context.Context, in memory.MemorizeInput) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if in.Title == "" {
		return "", errors.Validation("title is required")
	}

	recID, err := s.store.Memorize(ctx, in)
	if err != nil {
		return "", fmt.Errorf("memorize content: %w", err)
	}
	return recID, nil
}

// FindSimilar recalls up to limit memorized items nearest to the query in
// embedding space, reconciled against the library: titles reviewed since they
// were memorized are dropped (so fewer than limit may come back), queued
// titles are flagged. An empty memory yields an empty list; an unreachable
// embedding model is an error the caller must see.
func (s *MemoryService) FindSimilar(ctx context.Context, query string, limit int) ([]memory.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if query == "" {
		return nil, errors.Validation("query is required")
	}

	matches, err := s.store.FindSimilar(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("find similar: %w", err)
	}

	reviews, err := s.library.ListReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	watchlist, err := s.library.ListWatchlist(ctx, domain.WatchlistPending)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	reconciled := ReconcileMatches(matches, watchlist, reviews)

	s.logger.Debug("similarity recall",
		"query", query,
		"matches", len(matches),
		"after_reconcile", len(reconciled),
	)
	return reconciled, nil
}

// SearchKeyword runs a keyword search over memorized content. This is the
// term-match complement to FindSimilar and does not touch the embedder.
func (s *MemoryService) SearchKeyword(ctx context.Context, params search.Params) (*search.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.index.Search(ctx, params)
}

// Forget removes a memorized record by identifier.
func (s *MemoryService) Forget(ctx context.Context, recID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if recID == "" {
		return errors.Validation("id is required")
	}
	return s.store.Forget(ctx, recID)
}

// Count reports how many items are memorized.
func (s *MemoryService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
