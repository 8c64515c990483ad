package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"basegraph.app/forum/internal/search"
	"basegraph.app/forum/internal/store"
)

// SearchService keeps the index in step with committed writes and answers queries.
type SearchService interface {
	Reindex(ctx context.Context, issueID int64) error
	Search(ctx context.Context, query string, limit int) ([]search.Document, error)
}

type searchService struct {
	stores  StoreProvider
	indexer search.Indexer
}

func NewSearchService(stores StoreProvider, indexer search.Indexer) SearchService {
	if indexer == nil {
		indexer = search.Nop{}
	}
	return &searchService{stores: stores, indexer: indexer}
}

// Reindex pushes the current state of an issue. A deleted issue is removed.
func (s *searchService) Reindex(ctx context.Context, issueID int64) error {
	issue, err := s.stores.Issues().GetByID(ctx, issueID)
	if errors.Is(err, store.ErrNotFound) {
		return s.remove(ctx, issueID)
	}
	if err != nil {
		return fmt.Errorf("loading issue for indexing: %w", err)
	}

	category, err := s.stores.Categories().GetByID(ctx, issue.CategoryID)
	if err != nil {
		return fmt.Errorf("loading category for indexing: %w", err)
	}

	return s.indexer.Index(ctx, search.ToDocument(issue, category))
}

func (s *searchService) remove(ctx context.Context, issueID int64) error {
	return s.indexer.Remove(ctx, issueID)
}

func (s *searchService) Search(ctx context.Context, query string, limit int) ([]search.Document, error) {
	docs, err := s.indexer.Search(ctx, query, limit)
	if err != nil {
		if errors.Is(err, search.ErrDisabled) {
			return nil, err
		}
		return nil, fmt.Errorf("searching: %w", err)
	}
	return docs, nil
}

// syncIndex runs after a commit. The write already happened, so a failed
// index update is reported in the log and not to the caller.
func syncIndex(ctx context.Context, s SearchService, issueID int64) {
	if s == nil {
		return
	}
	if err := s.Reindex(ctx, issueID); err != nil {
		slog.ErrorContext(ctx, "search index out of date", "error", err, "issue_id", issueID)
	}
}
