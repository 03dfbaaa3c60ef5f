package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/bookdex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn    func(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	aggregateFn func(ctx context.Context, q *db.AggregateQuery) (*db.AggregateResult, error)
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) Aggregate(ctx context.Context, q *db.AggregateQuery) (*db.AggregateResult, error) {
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx, q)
	}
	return &db.AggregateResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "idx-books"), ms
}
