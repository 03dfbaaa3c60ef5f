package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/bookdex/internal/db"
	"github.com/kailas-cloud/bookdex/internal/domain"
	"github.com/kailas-cloud/bookdex/internal/domain/aggregate"
	dombook "github.com/kailas-cloud/bookdex/internal/domain/book"
	"github.com/kailas-cloud/bookdex/internal/domain/search/request"
	"github.com/kailas-cloud/bookdex/internal/domain/search/result"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	Aggregate(ctx context.Context, q *db.AggregateQuery) (*db.AggregateResult, error)
}

// Repo implements usecase/library.SearchRepository over one index.
type Repo struct {
	store store
	index string
}

// New creates a search repository.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// Search runs a free-text query and returns documents in engine order.
func (r *Repo) Search(ctx context.Context, req request.Request) (result.Result, error) {
	q := &db.SearchQuery{
		IndexName:  r.index,
		Query:      req.Text(),
		Offset:     req.Offset(),
		Limit:      req.Limit(),
		WithScores: req.WithScores(),
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		return result.Result{}, fmt.Errorf("search %s: %w", r.index, mapNotFound(err))
	}

	return toResult(sr), nil
}

// Aggregate submits the pipeline and returns its rows.
func (r *Repo) Aggregate(ctx context.Context, p aggregate.Pipeline) (aggregate.Result, error) {
	q, err := toAggregateQuery(r.index, p)
	if err != nil {
		return aggregate.Result{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	ar, err := r.store.Aggregate(ctx, q)
	if err != nil {
		return aggregate.Result{}, fmt.Errorf("aggregate %s: %w", r.index, mapNotFound(err))
	}

	rows := make([]aggregate.Row, len(ar.Rows))
	for i, row := range ar.Rows {
		rows[i] = aggregate.Row(row)
	}
	return aggregate.Result{Total: ar.Total, Rows: rows}, nil
}

func toResult(sr *db.SearchResult) result.Result {
	if sr == nil {
		return result.Result{}
	}

	docs := make([]result.Document, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		docs = append(docs, result.Document{
			ID:     dombook.IDFromKey(e.Key),
			Key:    e.Key,
			Score:  e.Score,
			Fields: e.Fields,
		})
	}
	return result.Result{Total: sr.Total, Documents: docs}
}

func toAggregateQuery(index string, p aggregate.Pipeline) (*db.AggregateQuery, error) {
	q := &db.AggregateQuery{IndexName: index, Query: p.Query()}

	for _, st := range p.Stages() {
		switch st.Kind() {
		case aggregate.Load:
			q.Steps = append(q.Steps, db.AggregateStep{Kind: db.StepLoad, Fields: st.Fields()})
		case aggregate.Apply:
			q.Steps = append(q.Steps, db.AggregateStep{Kind: db.StepApply, Expr: st.Expr(), As: st.As()})
		case aggregate.SortBy:
			q.Steps = append(q.Steps, db.AggregateStep{
				Kind: db.StepSortBy,
				Keys: []db.SortKey{{Field: st.Field(), Desc: st.Direction() == aggregate.Desc}},
			})
		default:
			return nil, fmt.Errorf("unsupported stage %q", st.Kind())
		}
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// mapNotFound tags a missing index with domain.ErrNotFound while keeping the engine error.
func mapNotFound(err error) error {
	if errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return err
}
