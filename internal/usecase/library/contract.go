package library

import (
	"context"

	"github.com/kailas-cloud/bookdex/internal/domain/aggregate"
	dombook "github.com/kailas-cloud/bookdex/internal/domain/book"
	"github.com/kailas-cloud/bookdex/internal/domain/search/request"
	"github.com/kailas-cloud/bookdex/internal/domain/search/result"
)

// BookRepository stores and loads book records.
type BookRepository interface {
	Put(ctx context.Context, b dombook.Book) error
	Get(ctx context.Context, id string) (dombook.Book, error)
}

// IndexRepository administers the full-text index over book records.
type IndexRepository interface {
	Name() string
	Create(ctx context.Context) error
	Drop(ctx context.Context, deleteDocs bool) error
	Exists(ctx context.Context) (bool, error)
}

// SearchRepository runs queries against the index.
type SearchRepository interface {
	Search(ctx context.Context, req request.Request) (result.Result, error)
	Aggregate(ctx context.Context, p aggregate.Pipeline) (aggregate.Result, error)
}

// Pinger checks connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Session is one connection's worth of repositories.
// Release must be called exactly once when the operation is done.
type Session struct {
	Books   BookRepository
	Indexes IndexRepository
	Search  SearchRepository
	DB      Pinger
	Release func()
}

// Opener opens a fresh Session for a single operation.
type Opener func(ctx context.Context) (*Session, error)
