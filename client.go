// Package bookdex is the Go client for the bookdex sample library: it writes the
// sample book hashes, manages the full-text index and runs example queries
// against a search-enabled Redis.
package bookdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbRedis "github.com/kailas-cloud/bookdex/internal/db/redis"
	"github.com/kailas-cloud/bookdex/internal/domain/aggregate"
	bookrepo "github.com/kailas-cloud/bookdex/internal/repository/book"
	indexrepo "github.com/kailas-cloud/bookdex/internal/repository/index"
	searchrepo "github.com/kailas-cloud/bookdex/internal/repository/search"
	"github.com/kailas-cloud/bookdex/internal/usecase/library"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the bookdex SDK entry point. It holds no connection between calls:
// every method dials, runs its request and closes.
type Client struct {
	lib *library.Service
}

// New creates a Client and checks that the engine answers.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("bookdex: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(cfg.storeConfig())
	if err != nil {
		return nil, fmt.Errorf("bookdex: connect: %w", err)
	}
	err = store.WaitForReady(ctx, cfg.readinessTimeout)
	store.Close()
	if err != nil {
		return nil, fmt.Errorf("bookdex: database not ready: %w", err)
	}

	return newClient(redisOpener(cfg)), nil
}

func newClient(open library.Opener) *Client {
	return &Client{lib: library.New(open)}
}

func redisOpener(cfg *clientConfig) library.Opener {
	return func(_ context.Context) (*library.Session, error) {
		store, err := dbRedis.NewStore(cfg.storeConfig())
		if err != nil {
			return nil, err
		}
		return &library.Session{
			Books:   bookrepo.New(store),
			Indexes: indexrepo.New(store, cfg.index),
			Search:  searchrepo.New(store, cfg.index),
			DB:      store,
			Release: store.Close,
		}, nil
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.lib.Ping(ctx); err != nil {
		return fmt.Errorf("bookdex: %w", err)
	}
	return nil
}

// InsertSamples writes the three sample books and returns their keys.
func (c *Client) InsertSamples(ctx context.Context) ([]string, error) {
	keys, err := c.lib.InsertSamples(ctx)
	if err != nil {
		return keys, fmt.Errorf("bookdex: %w", err)
	}
	return keys, nil
}

// Book reads a stored book by id. Missing books yield ErrNotFound.
func (c *Client) Book(ctx context.Context, id string) (Book, error) {
	b, err := c.lib.GetBook(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("bookdex: %w", err)
	}
	return bookFromDomain(b), nil
}

// CreateIndex creates the book index. A duplicate yields ErrAlreadyExists.
func (c *Client) CreateIndex(ctx context.Context) error {
	if _, err := c.lib.CreateIndex(ctx); err != nil {
		return fmt.Errorf("bookdex: %w", err)
	}
	return nil
}

// DropIndex drops the book index; deleteDocs also removes the indexed hashes.
func (c *Client) DropIndex(ctx context.Context, deleteDocs bool) error {
	if _, err := c.lib.DropIndex(ctx, deleteDocs); err != nil {
		return fmt.Errorf("bookdex: %w", err)
	}
	return nil
}

// IndexExists reports whether the book index is defined.
func (c *Client) IndexExists(ctx context.Context) (bool, error) {
	ok, err := c.lib.IndexExists(ctx)
	if err != nil {
		return false, fmt.Errorf("bookdex: %w", err)
	}
	return ok, nil
}

// Search runs a full-text query and returns one page of hits in engine order.
func (c *Client) Search(ctx context.Context, query string, opts ...SearchOption) (SearchResult, error) {
	sc := searchConfig{limit: 5}
	for _, o := range opts {
		o(&sc)
	}
	res, err := c.lib.Search(ctx, query, sc.offset, sc.limit, sc.withScores)
	if err != nil {
		return SearchResult{}, fmt.Errorf("bookdex: %w", err)
	}
	return searchResultFromDomain(res), nil
}

// Aggregate runs the example "circulating" pipeline.
func (c *Client) Aggregate(ctx context.Context) (AggregateResult, error) {
	res, err := c.lib.Aggregate(ctx, aggregate.Circulating())
	if err != nil {
		return AggregateResult{}, fmt.Errorf("bookdex: %w", err)
	}
	return aggregateResultFromDomain(res), nil
}
