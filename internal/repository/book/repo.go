package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/bookdex/internal/db"
	"github.com/kailas-cloud/bookdex/internal/domain"
	dombook "github.com/kailas-cloud/bookdex/internal/domain/book"
)

// store is the consumer interface for book records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Repo implements usecase/library.BookRepository.
type Repo struct {
	store store
}

// New creates a book repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Put writes the book as a hash at book:<id>. Existing fields are overwritten.
func (r *Repo) Put(ctx context.Context, b dombook.Book) error {
	if err := r.store.HSet(ctx, b.Key(), b.Fields()); err != nil {
		return fmt.Errorf("hset %s: %w", b.Key(), err)
	}
	return nil
}

// Get reads book:<id> back.
func (r *Repo) Get(ctx context.Context, id string) (dombook.Book, error) {
	key := dombook.Key(id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dombook.Book{}, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
		}
		return dombook.Book{}, fmt.Errorf("hgetall %s: %w", key, err)
	}

	b, err := dombook.FromFields(id, fields)
	if err != nil {
		return dombook.Book{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return b, nil
}
