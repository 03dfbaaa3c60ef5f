package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/bookdex/internal/db"
	"github.com/kailas-cloud/bookdex/internal/domain"
	dombook "github.com/kailas-cloud/bookdex/internal/domain/book"
)

// store is the consumer interface for index management (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string, deleteDocs bool) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Field weights for the book schema. Title matches count five times as much as body matches.
const (
	ContentWeight = 1.0
	TitleWeight   = 5.0
)

// Repo implements usecase/library.IndexRepository for a single named index.
type Repo struct {
	store store
	name  string
}

// New creates an index repository bound to the given index name.
func New(s store, name string) *Repo {
	return &Repo{store: s, name: name}
}

// Name returns the index name.
func (r *Repo) Name() string { return r.name }

// Schema returns the book index definition:
// content TEXT WEIGHT 1, title TEXT WEIGHT 5, publishAt NUMERIC over book:* hashes.
func Schema(name string) (*db.IndexDefinition, error) {
	def, err := db.NewIndex(name).
		OnHash().
		Prefix(dombook.KeyPrefix).
		TextWeighted(dombook.FieldContent, ContentWeight).
		TextWeighted(dombook.FieldTitle, TitleWeight).
		Numeric(dombook.FieldPublishAt).
		Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	return def, nil
}

// Create declares the index. A duplicate name yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context) error {
	def, err := Schema(r.name)
	if err != nil {
		return err
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return fmt.Errorf("index %s: %w: %w", r.name, domain.ErrAlreadyExists, err)
		}
		return fmt.Errorf("create index %s: %w", r.name, err)
	}
	return nil
}

// Drop removes the index; with deleteDocs the engine also deletes its documents.
// A missing index yields domain.ErrNotFound.
func (r *Repo) Drop(ctx context.Context, deleteDocs bool) error {
	if err := r.store.DropIndex(ctx, r.name, deleteDocs); err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return fmt.Errorf("index %s: %w: %w", r.name, domain.ErrNotFound, err)
		}
		return fmt.Errorf("drop index %s: %w", r.name, err)
	}
	return nil
}

// Exists reports whether the index is declared.
func (r *Repo) Exists(ctx context.Context) (bool, error) {
	ok, err := r.store.IndexExists(ctx, r.name)
	if err != nil {
		return false, fmt.Errorf("index info %s: %w", r.name, err)
	}
	return ok, nil
}
