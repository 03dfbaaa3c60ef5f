package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/bookdex/internal/domain"
	"github.com/kailas-cloud/bookdex/internal/domain/aggregate"
	dombook "github.com/kailas-cloud/bookdex/internal/domain/book"
	"github.com/kailas-cloud/bookdex/internal/domain/search/request"
	"github.com/kailas-cloud/bookdex/internal/domain/search/result"
	"github.com/kailas-cloud/bookdex/internal/logger"
	"github.com/kailas-cloud/bookdex/internal/metrics"
)

// Operation names, used as metric labels and log fields.
const (
	OpInsertSamples = "insert_samples"
	OpGetBook       = "get_book"
	OpCreateIndex   = "create_index"
	OpDropIndex     = "drop_index"
	OpIndexExists   = "index_exists"
	OpSearch        = "search"
	OpAggregate     = "aggregate"
	OpPing          = "ping"
)

// Service runs library operations, each on its own session.
type Service struct {
	open    Opener
	samples func() []dombook.Book
}

// New creates a library service.
func New(open Opener) *Service {
	return &Service{open: open, samples: dombook.Samples}
}

// WithSamples overrides the records written by InsertSamples.
func (s *Service) WithSamples(fn func() []dombook.Book) *Service {
	s.samples = fn
	return s
}

// InsertSamples writes every sample book in order and returns the keys written.
// The first failure aborts the run; earlier writes are not rolled back.
func (s *Service) InsertSamples(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.run(ctx, OpInsertSamples, func(ctx context.Context, sess *Session) error {
		for _, b := range s.samples() {
			if err := sess.Books.Put(ctx, b); err != nil {
				return fmt.Errorf("insert %s: %w", b.Key(), err)
			}
			keys = append(keys, b.Key())
		}
		return nil
	})
	return keys, err
}

// GetBook reads a single book by id.
func (s *Service) GetBook(ctx context.Context, id string) (dombook.Book, error) {
	var b dombook.Book
	err := s.run(ctx, OpGetBook, func(ctx context.Context, sess *Session) error {
		got, err := sess.Books.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get book %q: %w", id, err)
		}
		b = got
		return nil
	})
	return b, err
}

// CreateIndex creates the book index and returns its name.
func (s *Service) CreateIndex(ctx context.Context) (string, error) {
	var name string
	err := s.run(ctx, OpCreateIndex, func(ctx context.Context, sess *Session) error {
		name = sess.Indexes.Name()
		if err := sess.Indexes.Create(ctx); err != nil {
			return fmt.Errorf("create index %s: %w", name, err)
		}
		return nil
	})
	return name, err
}

// DropIndex drops the book index. With deleteDocs the indexed hashes go too.
func (s *Service) DropIndex(ctx context.Context, deleteDocs bool) (string, error) {
	var name string
	err := s.run(ctx, OpDropIndex, func(ctx context.Context, sess *Session) error {
		name = sess.Indexes.Name()
		if err := sess.Indexes.Drop(ctx, deleteDocs); err != nil {
			return fmt.Errorf("drop index %s: %w", name, err)
		}
		return nil
	})
	return name, err
}

// IndexExists reports whether the book index is defined.
func (s *Service) IndexExists(ctx context.Context) (bool, error) {
	var ok bool
	err := s.run(ctx, OpIndexExists, func(ctx context.Context, sess *Session) error {
		exists, err := sess.Indexes.Exists(ctx)
		if err != nil {
			return fmt.Errorf("index info %s: %w", sess.Indexes.Name(), err)
		}
		ok = exists
		return nil
	})
	return ok, err
}

// Search runs a full-text query. Documents come back in engine order.
func (s *Service) Search(ctx context.Context, text string, offset, limit int, withScores bool) (result.Result, error) {
	req, err := request.New(text, offset, limit, withScores)
	if err != nil {
		return result.Result{}, fmt.Errorf("search: %w: %w", domain.ErrInvalidRequest, err)
	}

	var res result.Result
	err = s.run(ctx, OpSearch, func(ctx context.Context, sess *Session) error {
		r, err := sess.Search.Search(ctx, req)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		res = r
		return nil
	})
	return res, err
}

// Aggregate submits a pipeline. A zero Pipeline runs the default circulating pipeline.
func (s *Service) Aggregate(ctx context.Context, p aggregate.Pipeline) (aggregate.Result, error) {
	if p.Query() == "" {
		p = aggregate.Circulating()
	}

	var res aggregate.Result
	err := s.run(ctx, OpAggregate, func(ctx context.Context, sess *Session) error {
		r, err := sess.Search.Aggregate(ctx, p)
		if err != nil {
			return fmt.Errorf("aggregate: %w", err)
		}
		res = r
		return nil
	})
	return res, err
}

// Ping checks that the engine answers.
func (s *Service) Ping(ctx context.Context) error {
	return s.run(ctx, OpPing, func(ctx context.Context, sess *Session) error {
		if err := sess.DB.Ping(ctx); err != nil {
			return fmt.Errorf("ping: %w", err)
		}
		return nil
	})
}

// run opens a session, runs fn and releases the session on every exit path.
func (s *Service) run(ctx context.Context, op string, fn func(context.Context, *Session) error) (err error) {
	start := time.Now()
	log := logger.FromContext(ctx).With(zap.String("operation", op))

	defer func() {
		metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		metrics.OperationsTotal.WithLabelValues(op, statusLabel(err)).Inc()
	}()

	sess, err := s.open(ctx)
	if err != nil {
		log.Warn("open session failed", zap.Error(err))
		return fmt.Errorf("connect: %w", err)
	}
	metrics.SessionsOpen.Inc()
	defer func() {
		sess.Release()
		metrics.SessionsOpen.Dec()
	}()

	if err = fn(ctx, sess); err != nil {
		log.Warn("operation failed", zap.Error(err), zap.Duration("latency", time.Since(start)))
		return err
	}
	log.Debug("operation done", zap.Duration("latency", time.Since(start)))
	return nil
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidRequest):
		return "invalid"
	default:
		return "error"
	}
}
