package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker reports whether the search index is defined.
type IndexChecker interface {
	IndexExists(ctx context.Context) (bool, error)
}
