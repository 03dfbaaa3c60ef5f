package bookdex

import (
	"time"

	"github.com/kailas-cloud/bookdex/internal/domain"
	"github.com/kailas-cloud/bookdex/internal/domain/aggregate"
	dombook "github.com/kailas-cloud/bookdex/internal/domain/book"
	"github.com/kailas-cloud/bookdex/internal/domain/search/result"
)

// Sentinel errors, matchable with errors.Is.
var (
	ErrNotFound       = domain.ErrNotFound
	ErrAlreadyExists  = domain.ErrAlreadyExists
	ErrInvalidRequest = domain.ErrInvalidRequest
)

// Book is a stored book record.
type Book struct {
	ID        string
	Title     string
	Subtitle  string
	Content   string
	PublishAt time.Time
}

// Hit is one search result.
type Hit struct {
	ID     string
	Key    string
	Score  float64
	Fields map[string]string
}

// SearchResult is a page of hits plus the total match count.
type SearchResult struct {
	Total int
	Hits  []Hit
}

// AggregateResult is the tabular output of an aggregation.
type AggregateResult struct {
	Total int
	Rows  []map[string]string
}

func bookFromDomain(b dombook.Book) Book {
	return Book{
		ID:        b.ID(),
		Title:     b.Title(),
		Subtitle:  b.Subtitle(),
		Content:   b.Content(),
		PublishAt: b.PublishTime(),
	}
}

func searchResultFromDomain(r result.Result) SearchResult {
	hits := make([]Hit, len(r.Documents))
	for i, d := range r.Documents {
		hits[i] = Hit{ID: d.ID, Key: d.Key, Score: d.Score, Fields: d.Fields}
	}
	return SearchResult{Total: r.Total, Hits: hits}
}

func aggregateResultFromDomain(r aggregate.Result) AggregateResult {
	rows := make([]map[string]string, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = row
	}
	return AggregateResult{Total: r.Total, Rows: rows}
}
