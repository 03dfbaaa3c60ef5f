package request

import "fmt"

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	// DefaultLimit is the page size callers use when none is given.
	DefaultLimit = 5
	MaxLimit     = 1000
)

// Request is a validated free-text search with offset/limit pagination.
type Request struct {
	text       string
	offset     int
	limit      int
	withScores bool
}

// New validates search parameters. The limit is sent to the engine as given;
// zero asks only for the total.
func New(text string, offset, limit int, withScores bool) (Request, error) {
	if text == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(text) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if offset < 0 {
		return Request{}, fmt.Errorf("offset must not be negative")
	}
	if limit < 0 {
		return Request{}, fmt.Errorf("limit must not be negative")
	}
	if limit > MaxLimit {
		return Request{}, fmt.Errorf("limit %d exceeds max %d", limit, MaxLimit)
	}

	return Request{text: text, offset: offset, limit: limit, withScores: withScores}, nil
}

// Text returns the query expression, passed to the engine verbatim.
func (r Request) Text() string { return r.text }

// Offset returns the number of results to skip.
func (r Request) Offset() int { return r.offset }

// Limit returns the page size.
func (r Request) Limit() int { return r.limit }

// WithScores reports whether engine scores should be returned.
func (r Request) WithScores() bool { return r.withScores }
