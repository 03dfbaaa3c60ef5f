package db

// SearchQuery is the input for a paginated FT.SEARCH.
type SearchQuery struct {
	IndexName  string
	Query      string
	Offset     int
	Limit      int
	WithScores bool
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
