package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/bookdex/internal/db"
)

// Search runs a paginated full-text FT.SEARCH. The query string is passed to
// the engine verbatim; ranking is entirely the engine's.
func (s *Store) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	args, err := buildSearchArgs(q)
	if err != nil {
		return nil, err
	}

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: mapIndexErr(err)}
	}

	if q.WithScores {
		return parseScoredResult(raw)
	}
	return parseListResult(raw)
}

func buildSearchArgs(q *db.SearchQuery) ([]string, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if q.Offset < 0 || q.Limit < 0 {
		return nil, fmt.Errorf("offset and limit must not be negative")
	}

	args := []string{q.IndexName, q.Query}

	if q.WithScores {
		args = append(args, "WITHSCORES")
	}

	args = append(args, "LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit))

	return args, nil
}

// --- Result parsing ---

func parseTotal(raw []rueidis.RedisMessage) (int, error) {
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("%w: parse total: %w", db.ErrMalformedReply, err)
	}
	return int(total), nil
}

func parseListResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := parseTotal(raw)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}
	if (len(raw)-1)%2 != 0 {
		return nil, fmt.Errorf("%w: %d elements after total, want pairs", db.ErrMalformedReply, len(raw)-1)
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/2)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		n := len(entries)
		key, err := raw[i].ToString()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: key: %w", db.ErrMalformedReply, n, err)
		}

		fields, err := parseFieldList(raw[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", db.ErrMalformedReply, n, err)
		}

		entries = append(entries, db.SearchEntry{Key: key, Fields: fields})
	}

	return &db.SearchResult{Total: total, Entries: entries}, nil
}

func parseScoredResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := parseTotal(raw)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}
	if (len(raw)-1)%3 != 0 {
		return nil, fmt.Errorf("%w: %d elements after total, want triples", db.ErrMalformedReply, len(raw)-1)
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/3)
	// 3-stride: [total, key1, score1, fields1, key2, score2, fields2, ...]
	for i := 1; i+2 < len(raw); i += 3 {
		n := len(entries)
		key, err := raw[i].ToString()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: key: %w", db.ErrMalformedReply, n, err)
		}

		scoreStr, err := raw[i+1].ToString()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: score: %w", db.ErrMalformedReply, n, err)
		}
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: score: %w", db.ErrMalformedReply, n, err)
		}

		fields, err := parseFieldList(raw[i+2])
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", db.ErrMalformedReply, n, err)
		}

		entries = append(entries, db.SearchEntry{Key: key, Score: score, Fields: fields})
	}

	return &db.SearchResult{Total: total, Entries: entries}, nil
}

func parseFieldList(msg rueidis.RedisMessage) (map[string]string, error) {
	fields, err := msg.ToArray()
	if err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}
	return parseFieldPairs(fields)
}

// parseFieldPairs decodes a flat [name, value, ...] list.
func parseFieldPairs(fields []rueidis.RedisMessage) (map[string]string, error) {
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("odd field list length %d", len(fields))
	}
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			return nil, fmt.Errorf("field name %d: %w", j/2, err)
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		m[name] = value
	}
	return m, nil
}
