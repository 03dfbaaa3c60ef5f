package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/bookdex/internal/db"
)

// Aggregate runs an FT.AGGREGATE pipeline and returns its rows in engine order.
func (s *Store) Aggregate(ctx context.Context, q *db.AggregateQuery) (*db.AggregateResult, error) {
	args, err := buildAggregateArgs(q)
	if err != nil {
		return nil, err
	}

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: mapIndexErr(err)}
	}

	return parseAggregateResult(raw)
}

func buildAggregateArgs(q *db.AggregateQuery) ([]string, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	args := []string{q.IndexName, q.Query}

	for i := range q.Steps {
		st := &q.Steps[i]
		switch st.Kind {
		case db.StepLoad:
			args = append(args, "LOAD", strconv.Itoa(len(st.Fields)))
			for _, f := range st.Fields {
				args = append(args, property(f))
			}

		case db.StepApply:
			args = append(args, "APPLY", st.Expr, "AS", st.As)

		case db.StepSortBy:
			args = append(args, "SORTBY", strconv.Itoa(len(st.Keys)*2))
			for _, k := range st.Keys {
				dir := "ASC"
				if k.Desc {
					dir = "DESC"
				}
				args = append(args, property(k.Field), dir)
			}
		}
	}

	return args, nil
}

// property renders a field reference in @name form.
func property(name string) string {
	if len(name) > 0 && name[0] == '@' {
		return name
	}
	return "@" + name
}

func parseAggregateResult(raw []rueidis.RedisMessage) (*db.AggregateResult, error) {
	if len(raw) == 0 {
		return &db.AggregateResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("%w: parse total: %w", db.ErrMalformedReply, err)
	}

	rows := make([]map[string]string, 0, len(raw)-1)
	// [total, [k1, v1, k2, v2, ...], [k1, v1, ...], ...]
	for i := 1; i < len(raw); i++ {
		pairs, err := raw[i].ToArray()
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", db.ErrMalformedReply, i-1, err)
		}
		row, err := parseFieldPairs(pairs)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", db.ErrMalformedReply, i-1, err)
		}
		rows = append(rows, row)
	}

	return &db.AggregateResult{Total: int(total), Rows: rows}, nil
}
