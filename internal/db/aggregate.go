package db

import (
	"errors"
	"fmt"
)

// AggregateStepKind selects the FT.AGGREGATE clause a step renders to.
type AggregateStepKind int

const (
	// StepLoad renders LOAD n @f1 ... @fn.
	StepLoad AggregateStepKind = iota
	// StepApply renders APPLY expr AS name.
	StepApply
	// StepSortBy renders SORTBY 2n @f1 ASC|DESC ...
	StepSortBy
)

// SortKey is one SORTBY property with its direction.
type SortKey struct {
	Field string
	Desc  bool
}

// AggregateStep is a single pipeline clause. Only the fields matching Kind are read.
type AggregateStep struct {
	Kind AggregateStepKind

	// LOAD
	Fields []string

	// APPLY
	Expr string
	As   string

	// SORTBY
	Keys []SortKey
}

// AggregateQuery is the input for FT.AGGREGATE.
type AggregateQuery struct {
	IndexName string
	Query     string
	Steps     []AggregateStep
}

// AggregateResult is the tabular output of FT.AGGREGATE.
type AggregateResult struct {
	Total int
	Rows  []map[string]string
}

// Validate checks that the query can be rendered into a command.
func (q *AggregateQuery) Validate() error {
	if q.IndexName == "" {
		return errors.New("index name is required")
	}
	if q.Query == "" {
		return errors.New("query is required")
	}
	for i := range q.Steps {
		st := &q.Steps[i]
		switch st.Kind {
		case StepLoad:
			if len(st.Fields) == 0 {
				return fmt.Errorf("step %d: LOAD requires at least one field", i)
			}
		case StepApply:
			if st.Expr == "" || st.As == "" {
				return fmt.Errorf("step %d: APPLY requires expression and alias", i)
			}
		case StepSortBy:
			if len(st.Keys) == 0 {
				return fmt.Errorf("step %d: SORTBY requires at least one key", i)
			}
		default:
			return fmt.Errorf("step %d: unknown step kind %d", i, st.Kind)
		}
	}
	return nil
}
