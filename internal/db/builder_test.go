package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_Simple(t *testing.T) {
	idx, err := NewIndex("test-idx").
		Prefix("doc:").
		Numeric("price").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name != "test-idx" {
		t.Errorf("name = %q, want test-idx", idx.Name)
	}
	if idx.StorageType != StorageHash {
		t.Errorf("storage = %q, want HASH", idx.StorageType)
	}
	if len(idx.Fields) != 1 {
		t.Fatalf("fields count = %d, want 1", len(idx.Fields))
	}
	if idx.Fields[0].Name != "price" || idx.Fields[0].Type != IndexFieldNumeric {
		t.Errorf("field[0] = %+v, want price NUMERIC", idx.Fields[0])
	}
}

func TestIndexBuilder_TextWeighted(t *testing.T) {
	idx, err := NewIndex("idx-books").
		OnHash().
		Prefix("book:").
		TextWeighted("content", 1.0).
		TextWeighted("title", 5).
		Numeric("publishAt").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(idx.Fields) != 3 {
		t.Fatalf("fields count = %d, want 3", len(idx.Fields))
	}
	if idx.Fields[1].Weight != 5 {
		t.Errorf("title weight = %v, want 5", idx.Fields[1].Weight)
	}
	if idx.Fields[2].Type != IndexFieldNumeric {
		t.Errorf("publishAt type = %v, want NUMERIC", idx.Fields[2].Type)
	}
}

func TestIndexBuilder_MultiplePrefixes(t *testing.T) {
	idx, err := NewIndex("multi-idx").
		Prefix("a:", "b:", "c:").
		Numeric("x").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(idx.Prefixes) != 3 {
		t.Errorf("prefix count = %d, want 3", len(idx.Prefixes))
	}
}

func TestIndexBuilder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder func() (*IndexDefinition, error)
		wantErr string
	}{
		{
			name: "empty name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("").Numeric("x").Build()
			},
			wantErr: "index name is required",
		},
		{
			name: "no fields",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Build()
			},
			wantErr: "at least one field",
		},
		{
			name: "negative weight",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").TextWeighted("title", -1).Build()
			},
			wantErr: "negative weight",
		},
		{
			name: "weight on numeric",
			builder: func() (*IndexDefinition, error) {
				return (&IndexBuilder{def: IndexDefinition{
					Name:   "idx",
					Fields: []IndexField{{Name: "n", Type: IndexFieldNumeric, Weight: 2}},
				}}).Build()
			},
			wantErr: "only valid on TEXT",
		},
		{
			name: "invalid characters",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx with spaces").Numeric("x").Build()
			},
			wantErr: "invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIndexBuilder_DuplicateFields(t *testing.T) {
	idx := &IndexDefinition{
		Name: "dup-idx",
		Fields: []IndexField{
			{Name: "field1", Type: IndexFieldText},
			{Name: "field1", Type: IndexFieldNumeric},
		},
	}

	if err := idx.Validate(); err == nil {
		t.Fatal("expected error for duplicate fields")
	}
}

func TestAggregateQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       AggregateQuery
		wantErr string
	}{
		{
			name: "valid",
			q: AggregateQuery{IndexName: "idx", Query: "*", Steps: []AggregateStep{
				{Kind: StepLoad, Fields: []string{"title"}},
				{Kind: StepApply, Expr: "@title", As: "t"},
				{Kind: StepSortBy, Keys: []SortKey{{Field: "title"}}},
			}},
		},
		{name: "no index", q: AggregateQuery{Query: "*"}, wantErr: "index name"},
		{name: "no query", q: AggregateQuery{IndexName: "idx"}, wantErr: "query is required"},
		{
			name:    "empty load",
			q:       AggregateQuery{IndexName: "idx", Query: "*", Steps: []AggregateStep{{Kind: StepLoad}}},
			wantErr: "LOAD",
		},
		{
			name:    "apply without alias",
			q:       AggregateQuery{IndexName: "idx", Query: "*", Steps: []AggregateStep{{Kind: StepApply, Expr: "@x"}}},
			wantErr: "APPLY",
		},
		{
			name:    "sort without keys",
			q:       AggregateQuery{IndexName: "idx", Query: "*", Steps: []AggregateStep{{Kind: StepSortBy}}},
			wantErr: "SORTBY",
		},
		{
			name:    "unknown kind",
			q:       AggregateQuery{IndexName: "idx", Query: "*", Steps: []AggregateStep{{Kind: 42}}},
			wantErr: "unknown step kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
