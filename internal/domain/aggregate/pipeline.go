// Package aggregate describes FT.AGGREGATE pipelines as ordered stages.
// Stage semantics are the engine's; this package only records intent.
package aggregate

import "fmt"

// StageKind identifies a pipeline stage.
type StageKind string

const (
	// Load pulls raw document fields into the pipeline.
	Load StageKind = "load"
	// Apply evaluates an expression into a named field.
	Apply StageKind = "apply"
	// SortBy orders rows by a field.
	SortBy StageKind = "sort_by"
)

// Direction is a sort order.
type Direction string

const (
	// Asc sorts ascending.
	Asc Direction = "asc"
	// Desc sorts descending.
	Desc Direction = "desc"
)

// Stage is one step of a pipeline.
type Stage struct {
	kind      StageKind
	fields    []string
	expr      string
	as        string
	field     string
	direction Direction
}

// Kind returns the stage kind.
func (s Stage) Kind() StageKind { return s.kind }

// Fields returns the fields of a Load stage.
func (s Stage) Fields() []string { return s.fields }

// Expr returns the expression of an Apply stage.
func (s Stage) Expr() string { return s.expr }

// As returns the output name of an Apply stage.
func (s Stage) As() string { return s.as }

// Field returns the sort field of a SortBy stage.
func (s Stage) Field() string { return s.field }

// Direction returns the order of a SortBy stage.
func (s Stage) Direction() Direction { return s.direction }

// Pipeline is an immutable query plus ordered stages.
type Pipeline struct {
	query  string
	stages []Stage
}

// Query returns the expression selecting the documents the pipeline runs over.
func (p Pipeline) Query() string { return p.query }

// Stages returns a copy of the stages.
func (p Pipeline) Stages() []Stage {
	out := make([]Stage, len(p.stages))
	copy(out, p.stages)
	return out
}

// Builder assembles a Pipeline.
type Builder struct {
	query  string
	stages []Stage
	err    error
}

// NewBuilder starts a pipeline over documents matching query ("*" for all).
func NewBuilder(query string) *Builder {
	return &Builder{query: query}
}

// Load adds a stage loading the given fields.
func (b *Builder) Load(fields ...string) *Builder {
	if len(fields) == 0 {
		b.fail(fmt.Errorf("load: at least one field is required"))
		return b
	}
	b.stages = append(b.stages, Stage{kind: Load, fields: append([]string(nil), fields...)})
	return b
}

// Apply adds a stage evaluating expr into the field named as.
func (b *Builder) Apply(expr, as string) *Builder {
	if expr == "" || as == "" {
		b.fail(fmt.Errorf("apply: expression and alias are required"))
		return b
	}
	b.stages = append(b.stages, Stage{kind: Apply, expr: expr, as: as})
	return b
}

// SortBy adds a stage ordering rows by field.
func (b *Builder) SortBy(field string, dir Direction) *Builder {
	if field == "" {
		b.fail(fmt.Errorf("sort_by: field is required"))
		return b
	}
	if dir != Asc && dir != Desc {
		b.fail(fmt.Errorf("sort_by: invalid direction %q", dir))
		return b
	}
	b.stages = append(b.stages, Stage{kind: SortBy, field: field, direction: dir})
	return b
}

// Build returns the pipeline or the first error recorded by a stage method.
func (b *Builder) Build() (Pipeline, error) {
	if b.err != nil {
		return Pipeline{}, b.err
	}
	if b.query == "" {
		return Pipeline{}, fmt.Errorf("query is required")
	}
	return Pipeline{query: b.query, stages: append([]Stage(nil), b.stages...)}, nil
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Circulating is the demo pipeline: load title/content/publishAt, rename
// content to post, convert publishAt from milliseconds to seconds, sort by title.
func Circulating() Pipeline {
	p, err := NewBuilder("circulating").
		Load("title", "content", "publishAt").
		Apply("@content", "post").
		Apply("@publishAt/1000", "publishAt").
		SortBy("title", Asc).
		Build()
	if err != nil {
		panic(err)
	}
	return p
}

// Row is one aggregation output row.
type Row map[string]string

// Result is the tabular aggregation output.
type Result struct {
	Total int   `json:"total" yaml:"total"`
	Rows  []Row `json:"rows" yaml:"rows"`
}
