package result

// Document is a single search hit in engine order.
type Document struct {
	ID     string            `json:"id" yaml:"id"`
	Key    string            `json:"key" yaml:"key"`
	Score  float64           `json:"score,omitempty" yaml:"score,omitempty"`
	Fields map[string]string `json:"fields" yaml:"fields"`
}

// Result is a page of ranked documents plus the engine's total match count.
type Result struct {
	Total     int        `json:"total" yaml:"total"`
	Documents []Document `json:"documents" yaml:"documents"`
}
