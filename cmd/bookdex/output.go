package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	dombook "github.com/kailas-cloud/bookdex/internal/domain/book"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func checkFormat(f string) error {
	switch f {
	case formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", f)
	}
}

// render writes v to w as indented JSON or YAML.
func render(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}

// bookView is the rendered shape of a stored book.
type bookView struct {
	ID        string `json:"id" yaml:"id"`
	Key       string `json:"key" yaml:"key"`
	Title     string `json:"title" yaml:"title"`
	Subtitle  string `json:"subtitle" yaml:"subtitle"`
	Content   string `json:"content" yaml:"content"`
	PublishAt int64  `json:"publishAt" yaml:"publishAt"`
	Published string `json:"published" yaml:"published"`
}

func toBookView(b dombook.Book) bookView {
	return bookView{
		ID:        b.ID(),
		Key:       b.Key(),
		Title:     b.Title(),
		Subtitle:  b.Subtitle(),
		Content:   b.Content(),
		PublishAt: b.PublishAt(),
		Published: b.PublishTime().Format(time.RFC3339),
	}
}
