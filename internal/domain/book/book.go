// Package book models the sample records stored as Redis hashes under book:<id>.
package book

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// KeyPrefix is the key namespace the book index is bound to.
const KeyPrefix = "book:"

// Hash field names.
const (
	FieldTitle     = "title"
	FieldSubtitle  = "subtitle"
	FieldContent   = "content"
	FieldPublishAt = "publishAt"
)

// Book is a fixed-shape record. PublishAt is epoch milliseconds.
type Book struct {
	id        string
	title     string
	subtitle  string
	content   string
	publishAt int64
}

// New validates and creates a Book.
func New(id, title, subtitle, content string, publishAt int64) (Book, error) {
	if id == "" {
		return Book{}, fmt.Errorf("book id is required")
	}
	if strings.ContainsAny(id, " :") {
		return Book{}, fmt.Errorf("book id %q must not contain spaces or colons", id)
	}
	if publishAt < 0 {
		return Book{}, fmt.Errorf("publishAt must not be negative")
	}
	return Book{
		id: id, title: title, subtitle: subtitle,
		content: content, publishAt: publishAt,
	}, nil
}

// ID returns the book identifier (the part after the key prefix).
func (b Book) ID() string { return b.id }

// Title returns the book title.
func (b Book) Title() string { return b.title }

// Subtitle returns the book subtitle.
func (b Book) Subtitle() string { return b.subtitle }

// Content returns the book body text.
func (b Book) Content() string { return b.content }

// PublishAt returns the publish timestamp in epoch milliseconds.
func (b Book) PublishAt() int64 { return b.publishAt }

// PublishTime returns PublishAt as a UTC time.
func (b Book) PublishTime() time.Time { return time.UnixMilli(b.publishAt).UTC() }

// Key returns the storage key, book:<id>.
func (b Book) Key() string { return Key(b.id) }

// Key builds the storage key for an id.
func Key(id string) string { return KeyPrefix + id }

// IDFromKey strips the key prefix. Keys outside the namespace are returned unchanged.
func IDFromKey(key string) string { return strings.TrimPrefix(key, KeyPrefix) }

// Fields renders the hash fields written to the store.
func (b Book) Fields() map[string]string {
	return map[string]string{
		FieldTitle:     b.title,
		FieldSubtitle:  b.subtitle,
		FieldContent:   b.content,
		FieldPublishAt: strconv.FormatInt(b.publishAt, 10),
	}
}

// FromFields rebuilds a Book from hash fields read back from the store.
func FromFields(id string, fields map[string]string) (Book, error) {
	var publishAt int64
	if raw, ok := fields[FieldPublishAt]; ok && raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Book{}, fmt.Errorf("parse %s %q: %w", FieldPublishAt, raw, err)
		}
		publishAt = v
	}
	return New(id, fields[FieldTitle], fields[FieldSubtitle], fields[FieldContent], publishAt)
}
