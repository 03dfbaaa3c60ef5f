package request

import (
	"strings"
	"testing"
)

func TestNew_KeepsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
	}{
		{"zero", 0},
		{"one", 1},
		{"default", DefaultLimit},
		{"max", MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New("Tether", 3, tt.limit, true)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Limit() != tt.limit {
				t.Errorf("Limit() = %d, want %d", r.Limit(), tt.limit)
			}
			if r.Offset() != 3 || r.Text() != "Tether" || !r.WithScores() {
				t.Errorf("unexpected request: %+v", r)
			}
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		offset  int
		limit   int
		wantErr string
	}{
		{"empty", "", 0, 5, "required"},
		{"too long", strings.Repeat("a", MaxQueryLength+1), 0, 5, "too long"},
		{"negative offset", "x", -1, 5, "offset"},
		{"negative limit", "x", 0, -1, "limit must not be negative"},
		{"limit above max", "x", 0, MaxLimit + 1, "exceeds max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.text, tt.offset, tt.limit, false)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
