package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestPush_EmptyURL(t *testing.T) {
	if err := Push(context.Background(), "", "bookdex", prometheus.NewRegistry()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPush_SendsToGateway(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "bookdex_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	if err := Push(context.Background(), srv.URL, "bookdex", reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if !strings.Contains(gotPath, "/metrics/job/bookdex") {
		t.Errorf("path = %s", gotPath)
	}
}

func TestPush_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "x_total", Help: "x"}))

	if err := Push(context.Background(), srv.URL, "bookdex", reg); err == nil {
		t.Fatal("expected error")
	}
}
