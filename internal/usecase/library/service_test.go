package library

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/bookdex/internal/domain"
	"github.com/kailas-cloud/bookdex/internal/domain/aggregate"
	dombook "github.com/kailas-cloud/bookdex/internal/domain/book"
	"github.com/kailas-cloud/bookdex/internal/domain/search/request"
	"github.com/kailas-cloud/bookdex/internal/domain/search/result"
)

// --- Mocks ---

type mockBooks struct {
	put    []string
	failAt string
	putErr error
	stored map[string]dombook.Book
}

func (m *mockBooks) Put(_ context.Context, b dombook.Book) error {
	if b.ID() == m.failAt {
		return m.putErr
	}
	m.put = append(m.put, b.Key())
	if m.stored == nil {
		m.stored = map[string]dombook.Book{}
	}
	m.stored[b.ID()] = b
	return nil
}

func (m *mockBooks) Get(_ context.Context, id string) (dombook.Book, error) {
	b, ok := m.stored[id]
	if !ok {
		return dombook.Book{}, domain.ErrNotFound
	}
	return b, nil
}

type mockIndexes struct {
	exists    bool
	dropDocs  *bool
	createErr error
	dropErr   error
	infoErr   error
}

func (m *mockIndexes) Name() string { return "idx-books" }

func (m *mockIndexes) Create(_ context.Context) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.exists {
		return domain.ErrAlreadyExists
	}
	m.exists = true
	return nil
}

func (m *mockIndexes) Drop(_ context.Context, deleteDocs bool) error {
	m.dropDocs = &deleteDocs
	if m.dropErr != nil {
		return m.dropErr
	}
	if !m.exists {
		return domain.ErrNotFound
	}
	m.exists = false
	return nil
}

func (m *mockIndexes) Exists(_ context.Context) (bool, error) { return m.exists, m.infoErr }

type mockSearch struct {
	lastReq      request.Request
	lastPipeline aggregate.Pipeline
	res          result.Result
	agg          aggregate.Result
	err          error
}

func (m *mockSearch) Search(_ context.Context, req request.Request) (result.Result, error) {
	m.lastReq = req
	return m.res, m.err
}

func (m *mockSearch) Aggregate(_ context.Context, p aggregate.Pipeline) (aggregate.Result, error) {
	m.lastPipeline = p
	return m.agg, m.err
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// fakeOpener hands out sessions over shared mocks and counts open/release calls.
type fakeOpener struct {
	books    *mockBooks
	indexes  *mockIndexes
	search   *mockSearch
	ping     *mockPinger
	openErr  error
	opened   int
	released int
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{
		books:   &mockBooks{},
		indexes: &mockIndexes{},
		search:  &mockSearch{},
		ping:    &mockPinger{},
	}
}

func (f *fakeOpener) open(_ context.Context) (*Session, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.opened++
	return &Session{
		Books:   f.books,
		Indexes: f.indexes,
		Search:  f.search,
		DB:      f.ping,
		Release: func() { f.released++ },
	}, nil
}

func (f *fakeOpener) assertBalanced(t *testing.T) {
	t.Helper()
	if f.opened != f.released {
		t.Errorf("sessions opened %d, released %d", f.opened, f.released)
	}
}

// --- Tests ---

func TestInsertSamples_WritesAllInOrder(t *testing.T) {
	f := newFakeOpener()
	svc := New(f.open)

	keys, err := svc.InsertSamples(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"book:1", "book:2", "book:3"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] || f.books.put[i] != want[i] {
			t.Errorf("key[%d] = %s, want %s", i, keys[i], want[i])
		}
	}
	if f.opened != 1 {
		t.Errorf("expected one session, got %d", f.opened)
	}
	f.assertBalanced(t)
}

func TestInsertSamples_AbortsOnFirstFailure(t *testing.T) {
	f := newFakeOpener()
	f.books.failAt = "2"
	f.books.putErr = errors.New("READONLY You can't write against a read only replica.")
	svc := New(f.open)

	keys, err := svc.InsertSamples(context.Background())
	if !errors.Is(err, f.books.putErr) {
		t.Fatalf("expected put error, got %v", err)
	}
	if len(keys) != 1 || keys[0] != "book:1" {
		t.Errorf("keys = %v, want [book:1]", keys)
	}
	if len(f.books.put) != 1 {
		t.Errorf("book:3 must not be written after failure, put = %v", f.books.put)
	}
	f.assertBalanced(t)
}

func TestInsertSamples_ThenGetRoundTrip(t *testing.T) {
	f := newFakeOpener()
	svc := New(f.open)

	if _, err := svc.InsertSamples(context.Background()); err != nil {
		t.Fatalf("insert: %v", err)
	}
	for _, want := range dombook.Samples() {
		got, err := svc.GetBook(context.Background(), want.ID())
		if err != nil {
			t.Fatalf("get %s: %v", want.ID(), err)
		}
		if got.Title() != want.Title() || got.PublishAt() != want.PublishAt() {
			t.Errorf("book %s mismatch: %+v", want.ID(), got)
		}
	}
	f.assertBalanced(t)
}

func TestGetBook_NotFound(t *testing.T) {
	f := newFakeOpener()
	_, err := New(f.open).GetBook(context.Background(), "9")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	f.assertBalanced(t)
}

func TestOpenFailure(t *testing.T) {
	f := newFakeOpener()
	f.openErr = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")
	svc := New(f.open)

	if err := svc.Ping(context.Background()); !errors.Is(err, f.openErr) {
		t.Fatalf("expected dial error, got %v", err)
	}
	if _, err := svc.CreateIndex(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if f.opened != 0 || f.released != 0 {
		t.Errorf("no session should exist, opened=%d released=%d", f.opened, f.released)
	}
}

func TestIndexLifecycle(t *testing.T) {
	f := newFakeOpener()
	svc := New(f.open)
	ctx := context.Background()

	name, err := svc.CreateIndex(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if name != "idx-books" {
		t.Errorf("name = %s", name)
	}

	if _, err := svc.CreateIndex(ctx); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	ok, err := svc.IndexExists(ctx)
	if err != nil || !ok {
		t.Fatalf("exists = %v, %v", ok, err)
	}

	if _, err := svc.DropIndex(ctx, true); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if f.indexes.dropDocs == nil || !*f.indexes.dropDocs {
		t.Error("expected cascade delete")
	}

	if _, err := svc.DropIndex(ctx, false); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := svc.CreateIndex(ctx); err != nil {
		t.Fatalf("create after drop: %v", err)
	}
	f.assertBalanced(t)
	if f.opened != 6 {
		t.Errorf("expected a session per operation, got %d", f.opened)
	}
}

func TestIndexExists_Error(t *testing.T) {
	f := newFakeOpener()
	f.indexes.infoErr = errors.New("LOADING Redis is loading the dataset in memory")
	if _, err := New(f.open).IndexExists(context.Background()); !errors.Is(err, f.indexes.infoErr) {
		t.Fatalf("expected info error, got %v", err)
	}
	f.assertBalanced(t)
}

func TestSearch_PassesRequest(t *testing.T) {
	f := newFakeOpener()
	f.search.res = result.Result{
		Total:     1,
		Documents: []result.Document{{ID: "3", Key: "book:3"}},
	}
	svc := New(f.open)

	res, err := svc.Search(context.Background(), "Tether", 0, 5, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 1 || res.Documents[0].Key != "book:3" {
		t.Errorf("unexpected result: %+v", res)
	}
	req := f.search.lastReq
	if req.Text() != "Tether" || req.Offset() != 0 || req.Limit() != 5 || !req.WithScores() {
		t.Errorf("unexpected request: text=%s offset=%d limit=%d scores=%v",
			req.Text(), req.Offset(), req.Limit(), req.WithScores())
	}
	f.assertBalanced(t)
}

func TestSearch_InvalidRequestOpensNothing(t *testing.T) {
	f := newFakeOpener()
	_, err := New(f.open).Search(context.Background(), "", 0, 5, false)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if f.opened != 0 {
		t.Errorf("invalid request must not connect, opened=%d", f.opened)
	}
}

func TestSearch_LimitReachesEngineUnchanged(t *testing.T) {
	for _, limit := range []int{0, 1, 7, request.MaxLimit} {
		f := newFakeOpener()
		if _, err := New(f.open).Search(context.Background(), "Tether", 2, limit, false); err != nil {
			t.Fatalf("limit %d: unexpected error: %v", limit, err)
		}
		if got := f.search.lastReq.Limit(); got != limit {
			t.Errorf("limit %d: engine saw %d", limit, got)
		}
	}
}

func TestSearch_LimitOutOfRange(t *testing.T) {
	for _, limit := range []int{-1, request.MaxLimit + 1} {
		f := newFakeOpener()
		_, err := New(f.open).Search(context.Background(), "Tether", 0, limit, false)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("limit %d: expected ErrInvalidRequest, got %v", limit, err)
		}
		if f.opened != 0 {
			t.Errorf("limit %d: opened %d sessions", limit, f.opened)
		}
	}
}

func TestSearch_ReleasesOnEngineError(t *testing.T) {
	f := newFakeOpener()
	f.search.err = domain.ErrNotFound
	if _, err := New(f.open).Search(context.Background(), "Tether", 0, 5, false); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	f.assertBalanced(t)
}

func TestAggregate_DefaultsToCirculating(t *testing.T) {
	f := newFakeOpener()
	f.search.agg = aggregate.Result{
		Total: 3,
		Rows: []aggregate.Row{
			{"title": "book 1 title"},
			{"title": "book 2 title"},
			{"title": "book 3 title"},
		},
	}
	svc := New(f.open)

	res, err := svc.Aggregate(context.Background(), aggregate.Pipeline{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.search.lastPipeline.Query() != "circulating" {
		t.Errorf("query = %q, want circulating", f.search.lastPipeline.Query())
	}
	if len(f.search.lastPipeline.Stages()) != 4 {
		t.Errorf("expected 4 stages, got %d", len(f.search.lastPipeline.Stages()))
	}
	if len(res.Rows) != 3 || res.Rows[2]["title"] != "book 3 title" {
		t.Errorf("unexpected rows: %+v", res.Rows)
	}
	f.assertBalanced(t)
}

func TestAggregate_CustomPipeline(t *testing.T) {
	f := newFakeOpener()
	p, err := aggregate.NewBuilder("*").SortBy("title", aggregate.Desc).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := New(f.open).Aggregate(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.search.lastPipeline.Query() != "*" {
		t.Errorf("custom pipeline replaced: %q", f.search.lastPipeline.Query())
	}
}

func TestPing(t *testing.T) {
	f := newFakeOpener()
	f.ping.err = errors.New("NOAUTH Authentication required.")
	if err := New(f.open).Ping(context.Background()); !errors.Is(err, f.ping.err) {
		t.Fatalf("expected ping error, got %v", err)
	}
	f.assertBalanced(t)
}

func TestWithSamples(t *testing.T) {
	f := newFakeOpener()
	b, err := dombook.New("42", "t", "s", "c", 1)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	svc := New(f.open).WithSamples(func() []dombook.Book { return []dombook.Book{b} })

	keys, err := svc.InsertSamples(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 1 || keys[0] != "book:42" {
		t.Errorf("keys = %v", keys)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{domain.ErrNotFound, "not_found"},
		{domain.ErrAlreadyExists, "conflict"},
		{domain.ErrInvalidRequest, "invalid"},
		{errors.New("boom"), "error"},
	}
	for _, tc := range tests {
		if got := statusLabel(tc.err); got != tc.want {
			t.Errorf("statusLabel(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
