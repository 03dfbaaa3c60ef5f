package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bookdex/internal/domain"
	"github.com/kailas-cloud/bookdex/internal/domain/aggregate"
	dombook "github.com/kailas-cloud/bookdex/internal/domain/book"
	"github.com/kailas-cloud/bookdex/internal/domain/search/request"
	"github.com/kailas-cloud/bookdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/bookdex/internal/usecase/health"
)

// Library is the set of operations exposed over HTTP.
type Library interface {
	InsertSamples(ctx context.Context) ([]string, error)
	GetBook(ctx context.Context, id string) (dombook.Book, error)
	CreateIndex(ctx context.Context) (string, error)
	DropIndex(ctx context.Context, deleteDocs bool) (string, error)
	Search(ctx context.Context, text string, offset, limit int, withScores bool) (result.Result, error)
	Aggregate(ctx context.Context, p aggregate.Pipeline) (aggregate.Result, error)
}

// HealthChecker produces a health report.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest    = "bad_request"
	CodeUnauthorized  = "unauthorized"
	CodeNotFound      = "not_found"
	CodeAlreadyExists = "already_exists"
	CodeInternalError = "internal_error"
)

// DefaultSearchText is used when GET /search has no q parameter.
const DefaultSearchText = "Tether"

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BookResponse is the JSON shape of a stored book.
type BookResponse struct {
	ID        string `json:"id"`
	Key       string `json:"key"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Content   string `json:"content"`
	PublishAt int64  `json:"publishAt"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves library operations over chi.
type Server struct {
	library       Library
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(library Library, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		library: library,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, CodeAlreadyExists),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeBadRequest),
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Post("/samples", s.InsertSamples)
	r.Get("/books/{id}", s.GetBook)
	r.Put("/index", s.CreateIndex)
	r.Delete("/index", s.DropIndex)
	r.Get("/search", s.Search)
	r.Get("/aggregate", s.Aggregate)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// InsertSamples handles POST /samples.
func (s *Server) InsertSamples(w http.ResponseWriter, r *http.Request) {
	keys, err := s.library.InsertSamples(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string][]string{"keys": keys})
}

// GetBook handles GET /books/{id}.
func (s *Server) GetBook(w http.ResponseWriter, r *http.Request) {
	b, err := s.library.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookToResponse(b))
}

// CreateIndex handles PUT /index.
func (s *Server) CreateIndex(w http.ResponseWriter, r *http.Request) {
	name, err := s.library.CreateIndex(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"index": name})
}

// DropIndex handles DELETE /index. ?keep_docs=true leaves the hashes in place.
func (s *Server) DropIndex(w http.ResponseWriter, r *http.Request) {
	keepDocs, err := boolParam(r, "keep_docs")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if _, err := s.library.DropIndex(r.Context(), !keepDocs); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /search?q=&offset=&limit=&with_scores=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		q = DefaultSearchText
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	limit, err := intParam(r, "limit", request.DefaultLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	withScores, err := boolParam(r, "with_scores")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	res, err := s.library.Search(r.Context(), q, offset, limit, withScores)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Aggregate handles GET /aggregate.
func (s *Server) Aggregate(w http.ResponseWriter, r *http.Request) {
	res, err := s.library.Aggregate(r.Context(), aggregate.Circulating())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
		s.logger.Warn("health check failed", zap.String("status", string(report.Status)), zap.Error(report.Err))
	}
	writeJSON(w, httpStatus, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidRequest,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func bookToResponse(b dombook.Book) BookResponse {
	return BookResponse{
		ID:        b.ID(),
		Key:       b.Key(),
		Title:     b.Title(),
		Subtitle:  b.Subtitle(),
		Content:   b.Content(),
		PublishAt: b.PublishAt(),
	}
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return v, nil
}

func boolParam(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New(name + " must be a boolean")
	}
	return v, nil
}
