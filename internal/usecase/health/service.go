package health

import (
	"context"
	"fmt"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the engine answers but something is missing or failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the engine is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	CheckOK      CheckResult = "ok"
	CheckMissing CheckResult = "missing"
	CheckError   CheckResult = "error"
	CheckSkipped CheckResult = "skipped"
)

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status" yaml:"status"`
	Checks map[string]CheckResult `json:"checks" yaml:"checks"`

	// Err holds the cause of the first failed check. It is not rendered.
	Err error `json:"-" yaml:"-"`
}

// Service coordinates health checks.
type Service struct {
	db    DBPinger
	index IndexChecker
}

// New creates a Service. index can be nil.
func New(db DBPinger, index IndexChecker) *Service {
	return &Service{db: db, index: index}
}

// Check pings the engine and, if it answers, looks up the index.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		if s.index != nil {
			checks["index"] = CheckSkipped
		}
		return Report{Status: Unhealthy, Checks: checks, Err: fmt.Errorf("database: %w", err)}
	}
	checks["database"] = CheckOK

	status := Healthy
	var cause error
	if s.index != nil {
		ok, err := s.index.IndexExists(ctx)
		switch {
		case err != nil:
			checks["index"] = CheckError
			status = Degraded
			cause = fmt.Errorf("index: %w", err)
		case !ok:
			checks["index"] = CheckMissing
			status = Degraded
		default:
			checks["index"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks, Err: cause}
}
