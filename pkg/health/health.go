package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"rentroll-reconciliation/internal/constants"
	"rentroll-reconciliation/pkg/database"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// Report is the JSON body served at /health.
type Report struct {
	Status    Status            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	UptimeSec int64             `json:"uptime_seconds"`
	Checks    map[string]string `json:"checks"`
}

// Checker runs liveness checks for the service's dependencies. The database
// is the only external dependency; matching itself has nothing to check.
type Checker struct {
	db      *database.DB
	started time.Time
}

func NewChecker(db *database.DB) *Checker {
	return &Checker{db: db, started: time.Now()}
}

func (c *Checker) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, constants.HealthTimeoutDefault)
	defer cancel()

	report := Report{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		UptimeSec: int64(time.Since(c.started).Seconds()),
		Checks:    map[string]string{"database": "ok"},
	}
	if err := c.db.PingCtx(ctx); err != nil {
		report.Status = StatusUnhealthy
		report.Checks["database"] = err.Error()
	}
	return report
}

// Handler serves the health report; 503 when any check fails.
func (c *Checker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report := c.Check(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if report.Status != StatusHealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(report)
	})
}
