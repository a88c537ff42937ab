package recon

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentroll-reconciliation/internal/domain"
	"rentroll-reconciliation/internal/models"
	errs "rentroll-reconciliation/pkg/errors"
	"rentroll-reconciliation/pkg/logging"
)

// Service runs the reconciliation workflow: fetch the property's canonical
// units, match the extracted candidates against them, persist a run summary.
// The matching itself is pure and cannot fail; only the storage calls can.
type Service struct {
	repo    domain.Repository
	matcher *Matcher
	log     *logging.ComponentLogger
}

func NewService(repo domain.Repository, matcher *Matcher, logger *logging.Logger) *Service {
	return &Service{
		repo:    repo,
		matcher: matcher,
		log:     logger.WithComponent("recon"),
	}
}

// Reconcile matches candidates against the canonical units of one property.
// A failed summary save is logged but does not discard the report: the
// matching outcome is the product, the summary row is bookkeeping.
func (s *Service) Reconcile(ctx context.Context, propertyID string, candidates []models.CandidateUnit) (*Report, error) {
	if strings.TrimSpace(propertyID) == "" {
		return nil, errs.NewValidation("recon.Reconcile", "property id is required", nil)
	}

	units, err := s.repo.GetUnitsByPropertyCtx(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, detail := s.matcher.MatchWithDetail(candidates, units)
	report := BuildReport(uuid.NewString(), propertyID, result, detail, time.Since(start))

	run := report.Run()
	if err := s.repo.SaveRunCtx(ctx, &run); err != nil {
		s.log.Error("failed to save run summary", err,
			logging.String("run_id", report.RunID),
			logging.String("property_id", propertyID))
	}

	s.log.Info("reconciliation run completed",
		logging.String("run_id", report.RunID),
		logging.String("property_id", propertyID),
		logging.Int("extracted", result.TotalExtracted),
		logging.Int("matched", result.MatchedCount),
		logging.Int("anomalies", len(result.UnmatchedUnits)),
		logging.Duration("duration", report.Duration))

	return &report, nil
}

// RecentRuns returns the latest persisted run summaries.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]models.ReconciliationRun, error) {
	return s.repo.GetRecentRunsCtx(ctx, limit)
}

// Stats returns aggregate statistics over all persisted runs.
func (s *Service) Stats(ctx context.Context) (*models.RunStats, error) {
	return s.repo.GetRunStatsCtx(ctx)
}
