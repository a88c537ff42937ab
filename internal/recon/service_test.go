package recon

import (
	"context"
	"errors"
	"testing"

	"rentroll-reconciliation/internal/models"
	testutil "rentroll-reconciliation/internal/testing"
	errs "rentroll-reconciliation/pkg/errors"
	"rentroll-reconciliation/pkg/logging"
)

func newTestService(repo *testutil.MockRepository) *Service {
	logger := logging.New(logging.Config{Level: "error", Format: "text", Output: "stderr"})
	return NewService(repo, NewMatcher(DefaultConfig()), logger)
}

func TestService_Reconcile(t *testing.T) {
	repo := testutil.NewMockRepository()
	repo.Units["prop-1"] = []models.CanonicalUnit{
		canonicalUnit(1, "Vesterbrogade 123, 4., tv., 1620 København V", 4, 1, 85),
		canonicalUnit(2, "Istedgade 10, st., th., 1650 København V", 0, 2, 60),
	}
	svc := newTestService(repo)

	candidates := []models.CandidateUnit{
		fullCandidate("Vesterbrogade 123, 4., tv., 1620 København V", 4, 1, 85),
		{Address: strPtr("unknown place")},
	}

	report, err := svc.Reconcile(context.Background(), "prop-1", candidates)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	if report.RunID == "" {
		t.Error("RunID not assigned")
	}
	if report.PropertyID != "prop-1" {
		t.Errorf("PropertyID = %q, want prop-1", report.PropertyID)
	}
	if report.Result.MatchedCount != 1 || len(report.Result.UnmatchedUnits) != 1 {
		t.Errorf("matched %d / unmatched %d, want 1 / 1",
			report.Result.MatchedCount, len(report.Result.UnmatchedUnits))
	}
	if !report.Result.HasAnomalies {
		t.Error("HasAnomalies = false, want true")
	}

	if len(repo.Runs) != 1 {
		t.Fatalf("persisted runs = %d, want 1", len(repo.Runs))
	}
	saved := repo.Runs[0]
	if saved.RunID != report.RunID {
		t.Errorf("saved RunID = %q, want %q", saved.RunID, report.RunID)
	}
	if saved.TotalExtracted != 2 || saved.MatchedCount != 1 || saved.AnomalyCount != 1 {
		t.Errorf("saved counts = %d/%d/%d, want 2/1/1",
			saved.TotalExtracted, saved.MatchedCount, saved.AnomalyCount)
	}
}

func TestService_Reconcile_BlankPropertyID(t *testing.T) {
	svc := newTestService(testutil.NewMockRepository())

	_, err := svc.Reconcile(context.Background(), "   ", []models.CandidateUnit{{}})
	if err == nil {
		t.Fatal("Reconcile() error = nil, want validation error")
	}
	if !errs.Is(err, errs.ErrValidation) {
		t.Errorf("error %v is not a validation error", err)
	}
}

func TestService_Reconcile_UnitsError(t *testing.T) {
	repo := testutil.NewMockRepository()
	repo.UnitsErr = errors.New("units query failed")
	svc := newTestService(repo)

	report, err := svc.Reconcile(context.Background(), "prop-1", []models.CandidateUnit{{}})
	if err == nil {
		t.Fatal("Reconcile() error = nil, want units error")
	}
	if report != nil {
		t.Errorf("report = %+v, want nil on error", report)
	}
}

func TestService_Reconcile_SaveFailureKeepsReport(t *testing.T) {
	repo := testutil.NewMockRepository()
	repo.Units["prop-1"] = []models.CanonicalUnit{
		canonicalUnit(1, "Vesterbrogade 123, 4., tv., 1620 København V", 4, 1, 85),
	}
	repo.SaveErr = errors.New("insert failed")
	svc := newTestService(repo)

	report, err := svc.Reconcile(context.Background(), "prop-1", []models.CandidateUnit{
		fullCandidate("Vesterbrogade 123, 4., tv., 1620 København V", 4, 1, 85),
	})
	if err != nil {
		t.Fatalf("Reconcile() error = %v, want nil despite save failure", err)
	}
	if report == nil || report.Result.MatchedCount != 1 {
		t.Fatalf("report = %+v, want matched count 1", report)
	}
	if len(repo.Runs) != 0 {
		t.Errorf("persisted runs = %d, want 0", len(repo.Runs))
	}
}

func TestService_RecentRunsAndStats(t *testing.T) {
	repo := testutil.NewMockRepository()
	repo.Units["prop-1"] = []models.CanonicalUnit{
		canonicalUnit(1, "Vesterbrogade 123, 4., tv., 1620 København V", 4, 1, 85),
	}
	svc := newTestService(repo)

	for i := 0; i < 3; i++ {
		if _, err := svc.Reconcile(context.Background(), "prop-1", []models.CandidateUnit{
			fullCandidate("Vesterbrogade 123, 4., tv., 1620 København V", 4, 1, 85),
		}); err != nil {
			t.Fatalf("Reconcile() error = %v", err)
		}
	}

	runs, err := svc.RecentRuns(context.Background(), 2)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("RecentRuns() = %d runs, want 2", len(runs))
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalRuns != 3 || stats.TotalMatched != 3 || stats.TotalAnomalies != 0 {
		t.Errorf("stats = %+v, want 3 runs, 3 matched, 0 anomalies", stats)
	}
}
