package recon

import (
	"math"
	"testing"
	"time"

	"rentroll-reconciliation/internal/models"
)

func TestBuildReport(t *testing.T) {
	result := models.MatchResult{
		MatchedCount:   3,
		TotalExtracted: 4,
		UnmatchedUnits: []models.CandidateUnit{{Address: strPtr("no match")}},
		HasAnomalies:   true,
	}
	detail := Detail{
		Pairs: []Pair{
			{CandidateIndex: 0, Score: 0.9},
			{CandidateIndex: 1, Score: 0.7},
			{CandidateIndex: 2, Score: 0.8},
		},
		PostalFiltered: 2,
		BelowThreshold: 1,
	}

	report := BuildReport("run-abc", "prop-1", result, detail, 150*time.Millisecond)

	if report.RunID != "run-abc" || report.PropertyID != "prop-1" {
		t.Errorf("identity = %q/%q, want run-abc/prop-1", report.RunID, report.PropertyID)
	}
	if math.Abs(report.Stats.MatchRate-0.75) > 1e-9 {
		t.Errorf("MatchRate = %v, want 0.75", report.Stats.MatchRate)
	}
	if math.Abs(report.Stats.AverageScore-0.8) > 1e-9 {
		t.Errorf("AverageScore = %v, want 0.8", report.Stats.AverageScore)
	}
	if report.Stats.MinScore != 0.7 {
		t.Errorf("MinScore = %v, want 0.7", report.Stats.MinScore)
	}
	if report.Stats.MaxScore != 0.9 {
		t.Errorf("MaxScore = %v, want 0.9", report.Stats.MaxScore)
	}
	if report.Stats.PostalFiltered != 2 || report.Stats.BelowThreshold != 1 {
		t.Errorf("rejection tallies = %+v, want postal 2 / below 1", report.Stats)
	}
	if report.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestBuildReport_EmptyRun(t *testing.T) {
	result := models.MatchResult{UnmatchedUnits: []models.CandidateUnit{}}

	report := BuildReport("run-empty", "prop-1", result, Detail{}, time.Millisecond)

	s := report.Stats
	if s.MatchRate != 0 || s.AverageScore != 0 || s.MinScore != 0 || s.MaxScore != 0 {
		t.Errorf("stats for empty run = %+v, want all zeros", s)
	}
}

func TestReport_Run(t *testing.T) {
	report := BuildReport("run-xyz", "prop-9",
		models.MatchResult{
			MatchedCount:   2,
			TotalExtracted: 3,
			UnmatchedUnits: []models.CandidateUnit{{}},
			HasAnomalies:   true,
		},
		Detail{Pairs: []Pair{{Score: 0.8}, {Score: 1.0}}},
		1500*time.Millisecond)

	run := report.Run()

	if run.RunID != "run-xyz" || run.PropertyID != "prop-9" {
		t.Errorf("identity = %q/%q, want run-xyz/prop-9", run.RunID, run.PropertyID)
	}
	if run.TotalExtracted != 3 || run.MatchedCount != 2 || run.AnomalyCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1",
			run.TotalExtracted, run.MatchedCount, run.AnomalyCount)
	}
	if math.Abs(run.AverageScore-0.9) > 1e-9 {
		t.Errorf("AverageScore = %v, want 0.9", run.AverageScore)
	}
	if run.DurationMs != 1500 {
		t.Errorf("DurationMs = %d, want 1500", run.DurationMs)
	}
	if !run.CreatedAt.Equal(report.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", run.CreatedAt, report.CreatedAt)
	}
}
