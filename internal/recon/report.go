package recon

import (
	"time"

	"rentroll-reconciliation/internal/models"
)

// Report is the full outcome of one reconciliation run: the MatchResult the
// presentation layer consumes, the accepted pairs, and aggregate statistics.
// It only reads its inputs; candidates and canonical units are never mutated.
type Report struct {
	RunID      string             `json:"run_id"`
	PropertyID string             `json:"property_id"`
	Result     models.MatchResult `json:"result"`
	Pairs      []Pair             `json:"pairs"`
	Stats      ReportStats        `json:"stats"`
	Duration   time.Duration      `json:"duration_ns"`
	CreatedAt  time.Time          `json:"created_at"`
}

// ReportStats aggregates the accepted pair scores and the rejection tallies.
type ReportStats struct {
	// MatchRate is matched over extracted, 0 when nothing was extracted.
	// Score aggregates cover accepted pairs only, 0 when nothing matched.
	MatchRate      float64 `json:"match_rate"`
	AverageScore   float64 `json:"average_score"`
	MinScore       float64 `json:"min_score"`
	MaxScore       float64 `json:"max_score"`
	PostalFiltered int     `json:"postal_filtered"`
	EmptyPool      int     `json:"empty_pool"`
	BelowThreshold int     `json:"below_threshold"`
}

// BuildReport assembles a Report from a matching run.
func BuildReport(runID, propertyID string, result models.MatchResult, detail Detail, duration time.Duration) Report {
	return Report{
		RunID:      runID,
		PropertyID: propertyID,
		Result:     result,
		Pairs:      detail.Pairs,
		Stats:      buildStats(result, detail),
		Duration:   duration,
		CreatedAt:  time.Now(),
	}
}

func buildStats(result models.MatchResult, detail Detail) ReportStats {
	stats := ReportStats{
		PostalFiltered: detail.PostalFiltered,
		EmptyPool:      detail.EmptyPool,
		BelowThreshold: detail.BelowThreshold,
	}

	if result.TotalExtracted > 0 {
		stats.MatchRate = float64(result.MatchedCount) / float64(result.TotalExtracted)
	}
	if len(detail.Pairs) == 0 {
		return stats
	}

	stats.MinScore = detail.Pairs[0].Score
	stats.MaxScore = detail.Pairs[0].Score
	var total float64
	for _, p := range detail.Pairs {
		total += p.Score
		if p.Score < stats.MinScore {
			stats.MinScore = p.Score
		}
		if p.Score > stats.MaxScore {
			stats.MaxScore = p.Score
		}
	}
	stats.AverageScore = total / float64(len(detail.Pairs))
	return stats
}

// Run converts the report into its persisted summary form.
func (r Report) Run() models.ReconciliationRun {
	return models.ReconciliationRun{
		RunID:          r.RunID,
		PropertyID:     r.PropertyID,
		TotalExtracted: r.Result.TotalExtracted,
		MatchedCount:   r.Result.MatchedCount,
		AnomalyCount:   len(r.Result.UnmatchedUnits),
		AverageScore:   r.Stats.AverageScore,
		DurationMs:     r.Duration.Milliseconds(),
		CreatedAt:      r.CreatedAt,
	}
}
