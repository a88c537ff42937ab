package recon

import (
	"rentroll-reconciliation/internal/constants"
	"rentroll-reconciliation/internal/models"
)

// Config configures the matcher behavior.
type Config struct {
	MinConfidence float64 // minimum composite score to accept a match
	Weights       Weights
}

// DefaultConfig returns the production matching configuration.
func DefaultConfig() Config {
	return Config{
		MinConfidence: constants.MinMatchConfidence,
		Weights:       DefaultWeights(),
	}
}

// Matcher reconciles extracted candidate units against canonical unit records
// using greedy one-to-one assignment. Greedy means a candidate can consume a
// canonical unit that would have scored higher for a later candidate; this is
// the observed production behavior and is kept on purpose. A globally optimal
// assignment would be a separate strategy, not a change to this one.
type Matcher struct {
	cfg    Config
	scorer *Scorer
}

func NewMatcher(cfg Config) *Matcher {
	if cfg.MinConfidence <= 0 || cfg.MinConfidence > 1 {
		cfg.MinConfidence = constants.MinMatchConfidence
	}
	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights()
	}
	return &Matcher{cfg: cfg, scorer: NewScorer(cfg.Weights)}
}

// Pair records one accepted candidate/canonical assignment.
type Pair struct {
	CandidateIndex int                  `json:"candidate_index"`
	Candidate      models.CandidateUnit `json:"candidate"`
	Unit           models.CanonicalUnit `json:"unit"`
	Score          float64              `json:"score"`
}

// Detail carries per-run instrumentation alongside the MatchResult: the
// accepted pairs and counts of why candidates went unmatched.
type Detail struct {
	Pairs []Pair `json:"pairs"`
	// PostalFiltered counts candidates whose pool was postal-restricted,
	// EmptyPool candidates with no canonical units left, BelowThreshold
	// candidates whose best score missed the cutoff.
	PostalFiltered int `json:"postal_filtered"`
	EmptyPool      int `json:"empty_pool"`
	BelowThreshold int `json:"below_threshold"`
}

// Match reconciles candidates against canonical units scoped to one property.
// Candidates are processed in input order; each canonical unit is assigned to
// at most one candidate per run. The matcher is pure and stateless: it never
// errors, and absent data lowers scores instead of failing.
func (m *Matcher) Match(candidates []models.CandidateUnit, canonical []models.CanonicalUnit) models.MatchResult {
	result, _ := m.MatchWithDetail(candidates, canonical)
	return result
}

// MatchWithDetail is Match plus the instrumentation used for reporting.
func (m *Matcher) MatchWithDetail(candidates []models.CandidateUnit, canonical []models.CanonicalUnit) (models.MatchResult, Detail) {
	result := models.MatchResult{UnmatchedUnits: []models.CandidateUnit{}}
	var detail Detail

	if len(candidates) == 0 {
		return result, detail
	}
	result.TotalExtracted = len(candidates)

	consumed := make(map[int64]bool, len(canonical))

	for i, cand := range candidates {
		pool := availableUnits(canonical, consumed)

		// Postal pre-filter, but never down to an empty pool: a wrong or
		// mistyped postal code should degrade the match, not forbid it.
		if cand.PostalCode != nil && *cand.PostalCode != "" {
			if filtered := filterByPostal(pool, *cand.PostalCode); len(filtered) > 0 {
				pool = filtered
				detail.PostalFiltered++
			}
		}

		if len(pool) == 0 {
			detail.EmptyPool++
			result.UnmatchedUnits = append(result.UnmatchedUnits, cand)
			continue
		}

		// Strictly-greater comparison keeps the first unit on ties, so runs
		// are deterministic for identical inputs.
		bestIdx := 0
		bestScore := m.scorer.Score(cand, pool[0])
		for j := 1; j < len(pool); j++ {
			if score := m.scorer.Score(cand, pool[j]); score > bestScore {
				bestIdx, bestScore = j, score
			}
		}

		if bestScore >= m.cfg.MinConfidence {
			consumed[pool[bestIdx].UnitID] = true
			result.MatchedCount++
			detail.Pairs = append(detail.Pairs, Pair{
				CandidateIndex: i,
				Candidate:      cand,
				Unit:           pool[bestIdx],
				Score:          bestScore,
			})
		} else {
			detail.BelowThreshold++
			result.UnmatchedUnits = append(result.UnmatchedUnits, cand)
		}
	}

	result.HasAnomalies = len(result.UnmatchedUnits) > 0
	return result, detail
}

func availableUnits(canonical []models.CanonicalUnit, consumed map[int64]bool) []models.CanonicalUnit {
	pool := make([]models.CanonicalUnit, 0, len(canonical))
	for _, u := range canonical {
		if !consumed[u.UnitID] {
			pool = append(pool, u)
		}
	}
	return pool
}

func filterByPostal(pool []models.CanonicalUnit, postalCode string) []models.CanonicalUnit {
	filtered := make([]models.CanonicalUnit, 0, len(pool))
	for _, u := range pool {
		if u.PostalCode == postalCode {
			filtered = append(filtered, u)
		}
	}
	return filtered
}
