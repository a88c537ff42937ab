package recon

import (
	"math"
	"strings"

	"rentroll-reconciliation/internal/constants"
	"rentroll-reconciliation/internal/models"
	"rentroll-reconciliation/internal/normalize"
)

// Weights control how the three sub-scores combine into the composite score.
// A missing dimension contributes 0 rather than being re-normalized away:
// sparse candidates should score conservatively, not opportunistically.
type Weights struct {
	Address   float64
	FloorDoor float64
	Size      float64
}

// DefaultWeights returns the production weighting: address similarity carries
// the most signal, floor/door and size split the rest.
func DefaultWeights() Weights {
	return Weights{
		Address:   constants.AddressWeight,
		FloorDoor: constants.FloorDoorWeight,
		Size:      constants.SizeWeight,
	}
}

// Scorer computes the composite match score for a candidate/canonical pair.
type Scorer struct {
	weights Weights
}

func NewScorer(w Weights) *Scorer { return &Scorer{weights: w} }

// Score returns the weighted composite in [0,1]. It never fails: absent or
// malformed fields degrade the relevant sub-score to 0.
func (s *Scorer) Score(c models.CandidateUnit, u models.CanonicalUnit) float64 {
	return s.weights.Address*s.addressScore(c, u) +
		s.weights.FloorDoor*s.floorDoorScore(c, u) +
		s.weights.Size*s.sizeScore(c, u)
}

// addressScore normalizes both addresses and compares the canonical strings:
// exact equality wins outright, otherwise edit-distance similarity decides.
func (s *Scorer) addressScore(c models.CandidateUnit, u models.CanonicalUnit) float64 {
	if c.Address == nil || strings.TrimSpace(*c.Address) == "" || strings.TrimSpace(u.Address) == "" {
		return 0.0
	}
	cand := normalize.Address(*c.Address)
	canon := normalize.Address(u.Address)
	if cand.Normalized == canon.Normalized {
		return 1.0
	}
	return normalize.StringSimilarity(cand.Normalized, canon.Normalized)
}

// floorDoorScore rewards exact matches only. An absent candidate field never
// counts as a match.
func (s *Scorer) floorDoorScore(c models.CandidateUnit, u models.CanonicalUnit) float64 {
	floorMatch := c.Floor != nil && *c.Floor == u.Floor
	doorMatch := c.Door != nil && *c.Door == u.Door
	switch {
	case floorMatch && doorMatch:
		return 1.0
	case floorMatch || doorMatch:
		return constants.PartialFloorDoorScore
	default:
		return 0.0
	}
}

// sizeScore compares unit sizes on a relative-difference ladder. Only
// evaluated when both sides carry a positive size.
func (s *Scorer) sizeScore(c models.CandidateUnit, u models.CanonicalUnit) float64 {
	if c.SizeSqm == nil || *c.SizeSqm <= 0 || u.SizeSqm <= 0 {
		return 0.0
	}
	a, b := *c.SizeSqm, u.SizeSqm
	diff := math.Abs(a-b) / math.Max(a, math.Max(b, 1))
	switch {
	case diff <= constants.SizeDiffTight:
		return constants.SizeScoreTight
	case diff <= constants.SizeDiffNear:
		return constants.SizeScoreNear
	case diff <= constants.SizeDiffLoose:
		return constants.SizeScoreLoose
	default:
		return 0.0
	}
}
