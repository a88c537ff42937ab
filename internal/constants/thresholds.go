package constants

// Centralized matching thresholds and weights. Keep these stable; change
// deliberately and document why. These are not configuration knobs by
// default; pkg/config may override the threshold and weights per deployment.

const (
	// Minimum composite score required to accept a candidate/canonical match.
	MinMatchConfidence = 0.7

	// Composite score weights. Must sum to 1.0.
	AddressWeight   = 0.4
	FloorDoorWeight = 0.3
	SizeWeight      = 0.3

	// Floor/door sub-score when exactly one of the two fields matches.
	PartialFloorDoorScore = 0.5

	// Size tolerance ladder: relative difference bounds and their scores.
	SizeDiffTight = 0.05
	SizeDiffNear  = 0.10
	SizeDiffLoose = 0.20

	SizeScoreTight = 1.0
	SizeScoreNear  = 0.8
	SizeScoreLoose = 0.5
)
