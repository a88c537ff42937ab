package models

import (
	"time"
)

// CandidateUnit is a rental unit as extracted from an uploaded rent roll
// document. Every field is optional: extraction quality varies wildly between
// documents, and a partially filled candidate must still flow through
// matching without errors. Candidates carry no identity beyond their position
// in the extracted list.
type CandidateUnit struct {
	Address     *string  `json:"address,omitempty"`
	PostalCode  *string  `json:"postal_code,omitempty"`
	Floor       *int     `json:"floor,omitempty"`
	Door        *int     `json:"door,omitempty"`
	SizeSqm     *float64 `json:"size_sqm,omitempty"`
	CurrentRent *float64 `json:"current_rent,omitempty"`
	TenantName  *string  `json:"tenant_name,omitempty"`
	LeaseStart  *string  `json:"lease_start,omitempty"`
	LeaseEnd    *string  `json:"lease_end,omitempty"`
}

// CanonicalUnit is a unit record from the system of record. Created and
// updated by upstream ingestion flows; read-only here.
type CanonicalUnit struct {
	UnitID     int64   `json:"unit_id" db:"unit_id"`
	PropertyID string  `json:"property_id" db:"property_id"`
	Address    string  `json:"address" db:"address"`
	PostalCode string  `json:"postal_code" db:"postal_code"`
	Floor      int     `json:"floor" db:"floor"`
	Door       int     `json:"door" db:"door"`
	SizeSqm    float64 `json:"size_sqm" db:"size_sqm"`

	// Tenancy fields carried along for reporting; not used by matching.
	MonthlyRent *float64 `json:"monthly_rent,omitempty" db:"monthly_rent"`
	TenantName  *string  `json:"tenant_name,omitempty" db:"tenant_name"`
}

// MatchResult is the outcome of one reconciliation run. Unmatched units are
// returned exactly as received so the reporting layer can show the document's
// own values. Invariant: MatchedCount + len(UnmatchedUnits) == TotalExtracted.
type MatchResult struct {
	MatchedCount   int             `json:"matched_count"`
	TotalExtracted int             `json:"total_extracted"`
	UnmatchedUnits []CandidateUnit `json:"unmatched_units"`
	HasAnomalies   bool            `json:"has_anomalies"`
}

// ReconciliationRun is the persisted summary of a completed run, consumed by
// due-diligence reporting and the run history endpoints.
type ReconciliationRun struct {
	ID             int64     `json:"id" db:"id"`
	RunID          string    `json:"run_id" db:"run_id"`
	PropertyID     string    `json:"property_id" db:"property_id"`
	TotalExtracted int       `json:"total_extracted" db:"total_extracted"`
	MatchedCount   int       `json:"matched_count" db:"matched_count"`
	AnomalyCount   int       `json:"anomaly_count" db:"anomaly_count"`
	AverageScore   float64   `json:"average_score" db:"average_score"`
	DurationMs     int64     `json:"duration_ms" db:"duration_ms"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// RunStats aggregates run history for the stats endpoint.
type RunStats struct {
	TotalRuns      int     `json:"total_runs"`
	TotalExtracted int     `json:"total_extracted"`
	TotalMatched   int     `json:"total_matched"`
	TotalAnomalies int     `json:"total_anomalies"`
	AverageScore   float64 `json:"average_score"`
}
