package domain

import (
	"context"

	"rentroll-reconciliation/internal/models"
)

// UnitRepository defines read access to the canonical unit records. Units are
// created and updated by upstream ingestion flows; reconciliation only reads.
type UnitRepository interface {
	GetUnitsByPropertyCtx(ctx context.Context, propertyID string) ([]models.CanonicalUnit, error)
}

// RunRepository persists and serves reconciliation run summaries for the
// reporting endpoints.
type RunRepository interface {
	SaveRunCtx(ctx context.Context, run *models.ReconciliationRun) error
	GetRecentRunsCtx(ctx context.Context, limit int) ([]models.ReconciliationRun, error)
	GetRunStatsCtx(ctx context.Context) (*models.RunStats, error)
}

// Repository aggregates the repos required by the reconciliation service.
type Repository interface {
	UnitRepository
	RunRepository
}
