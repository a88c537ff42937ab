package repository

import (
	"context"

	"rentroll-reconciliation/internal/domain"
	"rentroll-reconciliation/internal/models"
	"rentroll-reconciliation/pkg/database"
)

// SQLRepository is a thin adapter over pkg/database.DB to satisfy the domain
// repositories. It keeps the reconciliation service decoupled from SQL.
type SQLRepository struct {
	db *database.DB
}

func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// Ensure interface compliance at compile time
var _ domain.Repository = (*SQLRepository)(nil)

func (r *SQLRepository) GetUnitsByPropertyCtx(ctx context.Context, propertyID string) ([]models.CanonicalUnit, error) {
	return r.db.GetUnitsByPropertyCtx(ctx, propertyID)
}

func (r *SQLRepository) SaveRunCtx(ctx context.Context, run *models.ReconciliationRun) error {
	return r.db.SaveRunCtx(ctx, run)
}

func (r *SQLRepository) GetRecentRunsCtx(ctx context.Context, limit int) ([]models.ReconciliationRun, error) {
	return r.db.GetRecentRunsCtx(ctx, limit)
}

func (r *SQLRepository) GetRunStatsCtx(ctx context.Context) (*models.RunStats, error) {
	return r.db.GetRunStatsCtx(ctx)
}
