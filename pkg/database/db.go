package database

import (
	"context"
	"database/sql"
	"time"

	"rentroll-reconciliation/internal/constants"
	"rentroll-reconciliation/internal/models"
	"rentroll-reconciliation/pkg/config"
	errs "rentroll-reconciliation/pkg/errors"

	_ "github.com/go-sql-driver/mysql"
)

// DB wraps the mysql connection with pool settings and per-query timeouts.
type DB struct {
	conn         *sql.DB
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewWithConfig opens a connection using the pool settings from config.
func NewWithConfig(databaseURL string, cfg *config.Config) (*DB, error) {
	conn, err := sql.Open("mysql", databaseURL)
	if err != nil {
		return nil, errs.NewDB("database.NewWithConfig", "failed to open connection", err)
	}

	conn.SetMaxOpenConns(cfg.DBMaxOpenConns)
	conn.SetMaxIdleConns(cfg.DBMaxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetime) * time.Minute)
	conn.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTime) * time.Minute)

	if err := conn.Ping(); err != nil {
		return nil, errs.NewDB("database.NewWithConfig", "failed to ping database", err)
	}

	rt := cfg.DBReadTimeout
	if rt == 0 {
		rt = constants.DBReadTimeoutDefault
	}
	wt := cfg.DBWriteTimeout
	if wt == 0 {
		wt = constants.DBWriteTimeoutDefault
	}

	return &DB{conn: conn, readTimeout: rt, writeTimeout: wt}, nil
}

func (db *DB) Close() error { return db.conn.Close() }

// PingCtx reports connection liveness for health checks.
func (db *DB) PingCtx(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, db.readTimeout)
	defer cancel()
	if err := db.conn.PingContext(ctx); err != nil {
		return errs.NewDB("database.PingCtx", "ping failed", err)
	}
	return nil
}

// GetUnitsByPropertyCtx fetches all canonical units registered for a
// property, in stable unit_id order.
func (db *DB) GetUnitsByPropertyCtx(ctx context.Context, propertyID string) ([]models.CanonicalUnit, error) {
	ctx, cancel := context.WithTimeout(ctx, db.readTimeout)
	defer cancel()

	const query = `
		SELECT unit_id, property_id, address, postal_code, floor, door,
		       size_sqm, monthly_rent, tenant_name
		FROM units
		WHERE property_id = ?
		ORDER BY unit_id`

	rows, err := db.conn.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, errs.NewDB("database.GetUnitsByPropertyCtx", "query failed", err)
	}
	defer rows.Close()

	var units []models.CanonicalUnit
	for rows.Next() {
		var u models.CanonicalUnit
		if err := rows.Scan(&u.UnitID, &u.PropertyID, &u.Address, &u.PostalCode,
			&u.Floor, &u.Door, &u.SizeSqm, &u.MonthlyRent, &u.TenantName); err != nil {
			return nil, errs.NewDB("database.GetUnitsByPropertyCtx", "scan failed", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDB("database.GetUnitsByPropertyCtx", "rows iteration failed", err)
	}
	return units, nil
}

// SaveRunCtx persists a reconciliation run summary and backfills its ID.
func (db *DB) SaveRunCtx(ctx context.Context, run *models.ReconciliationRun) error {
	ctx, cancel := context.WithTimeout(ctx, db.writeTimeout)
	defer cancel()

	const query = `
		INSERT INTO reconciliation_runs
			(run_id, property_id, total_extracted, matched_count,
			 anomaly_count, average_score, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := db.conn.ExecContext(ctx, query,
		run.RunID, run.PropertyID, run.TotalExtracted, run.MatchedCount,
		run.AnomalyCount, run.AverageScore, run.DurationMs, run.CreatedAt)
	if err != nil {
		return errs.NewDB("database.SaveRunCtx", "insert failed", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		run.ID = id
	}
	return nil
}

// GetRecentRunsCtx returns the newest run summaries, newest first.
func (db *DB) GetRecentRunsCtx(ctx context.Context, limit int) ([]models.ReconciliationRun, error) {
	if limit <= 0 {
		limit = constants.RecentRunsDefaultLimit
	}
	if limit > constants.RecentRunsMaxLimit {
		limit = constants.RecentRunsMaxLimit
	}

	ctx, cancel := context.WithTimeout(ctx, db.readTimeout)
	defer cancel()

	const query = `
		SELECT id, run_id, property_id, total_extracted, matched_count,
		       anomaly_count, average_score, duration_ms, created_at
		FROM reconciliation_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errs.NewDB("database.GetRecentRunsCtx", "query failed", err)
	}
	defer rows.Close()

	var runs []models.ReconciliationRun
	for rows.Next() {
		var r models.ReconciliationRun
		if err := rows.Scan(&r.ID, &r.RunID, &r.PropertyID, &r.TotalExtracted,
			&r.MatchedCount, &r.AnomalyCount, &r.AverageScore, &r.DurationMs,
			&r.CreatedAt); err != nil {
			return nil, errs.NewDB("database.GetRecentRunsCtx", "scan failed", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDB("database.GetRecentRunsCtx", "rows iteration failed", err)
	}
	return runs, nil
}

// GetRunStatsCtx aggregates all persisted runs for the stats endpoint.
func (db *DB) GetRunStatsCtx(ctx context.Context) (*models.RunStats, error) {
	ctx, cancel := context.WithTimeout(ctx, db.readTimeout)
	defer cancel()

	const query = `
		SELECT COUNT(*),
		       COALESCE(SUM(total_extracted), 0),
		       COALESCE(SUM(matched_count), 0),
		       COALESCE(SUM(anomaly_count), 0),
		       COALESCE(AVG(average_score), 0)
		FROM reconciliation_runs`

	var stats models.RunStats
	if err := db.conn.QueryRowContext(ctx, query).Scan(&stats.TotalRuns,
		&stats.TotalExtracted, &stats.TotalMatched, &stats.TotalAnomalies,
		&stats.AverageScore); err != nil {
		return nil, errs.NewDB("database.GetRunStatsCtx", "query failed", err)
	}
	return &stats, nil
}
