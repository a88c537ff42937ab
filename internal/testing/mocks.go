package testutil

import (
	"context"
	"sync"

	"rentroll-reconciliation/internal/models"
)

// MockRepository implements domain.Repository for tests.
type MockRepository struct {
	Mu    sync.Mutex
	Units map[string][]models.CanonicalUnit
	Runs  []models.ReconciliationRun

	UnitsErr error
	SaveErr  error
	StatsErr error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{Units: map[string][]models.CanonicalUnit{}}
}

func (m *MockRepository) GetUnitsByPropertyCtx(_ context.Context, propertyID string) ([]models.CanonicalUnit, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if m.UnitsErr != nil {
		return nil, m.UnitsErr
	}
	return m.Units[propertyID], nil
}

func (m *MockRepository) SaveRunCtx(_ context.Context, run *models.ReconciliationRun) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	run.ID = int64(len(m.Runs) + 1)
	m.Runs = append(m.Runs, *run)
	return nil
}

func (m *MockRepository) GetRecentRunsCtx(_ context.Context, limit int) ([]models.ReconciliationRun, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if limit <= 0 || limit > len(m.Runs) {
		limit = len(m.Runs)
	}
	// newest first
	out := make([]models.ReconciliationRun, 0, limit)
	for i := len(m.Runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.Runs[i])
	}
	return out, nil
}

func (m *MockRepository) GetRunStatsCtx(_ context.Context) (*models.RunStats, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if m.StatsErr != nil {
		return nil, m.StatsErr
	}
	stats := &models.RunStats{TotalRuns: len(m.Runs)}
	var scoreSum float64
	for _, r := range m.Runs {
		stats.TotalExtracted += r.TotalExtracted
		stats.TotalMatched += r.MatchedCount
		stats.TotalAnomalies += r.AnomalyCount
		scoreSum += r.AverageScore
	}
	if len(m.Runs) > 0 {
		stats.AverageScore = scoreSum / float64(len(m.Runs))
	}
	return stats, nil
}
