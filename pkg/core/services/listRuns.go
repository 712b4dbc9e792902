package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kmdeguzman/worship-scheduler/pkg/postgres"
)

// RunHistoryStore defines the database operations needed to view past runs.
type RunHistoryStore interface {
	GetScheduleRuns(ctx context.Context) ([]postgres.ScheduleRun, error)
	GetAssignments(ctx context.Context, runID string) ([]postgres.Assignment, error)
}

// ListRuns returns every archived schedule run, most recent first.
func ListRuns(ctx context.Context, store RunHistoryStore, logger *zap.Logger) ([]postgres.ScheduleRun, error) {
	if store == nil {
		return nil, fmt.Errorf("no archive configured - set postgresUrl in config")
	}

	logger.Debug("Fetching schedule runs")
	runs, err := store.GetScheduleRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule runs: %w", err)
	}
	logger.Debug("Found schedule runs", zap.Int("count", len(runs)))

	return runs, nil
}

// GetRunAssignments returns the archived assignments for one run. An empty
// runID selects the most recent run.
func GetRunAssignments(
	ctx context.Context,
	store RunHistoryStore,
	logger *zap.Logger,
	runID string,
) ([]postgres.Assignment, error) {
	if store == nil {
		return nil, fmt.Errorf("no archive configured - set postgresUrl in config")
	}

	if runID == "" {
		runs, err := store.GetScheduleRuns(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch schedule runs: %w", err)
		}
		if len(runs) == 0 {
			return nil, fmt.Errorf("no archived runs found - build a schedule first")
		}
		// Runs come back most recent first.
		runID = runs[0].ID
		logger.Debug("Using latest run", zap.String("run_id", runID))
	}

	logger.Debug("Fetching assignments", zap.String("run_id", runID))
	assignments, err := store.GetAssignments(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	logger.Debug("Found assignments", zap.Int("count", len(assignments)))

	return assignments, nil
}
