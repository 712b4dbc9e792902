package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kmdeguzman/worship-scheduler/pkg/postgres"
)

func TestListRuns(t *testing.T) {
	store := &fakeArchiveStore{
		runs: []postgres.ScheduleRun{
			{ID: "run-2", BuiltAt: date(2025, time.May, 1)},
			{ID: "run-1", BuiltAt: date(2025, time.April, 1)},
		},
	}

	runs, err := ListRuns(context.Background(), store, zap.NewNop())

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
}

func TestListRuns_NoStore(t *testing.T) {
	_, err := ListRuns(context.Background(), nil, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no archive configured")
}

func TestListRuns_StoreError(t *testing.T) {
	store := &fakeArchiveStore{getRunsErr: errors.New("connection refused")}

	_, err := ListRuns(context.Background(), store, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch schedule runs")
}

func TestGetRunAssignments(t *testing.T) {
	store := &fakeArchiveStore{
		assignmentsByRunID: map[string][]postgres.Assignment{
			"run-1": {
				{ID: "a-1", RunID: "run-1", Role: "WORSHIP LEADER", PersonName: "Gee"},
			},
		},
	}

	assignments, err := GetRunAssignments(context.Background(), store, zap.NewNop(), "run-1")

	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "Gee", assignments[0].PersonName)
}

func TestGetRunAssignments_EmptyRunIDUsesLatest(t *testing.T) {
	store := &fakeArchiveStore{
		runs: []postgres.ScheduleRun{
			{ID: "run-2", BuiltAt: date(2025, time.May, 1)},
			{ID: "run-1", BuiltAt: date(2025, time.April, 1)},
		},
		assignmentsByRunID: map[string][]postgres.Assignment{
			"run-2": {
				{ID: "a-2", RunID: "run-2", Role: "KEYS", PersonName: "Anna"},
			},
		},
	}

	assignments, err := GetRunAssignments(context.Background(), store, zap.NewNop(), "")

	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "run-2", assignments[0].RunID)
}

func TestGetRunAssignments_NoRuns(t *testing.T) {
	store := &fakeArchiveStore{}

	_, err := GetRunAssignments(context.Background(), store, zap.NewNop(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no archived runs found")
}

func TestGetRunAssignments_NoStore(t *testing.T) {
	_, err := GetRunAssignments(context.Background(), nil, zap.NewNop(), "run-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no archive configured")
}
