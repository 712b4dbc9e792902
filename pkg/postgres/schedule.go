package postgres

import (
	"context"
	"fmt"
	"time"
)

// ScheduleRun is one archived build of a schedule.
type ScheduleRun struct {
	ID        string
	BuiltAt   time.Time
	StartDate time.Time
	EndDate   time.Time
	TeamSize  int
}

// Assignment is one role slot of an archived run. An empty PersonName means
// the slot went unassigned.
type Assignment struct {
	ID         string
	RunID      string
	EventDate  time.Time
	Role       string
	PersonName string
}

// InsertScheduleRun records a run header
func (db *DB) InsertScheduleRun(ctx context.Context, run ScheduleRun) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO schedule_run (id, built_at, start_date, end_date, team_size)
		VALUES ($1, $2, $3, $4, $5)
	`, run.ID, run.BuiltAt, run.StartDate, run.EndDate, run.TeamSize)
	if err != nil {
		return fmt.Errorf("failed to insert schedule run: %w", err)
	}

	return nil
}

// InsertAssignments inserts all assignments of a run in one transaction
func (db *DB) InsertAssignments(ctx context.Context, assignments []Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		var personName *string
		if a.PersonName != "" {
			personName = &a.PersonName
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO schedule_assignment (id, run_id, event_date, role, person_name)
			VALUES ($1, $2, $3, $4, $5)
		`, a.ID, a.RunID, a.EventDate, a.Role, personName)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetScheduleRuns retrieves archived runs, most recent first
func (db *DB) GetScheduleRuns(ctx context.Context) ([]ScheduleRun, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, built_at, start_date, end_date, team_size
		FROM schedule_run
		ORDER BY built_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule runs: %w", err)
	}
	defer rows.Close()

	var runs []ScheduleRun
	for rows.Next() {
		var run ScheduleRun
		if err := rows.Scan(&run.ID, &run.BuiltAt, &run.StartDate, &run.EndDate, &run.TeamSize); err != nil {
			return nil, fmt.Errorf("failed to scan schedule run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule runs: %w", err)
	}

	return runs, nil
}

// GetAssignments retrieves the assignments of one run ordered by date and role
func (db *DB) GetAssignments(ctx context.Context, runID string) ([]Assignment, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, run_id, event_date, role, person_name
		FROM schedule_assignment
		WHERE run_id = $1
		ORDER BY event_date, role
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []Assignment
	for rows.Next() {
		var a Assignment
		var personName *string
		if err := rows.Scan(&a.ID, &a.RunID, &a.EventDate, &a.Role, &personName); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if personName != nil {
			a.PersonName = *personName
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}
