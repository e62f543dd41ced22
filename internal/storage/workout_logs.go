package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/ironclub/internal/models"
	"github.com/google/uuid"
)

// InsertWorkoutLog inserts a log and batch-inserts its sets in one
// transaction. Sets keep their insertion order via the position column.
func (db *DB) InsertWorkoutLog(ctx context.Context, l models.WorkoutLog) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning workout tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO workout_logs (id, user_id, log_date, title, duration_min)
		 VALUES ($1,$2,$3,$4,$5)`,
		l.ID, l.UserID, l.Date, l.Title, l.DurationMin)
	if err != nil {
		return fmt.Errorf("inserting workout log: %w", err)
	}

	if len(l.Sets) > 0 {
		query := `INSERT INTO exercise_sets (id, workout_id, exercise_id, position, set_number,
			weight_kg, reps, rir, is_pr, recorded_at) VALUES `
		args := make([]any, 0, len(l.Sets)*10)
		valueStrings := make([]string, 0, len(l.Sets))

		for i, s := range l.Sets {
			base := i * 10
			valueStrings = append(valueStrings, fmt.Sprintf(
				"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5,
				base+6, base+7, base+8, base+9, base+10,
			))
			args = append(args, s.ID, l.ID, s.ExerciseID, i, s.SetNumber,
				s.WeightKg, s.Reps, s.RIR, s.IsPR, s.Date)
		}

		query += strings.Join(valueStrings, ",")
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting exercise sets: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetWorkoutLog retrieves a log with its sets in insertion order.
func (db *DB) GetWorkoutLog(ctx context.Context, id, userID uuid.UUID) (*models.WorkoutLog, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, log_date, title, duration_min
		 FROM workout_logs WHERE id = $1 AND user_id = $2`,
		id, userID)

	var l models.WorkoutLog
	if err := row.Scan(&l.ID, &l.UserID, &l.Date, &l.Title, &l.DurationMin); err != nil {
		return nil, notFound(err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT id, workout_id, exercise_id, set_number, weight_kg, reps, rir, is_pr, recorded_at
		 FROM exercise_sets WHERE workout_id = $1 ORDER BY position ASC`,
		id)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.ExerciseSet
		if err := rows.Scan(&s.ID, &s.WorkoutID, &s.ExerciseID, &s.SetNumber,
			&s.WeightKg, &s.Reps, &s.RIR, &s.IsPR, &s.Date); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		l.Sets = append(l.Sets, s)
	}
	return &l, rows.Err()
}

// QueryWorkoutLogs retrieves a user's logs with sets in a date range,
// newest first.
func (db *DB) QueryWorkoutLogs(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.WorkoutLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, log_date, title, duration_min
		 FROM workout_logs
		 WHERE user_id = $1 AND log_date >= $2 AND log_date < $3
		 ORDER BY log_date DESC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying workout logs: %w", err)
	}
	defer rows.Close()

	var logs []models.WorkoutLog
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var l models.WorkoutLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Date, &l.Title, &l.DurationMin); err != nil {
			return nil, fmt.Errorf("scanning workout log: %w", err)
		}
		index[l.ID] = len(logs)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, nil
	}

	setRows, err := db.Pool.Query(ctx,
		`SELECT s.id, s.workout_id, s.exercise_id, s.set_number, s.weight_kg, s.reps, s.rir, s.is_pr, s.recorded_at
		 FROM exercise_sets s
		 JOIN workout_logs l ON l.id = s.workout_id
		 WHERE l.user_id = $1 AND l.log_date >= $2 AND l.log_date < $3
		 ORDER BY s.workout_id, s.position ASC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var s models.ExerciseSet
		if err := setRows.Scan(&s.ID, &s.WorkoutID, &s.ExerciseID, &s.SetNumber,
			&s.WeightKg, &s.Reps, &s.RIR, &s.IsPR, &s.Date); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		if i, ok := index[s.WorkoutID]; ok {
			logs[i].Sets = append(logs[i].Sets, s)
		}
	}
	return logs, setRows.Err()
}

// DeleteWorkoutLog removes a log and its sets. Stored PR flags on other
// sets are left as they are.
func (db *DB) DeleteWorkoutLog(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_logs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting workout log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// QueryExerciseSets returns every set a user has logged for one
// exercise, oldest first.
func (db *DB) QueryExerciseSets(ctx context.Context, userID, exerciseID uuid.UUID) ([]models.ExerciseSet, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT s.id, s.workout_id, s.exercise_id, s.set_number, s.weight_kg, s.reps, s.rir, s.is_pr, s.recorded_at
		 FROM exercise_sets s
		 JOIN workout_logs l ON l.id = s.workout_id
		 WHERE l.user_id = $1 AND s.exercise_id = $2
		 ORDER BY s.recorded_at ASC`,
		userID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise sets: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseSet
	for rows.Next() {
		var s models.ExerciseSet
		if err := rows.Scan(&s.ID, &s.WorkoutID, &s.ExerciseID, &s.SetNumber,
			&s.WeightKg, &s.Reps, &s.RIR, &s.IsPR, &s.Date); err != nil {
			return nil, fmt.Errorf("scanning exercise set: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
