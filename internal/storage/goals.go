package storage

import (
	"context"
	"fmt"

	"github.com/claude/ironclub/internal/models"
	"github.com/google/uuid"
)

const goalColumns = `id, user_id, goal_type, target_weight, target_body_fat, target_muscle_mass,
	initial_weight, initial_body_fat, initial_muscle_mass,
	start_date, target_date, completed_at, status, progress`

// InsertGoal creates a goal.
func (db *DB) InsertGoal(ctx context.Context, g models.UserGoal) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO goals (id, user_id, goal_type, target_weight, target_body_fat, target_muscle_mass,
		 initial_weight, initial_body_fat, initial_muscle_mass,
		 start_date, target_date, completed_at, status, progress)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		g.ID, g.UserID, g.Type, g.TargetWeight, g.TargetBodyFat, g.TargetMuscleMass,
		g.InitialWeight, g.InitialBodyFat, g.InitialMuscleMass,
		g.StartDate, g.TargetDate, g.CompletedAt, g.Status, g.Progress)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

// GetGoal retrieves one of the user's goals.
func (db *DB) GetGoal(ctx context.Context, id, userID uuid.UUID) (*models.UserGoal, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	return scanGoal(row)
}

// ListGoals returns a user's goals, newest first.
func (db *DB) ListGoals(ctx context.Context, userID uuid.UUID) ([]models.UserGoal, error) {
	return db.queryGoals(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = $1 ORDER BY start_date DESC`, userID)
}

// ListActiveGoals returns the user's active goals for batch
// recalculation.
func (db *DB) ListActiveGoals(ctx context.Context, userID uuid.UUID) ([]models.UserGoal, error) {
	return db.queryGoals(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = $1 AND status = 'active'
		 ORDER BY start_date ASC`, userID)
}

// UpdateGoalProgress persists the recomputed percentage, status and
// completion time. The percentage is a cache of the last recalculation,
// never an input.
func (db *DB) UpdateGoalProgress(ctx context.Context, g models.UserGoal) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE goals SET progress = $3, status = $4, completed_at = $5
		 WHERE id = $1 AND user_id = $2`,
		g.ID, g.UserID, g.Progress, g.Status, g.CompletedAt)
	if err != nil {
		return fmt.Errorf("updating goal progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) queryGoals(ctx context.Context, query string, args ...any) ([]models.UserGoal, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var result []models.UserGoal
	for rows.Next() {
		var g models.UserGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Type, &g.TargetWeight, &g.TargetBodyFat, &g.TargetMuscleMass,
			&g.InitialWeight, &g.InitialBodyFat, &g.InitialMuscleMass,
			&g.StartDate, &g.TargetDate, &g.CompletedAt, &g.Status, &g.Progress); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

func scanGoal(row interface{ Scan(dest ...any) error }) (*models.UserGoal, error) {
	var g models.UserGoal
	err := row.Scan(&g.ID, &g.UserID, &g.Type, &g.TargetWeight, &g.TargetBodyFat, &g.TargetMuscleMass,
		&g.InitialWeight, &g.InitialBodyFat, &g.InitialMuscleMass,
		&g.StartDate, &g.TargetDate, &g.CompletedAt, &g.Status, &g.Progress)
	if err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}
