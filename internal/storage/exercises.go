package storage

import (
	"context"
	"fmt"

	"github.com/claude/ironclub/internal/models"
	"github.com/google/uuid"
)

// InsertExercise adds a catalog exercise.
func (db *DB) InsertExercise(ctx context.Context, e models.Exercise) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, name, category, muscle_group) VALUES ($1,$2,$3,$4)`,
		e.ID, e.Name, e.Category, e.MuscleGroup)
	if err != nil {
		return fmt.Errorf("inserting exercise: %w", err)
	}
	return nil
}

// GetExercise retrieves a catalog exercise.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, name, category, muscle_group FROM exercises WHERE id = $1`, id)
	var e models.Exercise
	if err := row.Scan(&e.ID, &e.Name, &e.Category, &e.MuscleGroup); err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

// ListExercises returns the catalog, optionally filtered by muscle
// group, alphabetically.
func (db *DB) ListExercises(ctx context.Context, muscleGroup string) ([]models.Exercise, error) {
	query := `SELECT id, name, category, muscle_group FROM exercises`
	args := []any{}
	if muscleGroup != "" {
		query += ` WHERE muscle_group = $1`
		args = append(args, muscleGroup)
	}
	query += ` ORDER BY name ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.MuscleGroup); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// FindExerciseByName looks up a catalog exercise by exact name, used by
// the importer.
func (db *DB) FindExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, name, category, muscle_group FROM exercises WHERE name = $1`, name)
	var e models.Exercise
	if err := row.Scan(&e.ID, &e.Name, &e.Category, &e.MuscleGroup); err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}
