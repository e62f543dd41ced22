package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/ironclub/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertMeasurement records a body-composition snapshot.
func (db *DB) InsertMeasurement(ctx context.Context, m models.BodyMeasurement) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO measurements (id, user_id, taken_at, weight_kg, body_fat_pct, muscle_mass_pct)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		m.ID, m.UserID, m.TakenAt, m.WeightKg, m.BodyFatPct, m.MuscleMassPct)
	if err != nil {
		return fmt.Errorf("inserting measurement: %w", err)
	}
	return nil
}

// ListMeasurements returns a user's measurements, newest first.
func (db *DB) ListMeasurements(ctx context.Context, userID uuid.UUID, limit int) ([]models.BodyMeasurement, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, taken_at, weight_kg, body_fat_pct, muscle_mass_pct
		 FROM measurements
		 WHERE user_id = $1
		 ORDER BY taken_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying measurements: %w", err)
	}
	defer rows.Close()

	var result []models.BodyMeasurement
	for rows.Next() {
		var m models.BodyMeasurement
		if err := rows.Scan(&m.ID, &m.UserID, &m.TakenAt, &m.WeightKg, &m.BodyFatPct, &m.MuscleMassPct); err != nil {
			return nil, fmt.Errorf("scanning measurement: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// LatestMeasurement returns the newest measurement for a user, or nil
// when none exists yet (goal recalculation treats that as "no change").
func (db *DB) LatestMeasurement(ctx context.Context, userID uuid.UUID) (*models.BodyMeasurement, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, taken_at, weight_kg, body_fat_pct, muscle_mass_pct
		 FROM measurements
		 WHERE user_id = $1
		 ORDER BY taken_at DESC
		 LIMIT 1`,
		userID)

	var m models.BodyMeasurement
	err := row.Scan(&m.ID, &m.UserID, &m.TakenAt, &m.WeightKg, &m.BodyFatPct, &m.MuscleMassPct)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest measurement: %w", err)
	}
	return &m, nil
}
