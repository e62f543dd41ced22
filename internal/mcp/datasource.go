package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/claude/ironclub/internal/models"
	"github.com/claude/ironclub/internal/storage"
)

// DataSource abstracts the data layer for MCP tools, satisfied by
// *storage.DB. Tools are read-only; nothing here mutates state.
type DataSource interface {
	QueryWorkoutLogs(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.WorkoutLog, error)
	QueryExerciseSets(ctx context.Context, userID, exerciseID uuid.UUID) ([]models.ExerciseSet, error)
	FindExerciseByName(ctx context.Context, name string) (*models.Exercise, error)
	ListExercises(ctx context.Context, muscleGroup string) ([]models.Exercise, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]models.UserGoal, error)
	ListMeasurements(ctx context.Context, userID uuid.UUID, limit int) ([]models.BodyMeasurement, error)
	QueryClasses(ctx context.Context, start, end time.Time) ([]models.ClassSession, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
