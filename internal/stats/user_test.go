package stats

import (
	"math"
	"testing"
	"time"

	"github.com/claude/ironclub/internal/models"
	"github.com/google/uuid"
)

func logOn(date time.Time, sets ...models.ExerciseSet) models.WorkoutLog {
	id := uuid.New()
	for i := range sets {
		sets[i].WorkoutID = id
	}
	return models.WorkoutLog{
		ID:     id,
		UserID: uuid.New(),
		Date:   date,
		Sets:   sets,
	}
}

// TestComputeUserWorkoutStatsEmpty verifies zero values for a user with
// no logs.
func TestComputeUserWorkoutStatsEmpty(t *testing.T) {
	got, err := ComputeUserWorkoutStats(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalWorkouts != 0 || got.TotalSets != 0 || got.TotalVolume != 0 ||
		got.CurrentStreak != 0 || got.AvgSetsPerWorkout != 0 {
		t.Errorf("empty stats = %+v, want all zeros", got)
	}
}

// TestComputeUserWorkoutStatsTotals checks workout/set/volume sums and
// the one-decimal sets-per-workout average.
func TestComputeUserWorkoutStatsTotals(t *testing.T) {
	logs := []models.WorkoutLog{
		logOn(day(1), set(100, 5, day(1)), set(100, 5, day(1)), set(80, 8, day(1))),
		logOn(day(2), set(60, 10, day(2)), set(60, 10, day(2))),
	}

	got, err := ComputeUserWorkoutStats(logs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalWorkouts != 2 {
		t.Errorf("TotalWorkouts = %d, want 2", got.TotalWorkouts)
	}
	if got.TotalSets != 5 {
		t.Errorf("TotalSets = %d, want 5", got.TotalSets)
	}
	wantVolume := 100*5.0 + 100*5.0 + 80*8.0 + 60*10.0 + 60*10.0
	if math.Abs(got.TotalVolume-wantVolume) > 1e-9 {
		t.Errorf("TotalVolume = %f, want %f", got.TotalVolume, wantVolume)
	}
	if got.AvgSetsPerWorkout != 2.5 {
		t.Errorf("AvgSetsPerWorkout = %f, want 2.5", got.AvgSetsPerWorkout)
	}
}

// TestCurrentStreakConsecutive verifies logs on D, D-1 and D-2 with a gap
// at D-3 yield a streak of 3.
func TestCurrentStreakConsecutive(t *testing.T) {
	logs := []models.WorkoutLog{
		logOn(day(10)),
		logOn(day(9)),
		logOn(day(8)),
		logOn(day(6)), // gap at day 7 breaks the run
		logOn(day(5)),
	}

	got, err := ComputeUserWorkoutStats(logs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got.CurrentStreak)
	}
}

// TestCurrentStreakFreezes verifies the streak counts back from the last
// logged day even when that day is long past, instead of resetting to 0.
// Easy to get wrong as "days since last workout == 0".
func TestCurrentStreakFreezes(t *testing.T) {
	old := time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC)
	logs := []models.WorkoutLog{
		logOn(old),
		logOn(old.AddDate(0, 0, -1)),
	}

	got, err := ComputeUserWorkoutStats(logs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2 (frozen at last training day)", got.CurrentStreak)
	}
}

// TestCurrentStreakMultipleLogsSameDay verifies two sessions on one
// calendar day count as a single streak day.
func TestCurrentStreakMultipleLogsSameDay(t *testing.T) {
	logs := []models.WorkoutLog{
		logOn(day(4).Add(2 * time.Hour)),
		logOn(day(4)),
		logOn(day(3)),
	}

	got, err := ComputeUserWorkoutStats(logs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got.CurrentStreak)
	}
}

// TestCurrentStreakSingleDay verifies a lone workout gives streak 1.
func TestCurrentStreakSingleDay(t *testing.T) {
	got, err := ComputeUserWorkoutStats([]models.WorkoutLog{logOn(day(1))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
}
