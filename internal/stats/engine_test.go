package stats

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/claude/ironclub/internal/models"
	"github.com/google/uuid"
)

func day(d int) time.Time {
	return time.Date(2026, 8, d, 10, 0, 0, 0, time.UTC)
}

func set(weight float64, reps int, date time.Time) models.ExerciseSet {
	return models.ExerciseSet{
		ID:         uuid.New(),
		WorkoutID:  uuid.New(),
		ExerciseID: uuid.New(),
		SetNumber:  1,
		WeightKg:   weight,
		Reps:       reps,
		Date:       date,
	}
}

// TestComputeExerciseStatsEmpty verifies that an empty history yields all
// zero values, a nil PR and no last-session date, without error.
func TestComputeExerciseStatsEmpty(t *testing.T) {
	got, err := ComputeExerciseStats(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalSets != 0 || got.TotalReps != 0 || got.TotalVolume != 0 ||
		got.AvgWeight != 0 || got.AvgReps != 0 {
		t.Errorf("empty stats = %+v, want all zeros", got)
	}
	if got.PR != nil {
		t.Errorf("PR = %+v, want nil", got.PR)
	}
	if got.LastSession != nil {
		t.Errorf("LastSession = %v, want nil", got.LastSession)
	}
}

// TestComputeExerciseStatsAggregates checks totals, rounded averages and
// the last-session date over a small history.
func TestComputeExerciseStatsAggregates(t *testing.T) {
	sets := []models.ExerciseSet{
		set(100, 5, day(1)),
		set(105, 3, day(3)),
		set(95, 8, day(2)),
	}

	got, err := ComputeExerciseStats(sets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalSets != 3 {
		t.Errorf("TotalSets = %d, want 3", got.TotalSets)
	}
	if got.TotalReps != 16 {
		t.Errorf("TotalReps = %d, want 16", got.TotalReps)
	}
	wantVolume := 100*5.0 + 105*3.0 + 95*8.0
	if math.Abs(got.TotalVolume-wantVolume) > 1e-9 {
		t.Errorf("TotalVolume = %f, want %f", got.TotalVolume, wantVolume)
	}
	if got.AvgWeight != 100.0 {
		t.Errorf("AvgWeight = %f, want 100.0", got.AvgWeight)
	}
	// mean reps = 16/3 = 5.33 → 5
	if got.AvgReps != 5 {
		t.Errorf("AvgReps = %d, want 5", got.AvgReps)
	}
	if got.LastSession == nil || !got.LastSession.Equal(day(3)) {
		t.Errorf("LastSession = %v, want %v", got.LastSession, day(3))
	}
}

// TestComputeExerciseStatsAvgWeightRounding verifies the one-decimal
// rounding of the average weight.
func TestComputeExerciseStatsAvgWeightRounding(t *testing.T) {
	sets := []models.ExerciseSet{
		set(100, 5, day(1)),
		set(102.5, 5, day(2)),
		set(101, 5, day(3)),
	}
	got, err := ComputeExerciseStats(sets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// mean = 101.1666... → 101.2
	if got.AvgWeight != 101.2 {
		t.Errorf("AvgWeight = %f, want 101.2", got.AvgWeight)
	}
}

// TestComputeExerciseStatsPR verifies the Epley-based record selection:
// 110x3 (est 121.0) beats 100x5 (est 116.67).
func TestComputeExerciseStatsPR(t *testing.T) {
	sets := []models.ExerciseSet{
		set(100, 5, day(1)),
		set(110, 3, day(2)),
	}
	got, err := ComputeExerciseStats(sets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PR == nil {
		t.Fatal("PR = nil, want second set")
	}
	if got.PR.WeightKg != 110 || got.PR.Reps != 3 {
		t.Errorf("PR = %.0fx%d, want 110x3", got.PR.WeightKg, got.PR.Reps)
	}
	if math.Abs(got.PR.Estimated1RM-121.0) > 1e-9 {
		t.Errorf("PR estimated 1RM = %f, want 121.0", got.PR.Estimated1RM)
	}
}

// TestComputeExerciseStatsPRTieBreak verifies that on equal estimated
// 1RM the earliest set keeps the record, regardless of input order.
func TestComputeExerciseStatsPRTieBreak(t *testing.T) {
	early := set(100, 5, day(1))
	late := set(100, 5, day(9))

	for _, order := range [][]models.ExerciseSet{
		{early, late},
		{late, early},
	} {
		got, err := ComputeExerciseStats(order)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.PR == nil || !got.PR.Date.Equal(day(1)) {
			t.Errorf("PR date = %v, want %v (earliest wins)", got.PR.Date, day(1))
		}
	}
}

// TestComputeExerciseStatsRejectsBadInput verifies fail-fast validation:
// a malformed set aborts the computation instead of corrupting totals.
func TestComputeExerciseStatsRejectsBadInput(t *testing.T) {
	rir := 15
	tests := []struct {
		name string
		bad  models.ExerciseSet
	}{
		{"negative weight", set(-10, 5, day(1))},
		{"zero reps", set(100, 0, day(1))},
		{"zero date", set(100, 5, time.Time{})},
		{"rir out of range", func() models.ExerciseSet {
			s := set(100, 5, day(1))
			s.RIR = &rir
			return s
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeExerciseStats([]models.ExerciseSet{set(100, 5, day(1)), tt.bad})
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

// TestDetectPR verifies that only a strictly higher estimated 1RM counts
// as a new record, and that an empty history always does.
func TestDetectPR(t *testing.T) {
	history := []models.ExerciseSet{
		set(100, 5, day(1)), // est 116.67
		set(110, 3, day(2)), // est 121.0
	}

	tests := []struct {
		name    string
		newSet  models.ExerciseSet
		history []models.ExerciseSet
		want    bool
	}{
		{"empty history", set(20, 1, day(3)), nil, true},
		{"beats best", set(115, 3, day(3)), history, true},   // est 126.5
		{"equals best", set(110, 3, day(3)), history, false}, // tie is not a new PR
		{"below best", set(100, 5, day(3)), history, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectPR(tt.newSet, tt.history); got != tt.want {
				t.Errorf("DetectPR = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestDetectPRMonotonic verifies that appending a strictly better set
// flags exactly that set as the record.
func TestDetectPRMonotonic(t *testing.T) {
	var history []models.ExerciseSet
	weights := []float64{80, 90, 100}
	for i, w := range weights {
		s := set(w, 5, day(i+1))
		if !DetectPR(s, history) {
			t.Errorf("set %d (%.0f kg) should be a PR over %d prior sets", i, w, len(history))
		}
		history = append(history, s)
	}
	// A repeat of the current best is not a new record.
	if DetectPR(set(100, 5, day(9)), history) {
		t.Error("repeating the best set should not be a PR")
	}
}
