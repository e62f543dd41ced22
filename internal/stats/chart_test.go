package stats

import (
	"math"
	"testing"

	"github.com/claude/ironclub/internal/models"
	"github.com/google/uuid"
)

func collect(seq func(func(ChartPoint) bool)) []ChartPoint {
	var out []ChartPoint
	for p := range seq {
		out = append(out, p)
	}
	return out
}

// TestChartSeriesPerSessionMax verifies each session contributes its best
// estimated 1RM, not an average, in chronological order.
func TestChartSeriesPerSessionMax(t *testing.T) {
	w1, w2 := uuid.New(), uuid.New()
	sets := []models.ExerciseSet{
		{WorkoutID: w2, WeightKg: 105, Reps: 3, SetNumber: 1, Date: day(5)}, // est 115.5
		{WorkoutID: w1, WeightKg: 100, Reps: 5, SetNumber: 1, Date: day(2)}, // est 116.67
		{WorkoutID: w1, WeightKg: 90, Reps: 8, SetNumber: 2, Date: day(2)},  // est 114.0
		{WorkoutID: w2, WeightKg: 110, Reps: 2, SetNumber: 2, Date: day(5)}, // est 117.33
	}

	points := collect(ChartSeries(sets, 10))
	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
	if !points[0].Date.Equal(day(2)) || !points[1].Date.Equal(day(5)) {
		t.Errorf("points not chronological: %v, %v", points[0].Date, points[1].Date)
	}
	want0 := 100 * (1 + 5.0/30)
	if math.Abs(points[0].Estimated1RM-want0) > 1e-9 {
		t.Errorf("session 1 best = %f, want %f", points[0].Estimated1RM, want0)
	}
	want1 := 110 * (1 + 2.0/30)
	if math.Abs(points[1].Estimated1RM-want1) > 1e-9 {
		t.Errorf("session 2 best = %f, want %f", points[1].Estimated1RM, want1)
	}
}

// TestChartSeriesLimit verifies that only the most recent N sessions are
// kept, still ordered ascending for plotting.
func TestChartSeriesLimit(t *testing.T) {
	var sets []models.ExerciseSet
	for i := 1; i <= 5; i++ {
		sets = append(sets, models.ExerciseSet{
			WorkoutID: uuid.New(),
			WeightKg:  float64(80 + i),
			Reps:      5,
			SetNumber: 1,
			Date:      day(i),
		})
	}

	points := collect(ChartSeries(sets, 3))
	if len(points) != 3 {
		t.Fatalf("len(points) = %d, want 3", len(points))
	}
	if !points[0].Date.Equal(day(3)) || !points[2].Date.Equal(day(5)) {
		t.Errorf("want sessions 3..5, got %v .. %v", points[0].Date, points[2].Date)
	}
}

// TestChartSeriesRestartable verifies the sequence can be ranged twice
// with identical results.
func TestChartSeriesRestartable(t *testing.T) {
	sets := []models.ExerciseSet{
		{WorkoutID: uuid.New(), WeightKg: 100, Reps: 5, SetNumber: 1, Date: day(1)},
		{WorkoutID: uuid.New(), WeightKg: 102, Reps: 5, SetNumber: 1, Date: day(2)},
	}

	seq := ChartSeries(sets, 10)
	first := collect(seq)
	second := collect(seq)

	if len(first) != len(second) {
		t.Fatalf("second pass yielded %d points, first %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("point %d differs between passes: %+v vs %+v", i, first[i], second[i])
		}
	}
}

// TestChartSeriesEmpty verifies an empty history yields no points.
func TestChartSeriesEmpty(t *testing.T) {
	if points := collect(ChartSeries(nil, 10)); len(points) != 0 {
		t.Errorf("len(points) = %d, want 0", len(points))
	}
}

// TestChartSeriesEarlyStop verifies the consumer can break out of the
// sequence without side effects.
func TestChartSeriesEarlyStop(t *testing.T) {
	var sets []models.ExerciseSet
	for i := 1; i <= 4; i++ {
		sets = append(sets, models.ExerciseSet{
			WorkoutID: uuid.New(), WeightKg: 100, Reps: 5, SetNumber: 1, Date: day(i),
		})
	}

	count := 0
	for range ChartSeries(sets, 10) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("consumed %d points, want 2", count)
	}
}
