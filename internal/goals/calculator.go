// Package goals implements the goal lifecycle and progress computation.
// Like the stats engine, everything here is pure: storage and the HTTP
// boundary apply the results.
package goals

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/claude/ironclub/internal/models"
)

// ErrInvalidTransition is returned for lifecycle moves the state machine
// does not allow, e.g. pausing a completed goal.
var ErrInvalidTransition = errors.New("invalid goal transition")

// Pause moves an active goal to paused.
func Pause(g *models.UserGoal) error {
	if g.Status != models.GoalActive {
		return fmt.Errorf("%w: pause from %q", ErrInvalidTransition, g.Status)
	}
	g.Status = models.GoalPaused
	return nil
}

// Resume moves a paused goal back to active.
func Resume(g *models.UserGoal) error {
	if g.Status != models.GoalPaused {
		return fmt.Errorf("%w: resume from %q", ErrInvalidTransition, g.Status)
	}
	g.Status = models.GoalActive
	return nil
}

// Complete marks an active goal as completed at the given time.
func Complete(g *models.UserGoal, now time.Time) error {
	if g.Status != models.GoalActive {
		return fmt.Errorf("%w: complete from %q", ErrInvalidTransition, g.Status)
	}
	g.Status = models.GoalCompleted
	g.CompletedAt = &now
	return nil
}

// Abandon marks an active or paused goal as abandoned. Terminal.
func Abandon(g *models.UserGoal) error {
	if g.Status.Terminal() {
		return fmt.Errorf("%w: abandon from %q", ErrInvalidTransition, g.Status)
	}
	g.Status = models.GoalAbandoned
	return nil
}

// Recalculate recomputes g's progress percentage from the latest body
// measurement and flips an active goal to completed when it reaches 100.
// Terminal goals are left untouched. A nil measurement, or one missing
// the value the goal tracks, keeps the last stored percentage.
//
// Returns true when the goal changed (progress or status).
func Recalculate(g *models.UserGoal, m *models.BodyMeasurement, now time.Time) bool {
	if g.Status.Terminal() {
		return false
	}
	if m == nil {
		return false
	}

	initial, target, current, ok := trackedValues(g, m)
	if !ok {
		return false
	}

	progress := progressPct(g.Type, initial, target, current)

	changed := false
	if progress != g.Progress {
		g.Progress = progress
		changed = true
	}
	if g.Status == models.GoalActive && progress >= 100 {
		g.Status = models.GoalCompleted
		g.CompletedAt = &now
		changed = true
	}
	return changed
}

// trackedValues picks the metric the goal is defined over: weight first,
// then body fat, then muscle mass. All three of initial, target and
// current must be present.
func trackedValues(g *models.UserGoal, m *models.BodyMeasurement) (initial, target, current float64, ok bool) {
	switch {
	case g.TargetWeight != nil && g.InitialWeight != nil && m.WeightKg != nil:
		return *g.InitialWeight, *g.TargetWeight, *m.WeightKg, true
	case g.TargetBodyFat != nil && g.InitialBodyFat != nil && m.BodyFatPct != nil:
		return *g.InitialBodyFat, *g.TargetBodyFat, *m.BodyFatPct, true
	case g.TargetMuscleMass != nil && g.InitialMuscleMass != nil && m.MuscleMassPct != nil:
		return *g.InitialMuscleMass, *g.TargetMuscleMass, *m.MuscleMassPct, true
	}
	return 0, 0, 0, false
}

// progressPct computes the clamped integer percentage toward the target.
// Direction follows the target: decreasing when target < initial,
// increasing otherwise. The degenerate initial == target case is 100 once
// current has reached or crossed the target (direction taken from the
// goal type), else 0.
func progressPct(typ models.GoalType, initial, target, current float64) int {
	if initial == target {
		if reachedTarget(typ, target, current) {
			return 100
		}
		return 0
	}

	ratio := (initial - current) / (initial - target)
	return int(math.Round(clamp01(ratio) * 100))
}

// reachedTarget reports whether current has met or crossed target for the
// goal's direction. Types without an inherent direction only count an
// exact match.
func reachedTarget(typ models.GoalType, target, current float64) bool {
	switch typ {
	case models.GoalLoseWeight, models.GoalReduceBodyFat:
		return current <= target
	case models.GoalGainWeight, models.GoalGainMuscle, models.GoalIncreaseStrength:
		return current >= target
	}
	return current == target
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
