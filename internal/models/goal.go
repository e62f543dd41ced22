package models

import (
	"time"

	"github.com/google/uuid"
)

// GoalType enumerates the objectives a member can track.
type GoalType string

const (
	GoalLoseWeight         GoalType = "lose-weight"
	GoalGainWeight         GoalType = "gain-weight"
	GoalGainMuscle         GoalType = "gain-muscle"
	GoalImproveEndurance   GoalType = "improve-endurance"
	GoalIncreaseStrength   GoalType = "increase-strength"
	GoalImproveFlexibility GoalType = "improve-flexibility"
	GoalReduceBodyFat      GoalType = "reduce-body-fat"
	GoalMaintainWeight     GoalType = "maintain-weight"
	GoalOther              GoalType = "other"
)

var goalTypeLabels = map[GoalType]string{
	GoalLoseWeight:         "Perder peso",
	GoalGainWeight:         "Ganar peso",
	GoalGainMuscle:         "Ganar músculo",
	GoalImproveEndurance:   "Mejorar resistencia",
	GoalIncreaseStrength:   "Aumentar fuerza",
	GoalImproveFlexibility: "Mejorar flexibilidad",
	GoalReduceBodyFat:      "Reducir grasa corporal",
	GoalMaintainWeight:     "Mantener peso",
	GoalOther:              "Otro",
}

// Label returns the display name for the goal type.
func (t GoalType) Label() string {
	if l, ok := goalTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Valid reports whether t is a known goal type.
func (t GoalType) Valid() bool {
	_, ok := goalTypeLabels[t]
	return ok
}

// GoalStatus is the lifecycle state of a goal. Completed and abandoned
// are terminal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalPaused    GoalStatus = "paused"
	GoalCompleted GoalStatus = "completed"
	GoalAbandoned GoalStatus = "abandoned"
)

// Terminal reports whether no further transitions are allowed from s.
func (s GoalStatus) Terminal() bool {
	return s == GoalCompleted || s == GoalAbandoned
}

// UserGoal is a tracked objective. Progress is always derived from
// (initial, current, target); the stored value is only a cache of the
// last recalculation.
//
// JSON names follow the original club app so the existing frontend keeps
// working against this backend.
type UserGoal struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"userId"`
	Type              GoalType   `json:"tipo"`
	TargetWeight      *float64   `json:"pesoObjetivo,omitempty"`
	TargetBodyFat     *float64   `json:"grasaCorporalObjetivo,omitempty"`
	TargetMuscleMass  *float64   `json:"masaMuscularObjetivo,omitempty"`
	InitialWeight     *float64   `json:"pesoInicial,omitempty"`
	InitialBodyFat    *float64   `json:"grasaCorporalInicial,omitempty"`
	InitialMuscleMass *float64   `json:"masaMuscularInicial,omitempty"`
	StartDate         time.Time  `json:"fechaInicio"`
	TargetDate        *time.Time `json:"fechaObjetivo,omitempty"`
	CompletedAt       *time.Time `json:"fechaCompletado,omitempty"`
	Status            GoalStatus `json:"estado"`
	Progress          int        `json:"porcentajeProgreso"`
}
