package models

import "github.com/google/uuid"

// ExerciseCategory classifies how an exercise is performed.
type ExerciseCategory string

const (
	CategoryStrength    ExerciseCategory = "strength"
	CategoryCardio      ExerciseCategory = "cardio"
	CategoryFlexibility ExerciseCategory = "flexibility"
	CategoryBalance     ExerciseCategory = "balance"
	CategoryFunctional  ExerciseCategory = "functional"
)

var categoryLabels = map[ExerciseCategory]string{
	CategoryStrength:    "Fuerza",
	CategoryCardio:      "Cardio",
	CategoryFlexibility: "Flexibilidad",
	CategoryBalance:     "Equilibrio",
	CategoryFunctional:  "Funcional",
}

// Label returns the display name shown in the app, or the raw value for
// unrecognized categories.
func (c ExerciseCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is a known category.
func (c ExerciseCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// MuscleGroup is the primary muscle group an exercise targets.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleLegs      MuscleGroup = "legs"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleArms      MuscleGroup = "arms"
	MuscleCore      MuscleGroup = "core"
	MuscleFullBody  MuscleGroup = "full-body"
)

var muscleGroupLabels = map[MuscleGroup]string{
	MuscleChest:     "Pecho",
	MuscleBack:      "Espalda",
	MuscleLegs:      "Piernas",
	MuscleShoulders: "Hombros",
	MuscleArms:      "Brazos",
	MuscleCore:      "Core",
	MuscleFullBody:  "Cuerpo completo",
}

// Label returns the display name for the muscle group.
func (m MuscleGroup) Label() string {
	if l, ok := muscleGroupLabels[m]; ok {
		return l
	}
	return string(m)
}

// Valid reports whether m is a known muscle group.
func (m MuscleGroup) Valid() bool {
	_, ok := muscleGroupLabels[m]
	return ok
}

// Exercise is a catalog entry members log sets against.
type Exercise struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Category    ExerciseCategory `json:"categoria"`
	MuscleGroup MuscleGroup      `json:"grupoMuscular"`
}
