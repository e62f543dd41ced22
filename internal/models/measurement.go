package models

import (
	"time"

	"github.com/google/uuid"
)

// BodyMeasurement is one body-composition snapshot. Any field may be
// absent; goal recalculation only uses the fields it needs.
type BodyMeasurement struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	TakenAt       time.Time `json:"takenAt"`
	WeightKg      *float64  `json:"weight,omitempty"`
	BodyFatPct    *float64  `json:"bodyFatPercentage,omitempty"`
	MuscleMassPct *float64  `json:"muscleMassPercentage,omitempty"`
}
