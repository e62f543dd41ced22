package models

import "testing"

func TestGoalTypeLabels(t *testing.T) {
	tests := []struct {
		goalType GoalType
		want     string
	}{
		{GoalLoseWeight, "Perder peso"},
		{GoalGainMuscle, "Ganar músculo"},
		{GoalReduceBodyFat, "Reducir grasa corporal"},
		{GoalOther, "Otro"},
		{GoalType("run-marathon"), "run-marathon"},
	}

	for _, tt := range tests {
		if got := tt.goalType.Label(); got != tt.want {
			t.Errorf("Label(%s) = %q, want %q", tt.goalType, got, tt.want)
		}
	}
}

func TestGoalTypeValid(t *testing.T) {
	if !GoalIncreaseStrength.Valid() {
		t.Error("increase-strength should be valid")
	}
	if GoalType("").Valid() {
		t.Error("empty goal type should be invalid")
	}
	if GoalType("run-marathon").Valid() {
		t.Error("unknown goal type should be invalid")
	}
}

func TestGoalStatusTerminal(t *testing.T) {
	tests := []struct {
		status GoalStatus
		want   bool
	}{
		{GoalActive, false},
		{GoalPaused, false},
		{GoalCompleted, true},
		{GoalAbandoned, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("Terminal(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleTrainer, RoleMember} {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if Role("owner").Valid() {
		t.Error("unknown role should be invalid")
	}
}

func TestExerciseEnums(t *testing.T) {
	if !CategoryStrength.Valid() || !MuscleChest.Valid() {
		t.Error("known enum values reported invalid")
	}
	if ExerciseCategory("yoga").Valid() || MuscleGroup("neck").Valid() {
		t.Error("unknown enum values reported valid")
	}
	if got := MuscleFullBody.Label(); got != "Cuerpo completo" {
		t.Errorf("MuscleFullBody.Label() = %q", got)
	}
	if got := CategoryStrength.Label(); got != "Fuerza" {
		t.Errorf("CategoryStrength.Label() = %q", got)
	}
}
