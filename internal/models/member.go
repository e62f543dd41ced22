package models

import (
	"time"

	"github.com/google/uuid"
)

// Role controls what a member may do through the API.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleMember  Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleMember:
		return true
	}
	return false
}

// Member is a club account: the person behind logins, bookings, payments
// and workout logs. PasswordHash never leaves the server.
type Member struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash []byte     `json:"-"`
	Name         string     `json:"name"`
	Role         Role       `json:"role"`
	PlanID       *uuid.UUID `json:"planId,omitempty"`
	JoinedAt     time.Time  `json:"joinedAt"`
	Active       bool       `json:"active"`
}
