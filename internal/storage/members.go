package storage

import (
	"context"
	"fmt"

	"github.com/claude/ironclub/internal/models"
	"github.com/google/uuid"
)

const memberColumns = `id, email, password_hash, name, role, plan_id, joined_at, active`

// InsertMember creates a member account.
func (db *DB) InsertMember(ctx context.Context, m models.Member) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO members (id, email, password_hash, name, role, plan_id, joined_at, active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		m.ID, m.Email, m.PasswordHash, m.Name, m.Role, m.PlanID, m.JoinedAt, m.Active)
	if err != nil {
		return fmt.Errorf("inserting member: %w", err)
	}
	return nil
}

// GetMember retrieves a member by id.
func (db *DB) GetMember(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
	return scanMember(row)
}

// GetMemberByEmail retrieves a member by email, used for login.
func (db *DB) GetMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE email = $1`, email)
	return scanMember(row)
}

// ListMembers returns all members, newest first. Admin only at the API
// layer.
func (db *DB) ListMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+memberColumns+` FROM members ORDER BY joined_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer rows.Close()

	var result []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Email, &m.PasswordHash, &m.Name, &m.Role,
			&m.PlanID, &m.JoinedAt, &m.Active); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// UpdateMember updates name, role, plan and active flag.
func (db *DB) UpdateMember(ctx context.Context, m models.Member) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE members SET name = $2, role = $3, plan_id = $4, active = $5 WHERE id = $1`,
		m.ID, m.Name, m.Role, m.PlanID, m.Active)
	if err != nil {
		return fmt.Errorf("updating member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMember removes a member account and, via cascades, their data.
func (db *DB) DeleteMember(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMember(row interface{ Scan(dest ...any) error }) (*models.Member, error) {
	var m models.Member
	err := row.Scan(&m.ID, &m.Email, &m.PasswordHash, &m.Name, &m.Role,
		&m.PlanID, &m.JoinedAt, &m.Active)
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}
