package storage

import (
	"context"
	"fmt"

	"github.com/claude/ironclub/internal/models"
	"github.com/google/uuid"
)

const planColumns = `id, name, description, price_cents, currency, billing_interval, stripe_price_id, active`

// InsertPlan creates a membership plan.
func (db *DB) InsertPlan(ctx context.Context, p models.MembershipPlan) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO plans (id, name, description, price_cents, currency, billing_interval, stripe_price_id, active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.Name, p.Description, p.PriceCents, p.Currency, p.Interval, p.StripePriceID, p.Active)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan by id.
func (db *DB) GetPlan(ctx context.Context, id uuid.UUID) (*models.MembershipPlan, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+planColumns+` FROM plans WHERE id = $1`, id)
	var p models.MembershipPlan
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Currency,
		&p.Interval, &p.StripePriceID, &p.Active)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// ListPlans returns plans, optionally only active ones, cheapest first.
func (db *DB) ListPlans(ctx context.Context, activeOnly bool) ([]models.MembershipPlan, error) {
	query := `SELECT ` + planColumns + ` FROM plans`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY price_cents ASC`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var result []models.MembershipPlan
	for rows.Next() {
		var p models.MembershipPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Currency,
			&p.Interval, &p.StripePriceID, &p.Active); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// UpdatePlan updates a plan's mutable fields.
func (db *DB) UpdatePlan(ctx context.Context, p models.MembershipPlan) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE plans SET name = $2, description = $3, price_cents = $4, currency = $5,
		 billing_interval = $6, stripe_price_id = $7, active = $8
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.PriceCents, p.Currency, p.Interval, p.StripePriceID, p.Active)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePlan removes a plan. Members referencing it keep a dangling nil
// via ON DELETE SET NULL.
func (db *DB) DeletePlan(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
