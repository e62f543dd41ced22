package storage

import (
	"context"
	"fmt"

	"github.com/claude/ironclub/internal/models"
	"github.com/google/uuid"
)

// InsertPayment records a payment, typically from a gateway webhook.
// Re-delivered webhooks are deduplicated on the provider session id.
func (db *DB) InsertPayment(ctx context.Context, p models.Payment) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO payments (id, member_id, plan_id, amount_cents, currency, provider,
		 provider_session_id, status, metadata, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT (provider, provider_session_id) DO NOTHING`,
		p.ID, p.MemberID, p.PlanID, p.AmountCents, p.Currency, p.Provider,
		p.ProviderSessionID, p.Status, p.Metadata, p.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("inserting payment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListPayments returns a member's payments, newest first.
func (db *DB) ListPayments(ctx context.Context, memberID uuid.UUID) ([]models.Payment, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, member_id, plan_id, amount_cents, currency, provider,
		 provider_session_id, status, metadata, created_at
		 FROM payments
		 WHERE member_id = $1
		 ORDER BY created_at DESC`,
		memberID)
	if err != nil {
		return nil, fmt.Errorf("querying payments: %w", err)
	}
	defer rows.Close()

	var result []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.MemberID, &p.PlanID, &p.AmountCents, &p.Currency,
			&p.Provider, &p.ProviderSessionID, &p.Status, &p.Metadata, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// UpdatePaymentStatus moves a payment to a new status (e.g. refunded).
func (db *DB) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE payments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
