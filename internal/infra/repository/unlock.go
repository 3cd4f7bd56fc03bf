package repository

import (
	"context"
	"time"

	"realty-api/internal/domain/unlock"
	"realty-api/internal/infra"
	"realty-api/internal/infra/db"
	"realty-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// UnlockRepository owns all writes to the unlock ledger. Every status
// change guards on `status <> 'succeeded'` so that the redirect handler
// and the webhook handler can race without ever downgrading a paid
// unlock or stamping unlocked_at twice.
type UnlockRepository struct{}

func NewUnlockRepository() *UnlockRepository {
	return &UnlockRepository{}
}

func (r *UnlockRepository) Create(ctx context.Context, tx db.DBTX, rec *unlock.Record) (uuid.UUID, error) {
	const query = `
		INSERT INTO unlock_records
			(id, user_id, property_id, checkout_session_id, payment_intent_id, amount_cents, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		rec.ID(), rec.UserID(), rec.PropertyID(), rec.CheckoutSessionID(),
		pgconv.StringPtrToPgtype(rec.PaymentIntentID()),
		rec.AmountCents(), rec.Currency(), rec.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.ClassifyPgError("failed to create unlock record", err)
	}
	return id, nil
}

func (r *UnlockRepository) DeleteStalePending(ctx context.Context, tx db.DBTX, userID, propertyID uuid.UUID) (int64, error) {
	const query = `
		DELETE FROM unlock_records
		WHERE user_id = $1 AND property_id = $2 AND status <> 'succeeded'`

	tag, err := tx.Exec(ctx, query, userID, propertyID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete stale unlock record", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UnlockRepository) SucceedBySessionID(ctx context.Context, tx db.DBTX, sessionID string, paymentIntentID *string, now time.Time) (int64, error) {
	const query = `
		UPDATE unlock_records
		SET status = 'succeeded',
		    payment_intent_id = COALESCE($2, payment_intent_id),
		    unlocked_at = COALESCE(unlocked_at, $3),
		    updated_at = now()
		WHERE checkout_session_id = $1 AND status <> 'succeeded'`

	tag, err := tx.Exec(ctx, query, sessionID, pgconv.StringPtrToPgtype(paymentIntentID), now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to finalize unlock by session", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UnlockRepository) SucceedByIntentID(ctx context.Context, tx db.DBTX, intentID string, now time.Time) (int64, error) {
	const query = `
		UPDATE unlock_records
		SET status = 'succeeded',
		    unlocked_at = COALESCE(unlocked_at, $2),
		    updated_at = now()
		WHERE payment_intent_id = $1 AND status <> 'succeeded'`

	tag, err := tx.Exec(ctx, query, intentID, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to finalize unlock by payment intent", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UnlockRepository) FailByIntentID(ctx context.Context, tx db.DBTX, intentID string) (int64, error) {
	const query = `
		UPDATE unlock_records
		SET status = 'failed', updated_at = now()
		WHERE payment_intent_id = $1 AND status <> 'succeeded'`

	tag, err := tx.Exec(ctx, query, intentID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark unlock as failed", err)
	}
	return tag.RowsAffected(), nil
}
