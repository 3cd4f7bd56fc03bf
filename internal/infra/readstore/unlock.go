package readstore

import (
	"context"

	"realty-api/internal/infra"
	"realty-api/internal/infra/db"
	"realty-api/internal/pkg/pgconv"
	"realty-api/internal/usecase/queries"
	"realty-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnlockReadStore struct {
	db db.DBTX
}

func NewUnlockReadStore(db db.DBTX) *UnlockReadStore {
	return &UnlockReadStore{db: db}
}

// HasAccess is the single source of truth for paid visibility: only a
// succeeded ledger record unlocks a listing.
func (r *UnlockReadStore) HasAccess(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM unlock_records
			WHERE user_id = $1 AND property_id = $2 AND status = 'succeeded'
		)`

	var unlocked bool
	if err := r.db.QueryRow(ctx, query, userID, propertyID).Scan(&unlocked); err != nil {
		return false, infra.WrapRepoErr("failed to check unlock access", err)
	}
	return unlocked, nil
}

func (r *UnlockReadStore) ListUnlockedByUser(ctx context.Context, userID uuid.UUID) ([]*queries.UnlockedPropertyView, error) {
	const query = `
		SELECT ur.property_id, p.title, p.slug, ur.amount_cents, ur.currency, ur.unlocked_at
		FROM unlock_records ur
		JOIN properties p ON p.id = ur.property_id
		WHERE ur.user_id = $1 AND ur.status = 'succeeded'
		ORDER BY ur.unlocked_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list unlocked properties", err)
	}
	defer rows.Close()

	var views []*queries.UnlockedPropertyView
	for rows.Next() {
		var view queries.UnlockedPropertyView
		if err := rows.Scan(
			&view.PropertyID, &view.Title, &view.Slug,
			&view.AmountCents, &view.Currency, &view.UnlockedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan unlocked property row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate unlocked property rows", err)
	}
	return views, nil
}

const unlockSnapshotColumns = `
	id, user_id, property_id, checkout_session_id, payment_intent_id,
	amount_cents, currency, status, unlocked_at`

func (r *UnlockReadStore) SnapshotByUserAndProperty(ctx context.Context, userID, propertyID uuid.UUID) (*shared.UnlockSnapshot, error) {
	query := `SELECT ` + unlockSnapshotColumns + ` FROM unlock_records WHERE user_id = $1 AND property_id = $2`
	return r.snapshot(ctx, query, userID, propertyID)
}

func (r *UnlockReadStore) SnapshotBySessionID(ctx context.Context, sessionID string) (*shared.UnlockSnapshot, error) {
	query := `SELECT ` + unlockSnapshotColumns + ` FROM unlock_records WHERE checkout_session_id = $1`
	return r.snapshot(ctx, query, sessionID)
}

func (r *UnlockReadStore) snapshot(ctx context.Context, query string, args ...any) (*shared.UnlockSnapshot, error) {
	var snap shared.UnlockSnapshot
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&snap.ID, &snap.UserID, &snap.PropertyID, &snap.CheckoutSessionID,
		&snap.PaymentIntentID, &snap.AmountCents, &snap.Currency,
		&snap.Status, &snap.UnlockedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("unlock record not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load unlock snapshot", err)
	}
	return &snap, nil
}
