package repository

import (
	"context"

	"realty-api/internal/infra"
	"realty-api/internal/infra/db"
)

// SettingsRepository writes the single platform settings row. The table
// is seeded with id = 1 and never grows.
type SettingsRepository struct{}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

func (r *SettingsRepository) UpdateUnlockPrice(ctx context.Context, tx db.DBTX, priceCents int64, currency string) error {
	const query = `
		UPDATE system_settings
		SET unlock_price_cents = $1, currency = $2, updated_at = now()
		WHERE id = 1`

	tag, err := tx.Exec(ctx, query, priceCents, currency)
	if err != nil {
		return infra.WrapRepoErr("failed to update unlock price", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("settings row missing", nil, infra.KindNotFound)
	}
	return nil
}
