package readstore

import (
	"context"

	"realty-api/internal/infra"
	"realty-api/internal/infra/db"
	"realty-api/internal/pkg/pgconv"
	"realty-api/internal/usecase/queries"
	"realty-api/internal/usecase/shared"
)

type SettingsReadStore struct {
	db db.DBTX
}

func NewSettingsReadStore(db db.DBTX) *SettingsReadStore {
	return &SettingsReadStore{db: db}
}

func (r *SettingsReadStore) Get(ctx context.Context) (*queries.SettingsView, error) {
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &queries.SettingsView{
		UnlockPriceCents: snap.UnlockPriceCents,
		Currency:         snap.Currency,
		UpdatedAt:        snap.UpdatedAt,
	}, nil
}

func (r *SettingsReadStore) Snapshot(ctx context.Context) (*shared.SettingsSnapshot, error) {
	const query = `SELECT unlock_price_cents, currency, updated_at FROM system_settings WHERE id = 1`

	var snap shared.SettingsSnapshot
	err := r.db.QueryRow(ctx, query).Scan(&snap.UnlockPriceCents, &snap.Currency, &snap.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("settings row missing", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load settings", err)
	}
	return &snap, nil
}
