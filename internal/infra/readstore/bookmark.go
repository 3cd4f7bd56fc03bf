package readstore

import (
	"context"

	"realty-api/internal/infra"
	"realty-api/internal/infra/db"
	"realty-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookmarkReadStore struct {
	db db.DBTX
}

func NewBookmarkReadStore(db db.DBTX) *BookmarkReadStore {
	return &BookmarkReadStore{db: db}
}

func (r *BookmarkReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookmarkView, error) {
	const query = `
		SELECT b.property_id, p.title, p.slug, p.price_cents, p.suburb, b.created_at
		FROM bookmarks b
		JOIN properties p ON p.id = b.property_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookmarks", err)
	}
	defer rows.Close()

	var views []*queries.BookmarkView
	for rows.Next() {
		var view queries.BookmarkView
		if err := rows.Scan(
			&view.PropertyID, &view.Title, &view.Slug,
			&view.PriceCents, &view.Suburb, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan bookmark row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookmark rows", err)
	}
	return views, nil
}
