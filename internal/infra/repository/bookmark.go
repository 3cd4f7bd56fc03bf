package repository

import (
	"context"

	"realty-api/internal/infra"
	"realty-api/internal/infra/db"

	"github.com/google/uuid"
)

type BookmarkRepository struct{}

func NewBookmarkRepository() *BookmarkRepository {
	return &BookmarkRepository{}
}

func (r *BookmarkRepository) Add(ctx context.Context, tx db.DBTX, userID, propertyID uuid.UUID) error {
	const query = `
		INSERT INTO bookmarks (id, user_id, property_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, property_id) DO NOTHING`

	if _, err := tx.Exec(ctx, query, uuid.New(), userID, propertyID); err != nil {
		return infra.ClassifyPgError("failed to add bookmark", err)
	}
	return nil
}

func (r *BookmarkRepository) Remove(ctx context.Context, tx db.DBTX, userID, propertyID uuid.UUID) error {
	const query = `DELETE FROM bookmarks WHERE user_id = $1 AND property_id = $2`

	tag, err := tx.Exec(ctx, query, userID, propertyID)
	if err != nil {
		return infra.WrapRepoErr("failed to remove bookmark", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("bookmark not found", nil, infra.KindNotFound)
	}
	return nil
}
