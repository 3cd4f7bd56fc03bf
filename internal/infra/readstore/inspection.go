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

type InspectionReadStore struct {
	db db.DBTX
}

func NewInspectionReadStore(db db.DBTX) *InspectionReadStore {
	return &InspectionReadStore{db: db}
}

func (r *InspectionReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.InspectionView, error) {
	return r.list(ctx, "i.user_id = $1", userID)
}

func (r *InspectionReadStore) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*queries.InspectionView, error) {
	return r.list(ctx, "i.property_id = $1", propertyID)
}

func (r *InspectionReadStore) list(ctx context.Context, cond string, arg any) ([]*queries.InspectionView, error) {
	query := `
		SELECT i.id, i.property_id, p.title, i.scheduled_at, i.status, i.notes, i.created_at
		FROM inspections i
		JOIN properties p ON p.id = i.property_id
		WHERE ` + cond + `
		ORDER BY i.scheduled_at`

	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list inspections", err)
	}
	defer rows.Close()

	var views []*queries.InspectionView
	for rows.Next() {
		var view queries.InspectionView
		if err := rows.Scan(
			&view.ID, &view.PropertyID, &view.PropertyTitle,
			&view.ScheduledAt, &view.Status, &view.Notes, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan inspection row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate inspection rows", err)
	}
	return views, nil
}

func (r *InspectionReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.InspectionSnapshot, error) {
	const query = `SELECT id, property_id, user_id, status, scheduled_at FROM inspections WHERE id = $1`

	var snap shared.InspectionSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.PropertyID, &snap.UserID, &snap.Status, &snap.ScheduledAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("inspection not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load inspection snapshot", err)
	}
	return &snap, nil
}
