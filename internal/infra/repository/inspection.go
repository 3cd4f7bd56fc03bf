package repository

import (
	"context"

	"realty-api/internal/domain/inspection"
	"realty-api/internal/infra"
	"realty-api/internal/infra/db"
	"realty-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type InspectionRepository struct{}

func NewInspectionRepository() *InspectionRepository {
	return &InspectionRepository{}
}

func (r *InspectionRepository) Create(ctx context.Context, tx db.DBTX, insp *inspection.Inspection) (uuid.UUID, error) {
	const query = `
		INSERT INTO inspections (id, property_id, user_id, scheduled_at, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		insp.ID(), insp.PropertyID(), insp.UserID(), insp.ScheduledAt(),
		pgconv.StringPtrToPgtype(insp.Notes()), insp.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.ClassifyPgError("failed to create inspection", err)
	}
	return id, nil
}

func (r *InspectionRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status inspection.Status) error {
	const query = `UPDATE inspections SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update inspection status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("inspection not found", nil, infra.KindNotFound)
	}
	return nil
}
