package repository

import (
	"context"

	"realty-api/internal/domain/property"
	"realty-api/internal/infra"
	"realty-api/internal/infra/db"
	"realty-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type PropertyRepository struct{}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{}
}

func (r *PropertyRepository) Create(ctx context.Context, tx db.DBTX, p *property.Property) (uuid.UUID, error) {
	const query = `
		INSERT INTO properties
			(id, owner_id, title, slug, description, property_type, status, price_cents,
			 bedrooms, bathrooms, parking, land_size_sqm, street, suburb, state, postcode)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		p.ID(), p.OwnerID(), p.Title(), p.Slug(), p.Description(),
		p.PropertyType().String(), p.Status().String(), p.PriceCents(),
		p.Bedrooms(), p.Bathrooms(), p.Parking(), p.LandSizeSqm(),
		p.Street(), p.Suburb(), p.State(), p.Postcode(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.ClassifyPgError("failed to create property", err)
	}
	return id, nil
}

func (r *PropertyRepository) Update(ctx context.Context, tx db.DBTX, id uuid.UUID, params shared.UpdatePropertyParams) error {
	const query = `
		UPDATE properties
		SET title = $2, description = $3, property_type = $4, status = $5,
		    price_cents = $6, bedrooms = $7, bathrooms = $8, parking = $9,
		    land_size_sqm = $10, street = $11, suburb = $12, state = $13,
		    postcode = $14, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		id, params.Title, params.Description, params.PropertyType.String(),
		params.Status.String(), params.PriceCents, params.Bedrooms,
		params.Bathrooms, params.Parking, params.LandSizeSqm,
		params.Street, params.Suburb, params.State, params.Postcode,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update property", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	const query = `DELETE FROM properties WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete property", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PropertyRepository) IncrementViews(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	const query = `UPDATE properties SET views_count = views_count + 1 WHERE id = $1`

	if _, err := tx.Exec(ctx, query, id); err != nil {
		return infra.WrapRepoErr("failed to increment property views", err)
	}
	return nil
}

func (r *PropertyRepository) SetFeatured(ctx context.Context, tx db.DBTX, id uuid.UUID, featured bool) error {
	const query = `UPDATE properties SET is_featured = $2, updated_at = now() WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, featured)
	if err != nil {
		return infra.WrapRepoErr("failed to update featured flag", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PropertyRepository) ReplaceImages(ctx context.Context, tx db.DBTX, propertyID uuid.UUID, urls []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM property_images WHERE property_id = $1`, propertyID); err != nil {
		return infra.WrapRepoErr("failed to clear property images", err)
	}

	const insert = `
		INSERT INTO property_images (id, property_id, url, position)
		VALUES ($1, $2, $3, $4)`

	for i, url := range urls {
		if _, err := tx.Exec(ctx, insert, uuid.New(), propertyID, url, i); err != nil {
			return infra.ClassifyPgError("failed to insert property image", err)
		}
	}
	return nil
}

func (r *PropertyRepository) ReplaceFeatures(ctx context.Context, tx db.DBTX, propertyID uuid.UUID, names []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM property_features WHERE property_id = $1`, propertyID); err != nil {
		return infra.WrapRepoErr("failed to clear property features", err)
	}

	const insert = `
		INSERT INTO property_features (id, property_id, name)
		VALUES ($1, $2, $3)`

	for _, name := range names {
		if _, err := tx.Exec(ctx, insert, uuid.New(), propertyID, name); err != nil {
			return infra.ClassifyPgError("failed to insert property feature", err)
		}
	}
	return nil
}

func (r *PropertyRepository) UpsertReport(ctx context.Context, tx db.DBTX, propertyID uuid.UUID, reportType, documentURL string) error {
	const query = `
		INSERT INTO property_reports (id, property_id, report_type, document_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (property_id, report_type)
		DO UPDATE SET document_url = EXCLUDED.document_url, updated_at = now()`

	if _, err := tx.Exec(ctx, query, uuid.New(), propertyID, reportType, documentURL); err != nil {
		return infra.ClassifyPgError("failed to upsert property report", err)
	}
	return nil
}
