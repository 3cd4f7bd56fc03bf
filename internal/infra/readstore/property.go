package readstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"realty-api/internal/infra"
	"realty-api/internal/infra/db"
	"realty-api/internal/pkg/pgconv"
	"realty-api/internal/usecase/queries"
	"realty-api/internal/usecase/shared"

	"github.com/google/uuid"
)

const propertyListColumns = `
	p.id, p.title, p.slug, p.property_type, p.status, p.price_cents,
	p.bedrooms, p.bathrooms, p.parking, p.suburb, p.state, p.is_featured,
	(SELECT i.url FROM property_images i
	 WHERE i.property_id = p.id ORDER BY i.position LIMIT 1),
	p.created_at`

type PropertyReadStore struct {
	db db.DBTX
}

func NewPropertyReadStore(db db.DBTX) *PropertyReadStore {
	return &PropertyReadStore{db: db}
}

func (r *PropertyReadStore) List(ctx context.Context, filter queries.PropertyFilter, afterCreatedAt *time.Time, afterID *uuid.UUID) ([]*queries.PropertyListItem, error) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	conds = append(conds, "p.status <> "+arg("off_market"))
	if filter.Suburb != "" {
		conds = append(conds, "p.suburb ILIKE "+arg(filter.Suburb))
	}
	if filter.State != "" {
		conds = append(conds, "p.state = "+arg(strings.ToUpper(filter.State)))
	}
	if filter.PropertyType != "" {
		conds = append(conds, "p.property_type = "+arg(filter.PropertyType))
	}
	if filter.MinPrice != nil {
		conds = append(conds, "p.price_cents >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "p.price_cents <= "+arg(*filter.MaxPrice))
	}
	if filter.MinBedrooms != nil {
		conds = append(conds, "p.bedrooms >= "+arg(*filter.MinBedrooms))
	}
	if afterCreatedAt != nil && afterID != nil {
		conds = append(conds, fmt.Sprintf("(p.created_at, p.id) < (%s, %s)", arg(*afterCreatedAt), arg(*afterID)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM properties p
		WHERE %s
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT %s`,
		propertyListColumns, strings.Join(conds, " AND "), arg(filter.Limit))

	return r.queryListItems(ctx, query, args...)
}

func (r *PropertyReadStore) ListFeatured(ctx context.Context, limit int32) ([]*queries.PropertyListItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties p
		WHERE p.is_featured AND p.status <> 'off_market'
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1`, propertyListColumns)

	return r.queryListItems(ctx, query, limit)
}

func (r *PropertyReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.PropertyListItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties p
		WHERE p.owner_id = $1
		ORDER BY p.created_at DESC, p.id DESC`, propertyListColumns)

	return r.queryListItems(ctx, query, ownerID)
}

func (r *PropertyReadStore) queryListItems(ctx context.Context, query string, args ...any) ([]*queries.PropertyListItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list properties", err)
	}
	defer rows.Close()

	var items []*queries.PropertyListItem
	for rows.Next() {
		var item queries.PropertyListItem
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Slug, &item.PropertyType, &item.Status,
			&item.PriceCents, &item.Bedrooms, &item.Bathrooms, &item.Parking,
			&item.Suburb, &item.State, &item.IsFeatured, &item.PrimaryImageURL,
			&item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan property row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate property rows", err)
	}
	return items, nil
}

func (r *PropertyReadStore) FindDetailBySlug(ctx context.Context, slug string) (*queries.PropertyDetailView, *queries.OwnerContactView, []queries.PropertyReportView, error) {
	const query = `
		SELECT p.id, p.owner_id, p.title, p.slug, p.description, p.property_type,
		       p.status, p.price_cents, p.bedrooms, p.bathrooms, p.parking,
		       p.land_size_sqm, p.street, p.suburb, p.state, p.postcode,
		       p.is_featured, p.views_count, p.created_at, p.updated_at,
		       u.full_name, u.email, u.phone
		FROM properties p
		JOIN users u ON u.id = p.owner_id
		WHERE p.slug = $1`

	var detail queries.PropertyDetailView
	var contact queries.OwnerContactView
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&detail.ID, &detail.OwnerID, &detail.Title, &detail.Slug, &detail.Description,
		&detail.PropertyType, &detail.Status, &detail.PriceCents, &detail.Bedrooms,
		&detail.Bathrooms, &detail.Parking, &detail.LandSizeSqm, &detail.Street,
		&detail.Suburb, &detail.State, &detail.Postcode, &detail.IsFeatured,
		&detail.ViewsCount, &detail.CreatedAt, &detail.UpdatedAt,
		&contact.FullName, &contact.Email, &contact.Phone,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil, nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, nil, nil, infra.WrapRepoErr("failed to find property by slug", err)
	}

	if detail.Images, err = r.imageURLs(ctx, detail.ID); err != nil {
		return nil, nil, nil, err
	}
	if detail.Features, err = r.featureNames(ctx, detail.ID); err != nil {
		return nil, nil, nil, err
	}
	reports, err := r.reports(ctx, detail.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	return &detail, &contact, reports, nil
}

func (r *PropertyReadStore) imageURLs(ctx context.Context, propertyID uuid.UUID) ([]string, error) {
	const query = `SELECT url FROM property_images WHERE property_id = $1 ORDER BY position`
	return r.queryStrings(ctx, query, propertyID, "failed to load property images")
}

func (r *PropertyReadStore) featureNames(ctx context.Context, propertyID uuid.UUID) ([]string, error) {
	const query = `SELECT name FROM property_features WHERE property_id = $1 ORDER BY name`
	return r.queryStrings(ctx, query, propertyID, "failed to load property features")
}

func (r *PropertyReadStore) queryStrings(ctx context.Context, query string, propertyID uuid.UUID, errMsg string) ([]string, error) {
	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, infra.WrapRepoErr(errMsg, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}
	return values, nil
}

func (r *PropertyReadStore) reports(ctx context.Context, propertyID uuid.UUID) ([]queries.PropertyReportView, error) {
	const query = `
		SELECT report_type, document_url, updated_at
		FROM property_reports
		WHERE property_id = $1
		ORDER BY report_type`

	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load property reports", err)
	}
	defer rows.Close()

	var reports []queries.PropertyReportView
	for rows.Next() {
		var rep queries.PropertyReportView
		if err := rows.Scan(&rep.ReportType, &rep.DocumentURL, &rep.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan property report", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate property reports", err)
	}
	return reports, nil
}

func (r *PropertyReadStore) RecordView(ctx context.Context, propertyID uuid.UUID) error {
	const query = `UPDATE properties SET views_count = views_count + 1 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, propertyID); err != nil {
		return infra.WrapRepoErr("failed to record property view", err)
	}
	return nil
}

func (r *PropertyReadStore) Statistics(ctx context.Context, userID uuid.UUID) (*queries.UserStatisticsView, error) {
	const query = `
		SELECT
			(SELECT count(*) FROM properties WHERE owner_id = $1),
			(SELECT coalesce(sum(views_count), 0) FROM properties WHERE owner_id = $1),
			(SELECT count(*) FROM bookmarks WHERE user_id = $1),
			(SELECT count(*) FROM inspections WHERE user_id = $1),
			(SELECT count(*) FROM unlock_records WHERE user_id = $1 AND status = 'succeeded')`

	var stats queries.UserStatisticsView
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&stats.PropertiesListed, &stats.TotalViews, &stats.Bookmarks,
		&stats.Inspections, &stats.UnlockedProperties,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load user statistics", err)
	}
	return &stats, nil
}

func (r *PropertyReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.PropertySnapshot, error) {
	const query = `SELECT id, owner_id, slug, title, status, price_cents FROM properties WHERE id = $1`
	return r.snapshot(ctx, query, id)
}

func (r *PropertyReadStore) SnapshotBySlug(ctx context.Context, slug string) (*shared.PropertySnapshot, error) {
	const query = `SELECT id, owner_id, slug, title, status, price_cents FROM properties WHERE slug = $1`
	return r.snapshot(ctx, query, slug)
}

func (r *PropertyReadStore) snapshot(ctx context.Context, query string, arg any) (*shared.PropertySnapshot, error) {
	var snap shared.PropertySnapshot
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&snap.ID, &snap.OwnerID, &snap.Slug, &snap.Title, &snap.Status, &snap.PriceCents,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load property snapshot", err)
	}
	return &snap, nil
}
