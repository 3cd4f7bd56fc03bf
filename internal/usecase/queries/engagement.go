package queries

import (
	"context"

	"github.com/google/uuid"

	"realty-api/internal/infra"
	"realty-api/internal/pkg/errs"
	"realty-api/internal/usecase/shared"
)

var ErrInspectionAccessDenied = errs.New("not allowed to view inspections for this listing")

// EngagementQueries covers the buyer-side lists around a listing:
// bookmarks and inspection bookings.
type EngagementQueries interface {
	ListBookmarks(ctx context.Context, userID uuid.UUID) ([]*BookmarkView, error)
	ListInspectionsForUser(ctx context.Context, userID uuid.UUID) ([]*InspectionView, error)
	// ListInspectionsForProperty is restricted to the listing owner and admins.
	ListInspectionsForProperty(ctx context.Context, viewer Viewer, slug string) ([]*InspectionView, error)
}

type BookmarkReadStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookmarkView, error)
}

type InspectionReadStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*InspectionView, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*InspectionView, error)
}

type PropertySnapshotReadStore interface {
	SnapshotBySlug(ctx context.Context, slug string) (*shared.PropertySnapshot, error)
}

type engagementQueriesImpl struct {
	bookmarks   BookmarkReadStore
	inspections InspectionReadStore
	properties  PropertySnapshotReadStore
}

func NewEngagementQueries(
	bookmarks BookmarkReadStore,
	inspections InspectionReadStore,
	properties PropertySnapshotReadStore,
) EngagementQueries {
	return &engagementQueriesImpl{
		bookmarks:   bookmarks,
		inspections: inspections,
		properties:  properties,
	}
}

func (q *engagementQueriesImpl) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]*BookmarkView, error) {
	return q.bookmarks.ListByUser(ctx, userID)
}

func (q *engagementQueriesImpl) ListInspectionsForUser(ctx context.Context, userID uuid.UUID) ([]*InspectionView, error) {
	return q.inspections.ListByUser(ctx, userID)
}

func (q *engagementQueriesImpl) ListInspectionsForProperty(ctx context.Context, viewer Viewer, slug string) ([]*InspectionView, error) {
	snap, err := q.properties.SnapshotBySlug(ctx, slug)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	if !viewer.IsAdmin && snap.OwnerID != viewer.UserID {
		return nil, ErrInspectionAccessDenied
	}
	return q.inspections.ListByProperty(ctx, snap.ID)
}
