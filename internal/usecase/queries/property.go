package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"realty-api/internal/infra"
	"realty-api/internal/pkg/config"
	"realty-api/internal/pkg/errs"
)

var ErrPropertyNotFound = errs.New("property not found")

type PropertyFilter struct {
	Suburb       string
	State        string
	PropertyType string
	MinPrice     *int64
	MaxPrice     *int64
	MinBedrooms  *int
	Limit        int
	AfterCursor  string
}

type PropertyPage struct {
	Items      []*PropertyListItem `json:"items"`
	NextCursor string              `json:"next_cursor,omitempty"`
}

type PropertyQueries interface {
	List(ctx context.Context, filter PropertyFilter) (*PropertyPage, error)
	ListFeatured(ctx context.Context, limit int) ([]*PropertyListItem, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*PropertyListItem, error)
	// GetBySlug returns the listing detail with paid-only fields stripped
	// unless the viewer has unlocked it, owns it, or is an admin.
	GetBySlug(ctx context.Context, slug string, viewer *Viewer) (*PropertyDetailView, error)
	// QRCode renders a PNG linking to the listing's public frontend page,
	// for print material and signboards.
	QRCode(ctx context.Context, slug string) ([]byte, error)
	UserStatistics(ctx context.Context, userID uuid.UUID) (*UserStatisticsView, error)
}

// Viewer identifies the authenticated caller, nil means anonymous.
type Viewer struct {
	UserID  uuid.UUID
	IsAdmin bool
}

type PropertyReadStore interface {
	List(ctx context.Context, filter PropertyFilter, afterCreatedAt *time.Time, afterID *uuid.UUID) ([]*PropertyListItem, error)
	ListFeatured(ctx context.Context, limit int32) ([]*PropertyListItem, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*PropertyListItem, error)
	FindDetailBySlug(ctx context.Context, slug string) (*PropertyDetailView, *OwnerContactView, []PropertyReportView, error)
	RecordView(ctx context.Context, propertyID uuid.UUID) error
	Statistics(ctx context.Context, userID uuid.UUID) (*UserStatisticsView, error)
}

type UnlockAccessReadStore interface {
	HasAccess(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
}

type propertyQueriesImpl struct {
	readStore PropertyReadStore
	unlocks   UnlockAccessReadStore
	settings  SettingsReadStore
	snapshots PropertySnapshotReadStore
	app       config.AppConfig
}

func NewPropertyQueries(
	readStore PropertyReadStore,
	unlocks UnlockAccessReadStore,
	settings SettingsReadStore,
	snapshots PropertySnapshotReadStore,
	app config.AppConfig,
) PropertyQueries {
	return &propertyQueriesImpl{
		readStore: readStore,
		unlocks:   unlocks,
		settings:  settings,
		snapshots: snapshots,
		app:       app,
	}
}

func (q *propertyQueriesImpl) List(ctx context.Context, filter PropertyFilter) (*PropertyPage, error) {
	filter.Limit = ValidateLimit(filter.Limit)

	var afterCreatedAt *time.Time
	var afterID *uuid.UUID
	if filter.AfterCursor != "" {
		t, id, err := DecodeAfterCursor(filter.AfterCursor)
		if err != nil {
			return nil, errs.Wrap(err, "invalid pagination cursor")
		}
		afterCreatedAt = &t
		afterID = &id
	}

	items, err := q.readStore.List(ctx, filter, afterCreatedAt, afterID)
	if err != nil {
		return nil, err
	}

	page := &PropertyPage{Items: items}
	if len(items) == filter.Limit {
		last := items[len(items)-1]
		page.NextCursor = EncodeAfterCursor(last.CreatedAt, last.ID)
	}
	return page, nil
}

func (q *propertyQueriesImpl) ListFeatured(ctx context.Context, limit int) ([]*PropertyListItem, error) {
	return q.readStore.ListFeatured(ctx, int32(ValidateLimit(limit)))
}

func (q *propertyQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*PropertyListItem, error) {
	return q.readStore.ListByOwner(ctx, ownerID)
}

func (q *propertyQueriesImpl) GetBySlug(ctx context.Context, slug string, viewer *Viewer) (*PropertyDetailView, error) {
	detail, contact, reports, err := q.readStore.FindDetailBySlug(ctx, slug)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	unlocked, err := q.resolveAccess(ctx, detail, viewer)
	if err != nil {
		return nil, err
	}

	detail.Unlocked = unlocked
	if unlocked {
		detail.OwnerContact = contact
		detail.Reports = reports
	} else {
		// Locked listings carry the price to unlock them instead.
		settings, err := q.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		detail.UnlockPriceCents = &settings.UnlockPriceCents
	}

	// Owners browsing their own listing do not inflate its view count.
	if viewer == nil || viewer.UserID != detail.OwnerID {
		if err := q.readStore.RecordView(ctx, detail.ID); err != nil {
			return nil, err
		}
	}

	return detail, nil
}

func (q *propertyQueriesImpl) resolveAccess(ctx context.Context, detail *PropertyDetailView, viewer *Viewer) (bool, error) {
	if viewer == nil {
		return false, nil
	}
	if viewer.IsAdmin || viewer.UserID == detail.OwnerID {
		return true, nil
	}
	return q.unlocks.HasAccess(ctx, viewer.UserID, detail.ID)
}

func (q *propertyQueriesImpl) QRCode(ctx context.Context, slug string) ([]byte, error) {
	snap, err := q.snapshots.SnapshotBySlug(ctx, slug)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	png, err := qrcode.Encode(q.app.FrontendURL+"/properties/"+snap.Slug, qrcode.Medium, 256)
	if err != nil {
		return nil, errs.Wrap(err, "failed to render qr code")
	}
	return png, nil
}

func (q *propertyQueriesImpl) UserStatistics(ctx context.Context, userID uuid.UUID) (*UserStatisticsView, error) {
	return q.readStore.Statistics(ctx, userID)
}
