//go:build unit

package queries_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"realty-api/internal/infra"
	"realty-api/internal/pkg/config"
	"realty-api/internal/pkg/errs"
	"realty-api/internal/usecase/queries"
	"realty-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakePropertyReadStore struct {
	mock.Mock
}

func (f *fakePropertyReadStore) List(ctx context.Context, filter queries.PropertyFilter, afterCreatedAt *time.Time, afterID *uuid.UUID) ([]*queries.PropertyListItem, error) {
	args := f.Called(ctx, filter, afterCreatedAt, afterID)
	return args.Get(0).([]*queries.PropertyListItem), args.Error(1)
}

func (f *fakePropertyReadStore) ListFeatured(ctx context.Context, limit int32) ([]*queries.PropertyListItem, error) {
	args := f.Called(ctx, limit)
	return args.Get(0).([]*queries.PropertyListItem), args.Error(1)
}

func (f *fakePropertyReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.PropertyListItem, error) {
	args := f.Called(ctx, ownerID)
	return args.Get(0).([]*queries.PropertyListItem), args.Error(1)
}

func (f *fakePropertyReadStore) FindDetailBySlug(ctx context.Context, slug string) (*queries.PropertyDetailView, *queries.OwnerContactView, []queries.PropertyReportView, error) {
	args := f.Called(ctx, slug)
	var detail *queries.PropertyDetailView
	if v := args.Get(0); v != nil {
		detail = v.(*queries.PropertyDetailView)
	}
	var contact *queries.OwnerContactView
	if v := args.Get(1); v != nil {
		contact = v.(*queries.OwnerContactView)
	}
	var reports []queries.PropertyReportView
	if v := args.Get(2); v != nil {
		reports = v.([]queries.PropertyReportView)
	}
	return detail, contact, reports, args.Error(3)
}

func (f *fakePropertyReadStore) RecordView(ctx context.Context, propertyID uuid.UUID) error {
	args := f.Called(ctx, propertyID)
	return args.Error(0)
}

func (f *fakePropertyReadStore) Statistics(ctx context.Context, userID uuid.UUID) (*queries.UserStatisticsView, error) {
	args := f.Called(ctx, userID)
	return args.Get(0).(*queries.UserStatisticsView), args.Error(1)
}

type fakeUnlockAccess struct {
	mock.Mock
}

func (f *fakeUnlockAccess) HasAccess(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	args := f.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}

type fakeSettingsRead struct {
	mock.Mock
}

func (f *fakeSettingsRead) Get(ctx context.Context) (*queries.SettingsView, error) {
	args := f.Called(ctx)
	return args.Get(0).(*queries.SettingsView), args.Error(1)
}

type fakeSnapshotStore struct {
	mock.Mock
}

func (f *fakeSnapshotStore) SnapshotBySlug(ctx context.Context, slug string) (*shared.PropertySnapshot, error) {
	args := f.Called(ctx, slug)
	var snap *shared.PropertySnapshot
	if v := args.Get(0); v != nil {
		snap = v.(*shared.PropertySnapshot)
	}
	return snap, args.Error(1)
}

type propertyQueryFixture struct {
	store     *fakePropertyReadStore
	unlocks   *fakeUnlockAccess
	settings  *fakeSettingsRead
	snapshots *fakeSnapshotStore
	queries   queries.PropertyQueries
}

func newPropertyQueryFixture() *propertyQueryFixture {
	f := &propertyQueryFixture{
		store:     &fakePropertyReadStore{},
		unlocks:   &fakeUnlockAccess{},
		settings:  &fakeSettingsRead{},
		snapshots: &fakeSnapshotStore{},
	}
	f.queries = queries.NewPropertyQueries(f.store, f.unlocks, f.settings, f.snapshots,
		config.AppConfig{BaseURL: "http://localhost:8080", FrontendURL: "http://localhost:3000"})
	return f
}

func TestGetBySlug(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	propertyID := uuid.New()

	detail := func() *queries.PropertyDetailView {
		return &queries.PropertyDetailView{ID: propertyID, OwnerID: ownerID, Slug: "sunny-cottage"}
	}
	contact := &queries.OwnerContactView{FullName: "Owner", Email: "owner@example.com"}

	t.Run("locked viewer gets the unlock price and no contact", func(t *testing.T) {
		f := newPropertyQueryFixture()

		viewerID := uuid.New()
		f.store.On("FindDetailBySlug", ctx, "sunny-cottage").Return(detail(), contact, nil, nil)
		f.store.On("RecordView", ctx, propertyID).Return(nil)
		f.unlocks.On("HasAccess", ctx, viewerID, propertyID).Return(false, nil)
		f.settings.On("Get", ctx).Return(&queries.SettingsView{UnlockPriceCents: 999, Currency: "aud"}, nil)

		view, err := f.queries.GetBySlug(ctx, "sunny-cottage", &queries.Viewer{UserID: viewerID})

		require.NoError(t, err)
		assert.False(t, view.Unlocked)
		assert.Nil(t, view.OwnerContact)
		require.NotNil(t, view.UnlockPriceCents)
		assert.EqualValues(t, 999, *view.UnlockPriceCents)
	})

	t.Run("anonymous viewer gets the unlock price", func(t *testing.T) {
		f := newPropertyQueryFixture()

		f.store.On("FindDetailBySlug", ctx, "sunny-cottage").Return(detail(), contact, nil, nil)
		f.store.On("RecordView", ctx, propertyID).Return(nil)
		f.settings.On("Get", ctx).Return(&queries.SettingsView{UnlockPriceCents: 999, Currency: "aud"}, nil)

		view, err := f.queries.GetBySlug(ctx, "sunny-cottage", nil)

		require.NoError(t, err)
		require.NotNil(t, view.UnlockPriceCents)
		assert.EqualValues(t, 999, *view.UnlockPriceCents)
		f.unlocks.AssertNotCalled(t, "HasAccess", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unlocked viewer gets the contact, not the price", func(t *testing.T) {
		f := newPropertyQueryFixture()

		viewerID := uuid.New()
		f.store.On("FindDetailBySlug", ctx, "sunny-cottage").Return(detail(), contact, nil, nil)
		f.store.On("RecordView", ctx, propertyID).Return(nil)
		f.unlocks.On("HasAccess", ctx, viewerID, propertyID).Return(true, nil)

		view, err := f.queries.GetBySlug(ctx, "sunny-cottage", &queries.Viewer{UserID: viewerID})

		require.NoError(t, err)
		assert.True(t, view.Unlocked)
		assert.Equal(t, contact, view.OwnerContact)
		assert.Nil(t, view.UnlockPriceCents)
		f.settings.AssertNotCalled(t, "Get", mock.Anything)
	})

	t.Run("owner browsing their own listing skips the view counter", func(t *testing.T) {
		f := newPropertyQueryFixture()

		f.store.On("FindDetailBySlug", ctx, "sunny-cottage").Return(detail(), contact, nil, nil)

		view, err := f.queries.GetBySlug(ctx, "sunny-cottage", &queries.Viewer{UserID: ownerID})

		require.NoError(t, err)
		assert.True(t, view.Unlocked)
		assert.Nil(t, view.UnlockPriceCents)
		f.store.AssertNotCalled(t, "RecordView", mock.Anything, mock.Anything)
	})
}

func TestQRCode(t *testing.T) {
	ctx := context.Background()

	t.Run("renders a PNG for an existing listing", func(t *testing.T) {
		f := newPropertyQueryFixture()
		f.snapshots.On("SnapshotBySlug", ctx, "sunny-cottage").
			Return(&shared.PropertySnapshot{ID: uuid.New(), Slug: "sunny-cottage"}, nil)

		png, err := f.queries.QRCode(ctx, "sunny-cottage")

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
	})

	t.Run("unknown slug", func(t *testing.T) {
		f := newPropertyQueryFixture()
		f.snapshots.On("SnapshotBySlug", ctx, "gone").Return(nil, notFoundErr())

		_, err := f.queries.QRCode(ctx, "gone")

		assert.ErrorIs(t, err, queries.ErrPropertyNotFound)
	})
}

func notFoundErr() error {
	return infra.WrapRepoErr("no rows", errs.New("no rows in result set"), infra.KindNotFound)
}
