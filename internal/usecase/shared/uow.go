package shared

import (
	"context"
	"time"

	"realty-api/internal/domain/inspection"
	"realty-api/internal/domain/property"
	"realty-api/internal/domain/unlock"
	"realty-api/internal/domain/user"
	"realty-api/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Users() UserRepository
	Properties() PropertyRepository
	Bookmarks() BookmarkRepository
	Inspections() InspectionRepository
	Unlocks() UnlockRepository
	Settings() SettingsRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	PropertyByID(ctx context.Context, id uuid.UUID) (*PropertySnapshot, error)
	PropertyBySlug(ctx context.Context, slug string) (*PropertySnapshot, error)
	UnlockByUserAndProperty(ctx context.Context, userID, propertyID uuid.UUID) (*UnlockSnapshot, error)
	UnlockBySessionID(ctx context.Context, sessionID string) (*UnlockSnapshot, error)
	InspectionByID(ctx context.Context, id uuid.UUID) (*InspectionSnapshot, error)
	Settings(ctx context.Context) (*SettingsSnapshot, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
	UpdatePassword(ctx context.Context, tx db.DBTX, userID uuid.UUID, passwordHash string) error
	UpdateProfile(ctx context.Context, tx db.DBTX, userID uuid.UUID, fullName string, phone *string) error
	SetActive(ctx context.Context, tx db.DBTX, userID uuid.UUID, active bool) error
}

type UpdatePropertyParams struct {
	Title        string
	Description  string
	PropertyType property.Type
	Status       property.Status
	PriceCents   int64
	Bedrooms     int
	Bathrooms    int
	Parking      int
	LandSizeSqm  *float64
	Street       string
	Suburb       string
	State        string
	Postcode     string
}

type PropertyRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *property.Property) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, id uuid.UUID, params UpdatePropertyParams) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	IncrementViews(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	SetFeatured(ctx context.Context, tx db.DBTX, id uuid.UUID, featured bool) error
	ReplaceImages(ctx context.Context, tx db.DBTX, propertyID uuid.UUID, urls []string) error
	ReplaceFeatures(ctx context.Context, tx db.DBTX, propertyID uuid.UUID, names []string) error
	UpsertReport(ctx context.Context, tx db.DBTX, propertyID uuid.UUID, reportType, documentURL string) error
}

type BookmarkRepository interface {
	Add(ctx context.Context, tx db.DBTX, userID, propertyID uuid.UUID) error
	Remove(ctx context.Context, tx db.DBTX, userID, propertyID uuid.UUID) error
}

type InspectionRepository interface {
	Create(ctx context.Context, tx db.DBTX, insp *inspection.Inspection) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status inspection.Status) error
}

type UnlockRepository interface {
	Create(ctx context.Context, tx db.DBTX, rec *unlock.Record) (uuid.UUID, error)
	// DeleteStalePending removes a non-succeeded record for the pair so a
	// retry can start a fresh checkout session.
	DeleteStalePending(ctx context.Context, tx db.DBTX, userID, propertyID uuid.UUID) (int64, error)
	// SucceedBySessionID finalizes the record matched by checkout session.
	// The guard `status <> 'succeeded'` makes redirect and webhook racing
	// each other converge on a single unlock.
	SucceedBySessionID(ctx context.Context, tx db.DBTX, sessionID string, paymentIntentID *string, now time.Time) (int64, error)
	SucceedByIntentID(ctx context.Context, tx db.DBTX, intentID string, now time.Time) (int64, error)
	FailByIntentID(ctx context.Context, tx db.DBTX, intentID string) (int64, error)
}

type SettingsRepository interface {
	UpdateUnlockPrice(ctx context.Context, tx db.DBTX, priceCents int64, currency string) error
}
