package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type UserProfileView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Phone     *string    `json:"phone,omitempty"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

type PropertyListItem struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	PropertyType    string    `json:"property_type"`
	Status          string    `json:"status"`
	PriceCents      int64     `json:"price_cents"`
	Bedrooms        int       `json:"bedrooms"`
	Bathrooms       int       `json:"bathrooms"`
	Parking         int       `json:"parking"`
	Suburb          string    `json:"suburb"`
	State           string    `json:"state"`
	IsFeatured      bool      `json:"is_featured"`
	PrimaryImageURL *string   `json:"primary_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// OwnerContactView is only populated once the viewer has paid to
// unlock the listing, or is the owner or an admin.
type OwnerContactView struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
}

type PropertyReportView struct {
	ReportType  string    `json:"report_type"`
	DocumentURL string    `json:"document_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PropertyDetailView struct {
	ID           uuid.UUID            `json:"id"`
	OwnerID      uuid.UUID            `json:"owner_id"`
	Title        string               `json:"title"`
	Slug         string               `json:"slug"`
	Description  string               `json:"description"`
	PropertyType string               `json:"property_type"`
	Status       string               `json:"status"`
	PriceCents   int64                `json:"price_cents"`
	Bedrooms     int                  `json:"bedrooms"`
	Bathrooms    int                  `json:"bathrooms"`
	Parking      int                  `json:"parking"`
	LandSizeSqm  *float64             `json:"land_size_sqm,omitempty"`
	Street       string               `json:"street"`
	Suburb       string               `json:"suburb"`
	State        string               `json:"state"`
	Postcode     string               `json:"postcode"`
	IsFeatured   bool                 `json:"is_featured"`
	ViewsCount   int64                `json:"views_count"`
	Images       []string             `json:"images"`
	Features     []string             `json:"features"`
	Unlocked     bool                 `json:"unlocked"`
	// UnlockPriceCents is the price to unlock the paid-only fields, only
	// set while the listing is still locked for the viewer.
	UnlockPriceCents *int64               `json:"unlock_price_cents,omitempty"`
	OwnerContact     *OwnerContactView    `json:"owner_contact,omitempty"`
	Reports          []PropertyReportView `json:"reports,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

type UnlockedPropertyView struct {
	PropertyID  uuid.UUID `json:"property_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

type BookmarkView struct {
	PropertyID uuid.UUID `json:"property_id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	PriceCents int64     `json:"price_cents"`
	Suburb     string    `json:"suburb"`
	CreatedAt  time.Time `json:"created_at"`
}

type InspectionView struct {
	ID            uuid.UUID `json:"id"`
	PropertyID    uuid.UUID `json:"property_id"`
	PropertyTitle string    `json:"property_title"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Status        string    `json:"status"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type UserStatisticsView struct {
	PropertiesListed   int64 `json:"properties_listed"`
	TotalViews         int64 `json:"total_views"`
	Bookmarks          int64 `json:"bookmarks"`
	Inspections        int64 `json:"inspections"`
	UnlockedProperties int64 `json:"unlocked_properties"`
}

type SettingsView struct {
	UnlockPriceCents int64     `json:"unlock_price_cents"`
	Currency         string    `json:"currency"`
	UpdatedAt        time.Time `json:"updated_at"`
}
