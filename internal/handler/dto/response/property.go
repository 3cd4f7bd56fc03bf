package response

import (
	"time"

	"realty-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PropertyListItem struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	PropertyType    string    `json:"propertyType"`
	Status          string    `json:"status"`
	PriceCents      int64     `json:"priceCents"`
	Bedrooms        int       `json:"bedrooms"`
	Bathrooms       int       `json:"bathrooms"`
	Parking         int       `json:"parking"`
	Suburb          string    `json:"suburb"`
	State           string    `json:"state"`
	IsFeatured      bool      `json:"isFeatured"`
	PrimaryImageURL *string   `json:"primaryImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type PropertyPageResponse struct {
	Items      []*PropertyListItem `json:"items"`
	NextCursor string              `json:"nextCursor,omitempty"`
}

type OwnerContact struct {
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
}

type PropertyReport struct {
	ReportType  string    `json:"reportType"`
	DocumentURL string    `json:"documentUrl"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PropertyDetailResponse struct {
	ID               uuid.UUID        `json:"id"`
	OwnerID          uuid.UUID        `json:"ownerId"`
	Title            string           `json:"title"`
	Slug             string           `json:"slug"`
	Description      string           `json:"description"`
	PropertyType     string           `json:"propertyType"`
	Status           string           `json:"status"`
	PriceCents       int64            `json:"priceCents"`
	Bedrooms         int              `json:"bedrooms"`
	Bathrooms        int              `json:"bathrooms"`
	Parking          int              `json:"parking"`
	LandSizeSqm      *float64         `json:"landSizeSqm,omitempty"`
	Street           string           `json:"street"`
	Suburb           string           `json:"suburb"`
	State            string           `json:"state"`
	Postcode         string           `json:"postcode"`
	IsFeatured       bool             `json:"isFeatured"`
	ViewsCount       int64            `json:"viewsCount"`
	Images           []string         `json:"images"`
	Features         []string         `json:"features"`
	Unlocked         bool             `json:"unlocked"`
	UnlockPriceCents *int64           `json:"unlockPriceCents,omitempty"`
	OwnerContact     *OwnerContact    `json:"ownerContact,omitempty"`
	Reports          []PropertyReport `json:"reports,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type StatisticsResponse struct {
	PropertiesListed   int64 `json:"propertiesListed"`
	TotalViews         int64 `json:"totalViews"`
	Bookmarks          int64 `json:"bookmarks"`
	Inspections        int64 `json:"inspections"`
	UnlockedProperties int64 `json:"unlockedProperties"`
}

func FromPropertyListItem(view *queries.PropertyListItem) *PropertyListItem {
	var out PropertyListItem
	_ = copier.Copy(&out, view)
	return &out
}

func FromPropertyPage(page *queries.PropertyPage) *PropertyPageResponse {
	items := make([]*PropertyListItem, 0, len(page.Items))
	for _, v := range page.Items {
		items = append(items, FromPropertyListItem(v))
	}
	return &PropertyPageResponse{Items: items, NextCursor: page.NextCursor}
}

func FromPropertyListItems(views []*queries.PropertyListItem) []*PropertyListItem {
	out := make([]*PropertyListItem, 0, len(views))
	for _, v := range views {
		out = append(out, FromPropertyListItem(v))
	}
	return out
}

func FromPropertyDetailView(view *queries.PropertyDetailView) *PropertyDetailResponse {
	var out PropertyDetailResponse
	_ = copier.Copy(&out, view)
	return &out
}

func FromUserStatisticsView(view *queries.UserStatisticsView) *StatisticsResponse {
	var out StatisticsResponse
	_ = copier.Copy(&out, view)
	return &out
}
