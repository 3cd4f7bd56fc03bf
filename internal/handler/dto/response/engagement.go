package response

import (
	"time"

	"realty-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type Bookmark struct {
	PropertyID uuid.UUID `json:"propertyId"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	PriceCents int64     `json:"priceCents"`
	Suburb     string    `json:"suburb"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Inspection struct {
	ID            uuid.UUID `json:"id"`
	PropertyID    uuid.UUID `json:"propertyId"`
	PropertyTitle string    `json:"propertyTitle"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	Status        string    `json:"status"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromBookmarkViews(views []*queries.BookmarkView) []*Bookmark {
	out := make([]*Bookmark, 0, len(views))
	for _, v := range views {
		var item Bookmark
		_ = copier.Copy(&item, v)
		out = append(out, &item)
	}
	return out
}

func FromInspectionViews(views []*queries.InspectionView) []*Inspection {
	out := make([]*Inspection, 0, len(views))
	for _, v := range views {
		var item Inspection
		_ = copier.Copy(&item, v)
		out = append(out, &item)
	}
	return out
}
