package response

import (
	"time"

	"realty-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CheckoutSessionResponse struct {
	SessionID   string `json:"sessionId"`
	CheckoutURL string `json:"checkoutUrl"`
}

type UnlockedProperty struct {
	PropertyID  uuid.UUID `json:"propertyId"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	AmountCents int64     `json:"amountCents"`
	Currency    string    `json:"currency"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

func FromUnlockedPropertyViews(views []*queries.UnlockedPropertyView) []*UnlockedProperty {
	out := make([]*UnlockedProperty, 0, len(views))
	for _, v := range views {
		var item UnlockedProperty
		_ = copier.Copy(&item, v)
		out = append(out, &item)
	}
	return out
}
