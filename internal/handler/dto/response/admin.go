package response

import (
	"time"

	"realty-api/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type SettingsResponse struct {
	UnlockPriceCents int64     `json:"unlockPriceCents"`
	Currency         string    `json:"currency"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func FromSettingsView(view *queries.SettingsView) *SettingsResponse {
	var out SettingsResponse
	_ = copier.Copy(&out, view)
	return &out
}
