package request

type UpdateUnlockPriceRequest struct {
	UnlockPriceCents int64  `json:"unlock_price_cents" binding:"required,gt=0"`
	Currency         string `json:"currency" binding:"required,len=3,lowercase"`
}

type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type SetFeaturedRequest struct {
	IsFeatured *bool `json:"is_featured" binding:"required"`
}
