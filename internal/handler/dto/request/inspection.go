package request

import "time"

type CreateInspectionRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       *string   `json:"notes,omitempty"`
}

type UpdateInspectionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed cancelled"`
}
