package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side validation reads.

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}

type PropertySnapshot struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Slug       string
	Title      string
	Status     string
	PriceCents int64
}

type UnlockSnapshot struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	PropertyID        uuid.UUID
	CheckoutSessionID string
	PaymentIntentID   *string
	AmountCents       int64
	Currency          string
	Status            string
	UnlockedAt        *time.Time
}

type InspectionSnapshot struct {
	ID          uuid.UUID
	PropertyID  uuid.UUID
	UserID      uuid.UUID
	Status      string
	ScheduledAt time.Time
}

type SettingsSnapshot struct {
	UnlockPriceCents int64
	Currency         string
	UpdatedAt        time.Time
}
