package unlock

import (
	"time"

	"github.com/google/uuid"
)

// Record is one row of the unlock ledger: a buyer paying once to see
// the full details of a single listing. The pair (userID, propertyID)
// is unique, so a buyer holds at most one record per listing.
type Record struct {
	id                uuid.UUID
	userID            uuid.UUID
	propertyID        uuid.UUID
	checkoutSessionID string
	paymentIntentID   *string
	amountCents       int64
	currency          string
	status            Status
	unlockedAt        *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

func NewPendingRecord(userID, propertyID uuid.UUID, checkoutSessionID string, amountCents int64, currency string) *Record {
	return &Record{
		id:                uuid.New(),
		userID:            userID,
		propertyID:        propertyID,
		checkoutSessionID: checkoutSessionID,
		amountCents:       amountCents,
		currency:          currency,
		status:            StatusPending,
	}
}

type ReconstructParams struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	PropertyID        uuid.UUID
	CheckoutSessionID string
	PaymentIntentID   *string
	AmountCents       int64
	Currency          string
	Status            Status
	UnlockedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func Reconstruct(p ReconstructParams) *Record {
	return &Record{
		id:                p.ID,
		userID:            p.UserID,
		propertyID:        p.PropertyID,
		checkoutSessionID: p.CheckoutSessionID,
		paymentIntentID:   p.PaymentIntentID,
		amountCents:       p.AmountCents,
		currency:          p.Currency,
		status:            p.Status,
		unlockedAt:        p.UnlockedAt,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
	}
}

func (r *Record) ID() uuid.UUID             { return r.id }
func (r *Record) UserID() uuid.UUID         { return r.userID }
func (r *Record) PropertyID() uuid.UUID     { return r.propertyID }
func (r *Record) CheckoutSessionID() string { return r.checkoutSessionID }
func (r *Record) PaymentIntentID() *string  { return r.paymentIntentID }
func (r *Record) AmountCents() int64        { return r.amountCents }
func (r *Record) Currency() string          { return r.currency }
func (r *Record) Status() Status            { return r.status }
func (r *Record) UnlockedAt() *time.Time    { return r.unlockedAt }
func (r *Record) CreatedAt() time.Time      { return r.createdAt }
func (r *Record) UpdatedAt() time.Time      { return r.updatedAt }

// MarkSucceeded finalizes the record. It is idempotent: confirming an
// already-succeeded record keeps the original unlockedAt and reports
// no change so callers can skip redundant writes.
func (r *Record) MarkSucceeded(paymentIntentID string, now time.Time) (changed bool) {
	if r.status == StatusSucceeded {
		return false
	}
	r.status = StatusSucceeded
	if paymentIntentID != "" {
		r.paymentIntentID = &paymentIntentID
	}
	if r.unlockedAt == nil {
		r.unlockedAt = &now
	}
	return true
}

// MarkFailed records a failed payment. A succeeded record is never
// downgraded, late failure events for a session that already completed
// are ignored.
func (r *Record) MarkFailed() error {
	if r.status == StatusSucceeded {
		return ErrAlreadySucceeded
	}
	if !r.status.CanTransitionTo(StatusFailed) {
		return ErrInvalidTransition
	}
	r.status = StatusFailed
	return nil
}

// MarkRefunded revokes access after a refund.
func (r *Record) MarkRefunded() error {
	if !r.status.CanTransitionTo(StatusRefunded) {
		return ErrInvalidTransition
	}
	r.status = StatusRefunded
	return nil
}

// GrantsAccess reports whether this record currently unlocks the listing.
func (r *Record) GrantsAccess() bool {
	return r.status == StatusSucceeded
}
