package inspection

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errors.New("invalid inspection status")
	ErrPastSchedule      = errors.New("inspection must be scheduled in the future")
	ErrInvalidTransition = errors.New("invalid inspection status transition")
)

type Status string

const (
	StatusRequested Status = "requested"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

type Inspection struct {
	id          uuid.UUID
	propertyID  uuid.UUID
	userID      uuid.UUID
	scheduledAt time.Time
	notes       *string
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

func NewInspection(propertyID, userID uuid.UUID, scheduledAt time.Time, notes *string, now time.Time) (*Inspection, error) {
	if !scheduledAt.After(now) {
		return nil, ErrPastSchedule
	}
	return &Inspection{
		id:          uuid.New(),
		propertyID:  propertyID,
		userID:      userID,
		scheduledAt: scheduledAt,
		notes:       notes,
		status:      StatusRequested,
	}, nil
}

func (i *Inspection) ID() uuid.UUID          { return i.id }
func (i *Inspection) PropertyID() uuid.UUID  { return i.propertyID }
func (i *Inspection) UserID() uuid.UUID      { return i.userID }
func (i *Inspection) ScheduledAt() time.Time { return i.scheduledAt }
func (i *Inspection) Notes() *string         { return i.notes }
func (i *Inspection) Status() Status         { return i.status }
func (i *Inspection) CreatedAt() time.Time   { return i.createdAt }
func (i *Inspection) UpdatedAt() time.Time   { return i.updatedAt }

func (i *Inspection) Confirm() error {
	if i.status != StatusRequested {
		return ErrInvalidTransition
	}
	i.status = StatusConfirmed
	return nil
}

func (i *Inspection) Cancel() error {
	if i.status == StatusCancelled {
		return ErrInvalidTransition
	}
	i.status = StatusCancelled
	return nil
}
