package unlock

import "errors"

var (
	ErrInvalidStatus     = errors.New("invalid unlock status")
	ErrAlreadySucceeded  = errors.New("unlock already succeeded")
	ErrInvalidTransition = errors.New("invalid unlock status transition")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSucceeded, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

// CanTransitionTo encodes the ledger's lifecycle. A succeeded record
// grants access permanently and may only move to refunded; failed and
// refunded are terminal, retries create a fresh pending record instead.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusSucceeded || next == StatusFailed
	case StatusSucceeded:
		return next == StatusRefunded
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
