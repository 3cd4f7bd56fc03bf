package commands

import (
	"context"

	"github.com/google/uuid"
)

// CheckoutSession is the gateway-neutral shape of a hosted payment page.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentIntentID string
	Paid            bool
}

type CreateCheckoutParams struct {
	UserID        uuid.UUID
	PropertyID    uuid.UUID
	PropertyTitle string
	PropertySlug  string
	AmountCents   int64
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params CreateCheckoutParams) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

type WebhookEventType string

const (
	EventCheckoutCompleted WebhookEventType = "checkout_completed"
	EventPaymentSucceeded  WebhookEventType = "payment_succeeded"
	EventPaymentFailed     WebhookEventType = "payment_failed"
	EventUnhandled         WebhookEventType = "unhandled"
)

// WebhookEvent carries only the identifiers the ledger needs, so the
// command layer never sees gateway payloads.
type WebhookEvent struct {
	Type            WebhookEventType
	SessionID       string
	PaymentIntentID string
}

type WebhookVerifier interface {
	// VerifyAndParse authenticates the raw payload against its signature
	// and maps it to a neutral event.
	VerifyAndParse(payload []byte, signature string) (*WebhookEvent, error)
}

type OTPPurpose string

const (
	OTPPurposeRegistration  OTPPurpose = "registration"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
)

// PendingRegistration is a registration payload parked in the store
// until the emailed code comes back. No user row exists yet, so a
// register request can never reveal whether an address is taken.
type PendingRegistration struct {
	Email        string
	PasswordHash string
	FullName     string
	Phone        *string
	Role         string
}

type OTPStore interface {
	// SaveRegistration parks the payload under a fresh code, enforcing a
	// resend cooldown per address.
	SaveRegistration(ctx context.Context, email, code string, reg PendingRegistration) error
	// ConsumeRegistration returns and clears the payload when the code
	// matches, nil when it does not or nothing is pending.
	ConsumeRegistration(ctx context.Context, email, code string) (*PendingRegistration, error)
	// RefreshRegistrationCode re-keys a pending registration under a new
	// code, reporting whether one existed.
	RefreshRegistrationCode(ctx context.Context, email, code string) (bool, error)
	// SaveCode stores a short-lived code and enforces a resend cooldown.
	SaveCode(ctx context.Context, purpose OTPPurpose, email, code string) error
	// VerifyCode consumes the code and leaves a short-lived verified flag.
	VerifyCode(ctx context.Context, purpose OTPPurpose, email, code string) (bool, error)
	// ConsumeVerified clears the verified flag, reporting whether it was set.
	ConsumeVerified(ctx context.Context, purpose OTPPurpose, email string) (bool, error)
}

type Mailer interface {
	SendVerificationCode(to, code string) error
	SendPasswordResetCode(to, code string) error
}
