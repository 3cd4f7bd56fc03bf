package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"realty-api/internal/domain/unlock"
	"realty-api/internal/infra"
	"realty-api/internal/pkg/clock"
	"realty-api/internal/pkg/config"
	"realty-api/internal/pkg/errs"
	"realty-api/internal/usecase/shared"
)

var (
	ErrPropertyNotFound  = errs.New("property not found")
	ErrOwnerCannotUnlock = errs.New("owners already see their own listings")
	ErrAlreadyUnlocked   = errs.New("listing already unlocked")
	ErrUnlockConflict    = errs.New("a concurrent unlock attempt exists")
	ErrPaymentGateway    = errs.New("payment gateway unavailable")
	ErrUnknownSession    = errs.New("unknown checkout session")
	ErrSessionNotPaid    = errs.New("checkout session is not paid")
	ErrWebhookInvalid    = errs.New("webhook verification failed")
)

type UnlockCommands interface {
	// InitiateCheckout starts a hosted checkout for one listing. A stale
	// non-succeeded record for the pair is replaced by a fresh pending
	// one, so abandoning a checkout never blocks a retry.
	InitiateCheckout(ctx context.Context, userID uuid.UUID, slug string) (*CheckoutSession, error)
	// ConfirmFromRedirect re-verifies the session with the gateway before
	// trusting the browser redirect, and returns the listing slug for the
	// frontend redirect target.
	ConfirmFromRedirect(ctx context.Context, sessionID string) (string, error)
	// HandleWebhookEvent applies a verified gateway event to the ledger.
	HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error
}

type unlockCommandsImpl struct {
	uow      shared.UnitOfWork
	gateway  PaymentGateway
	verifier WebhookVerifier
	clock    clock.Clock
	app      config.AppConfig
}

func NewUnlockCommands(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	verifier WebhookVerifier,
	clk clock.Clock,
	app config.AppConfig,
) UnlockCommands {
	return &unlockCommandsImpl{
		uow:      uow,
		gateway:  gateway,
		verifier: verifier,
		clock:    clk,
		app:      app,
	}
}

func (u *unlockCommandsImpl) InitiateCheckout(ctx context.Context, userID uuid.UUID, slug string) (*CheckoutSession, error) {
	reads := u.uow.CommandReads()

	prop, err := reads.PropertyBySlug(ctx, slug)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	if prop.OwnerID == userID {
		return nil, ErrOwnerCannotUnlock
	}

	existing, err := reads.UnlockByUserAndProperty(ctx, userID, prop.ID)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status == unlock.StatusSucceeded.String() {
		return nil, ErrAlreadyUnlocked
	}

	buyer, err := reads.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Price is read at checkout time so an admin price change applies to
	// the next checkout, never to a session already created.
	settings, err := reads.Settings(ctx)
	if err != nil {
		return nil, err
	}

	session, err := u.gateway.CreateCheckoutSession(ctx, CreateCheckoutParams{
		UserID:        userID,
		PropertyID:    prop.ID,
		PropertyTitle: prop.Title,
		PropertySlug:  prop.Slug,
		AmountCents:   settings.UnlockPriceCents,
		Currency:      settings.Currency,
		CustomerEmail: buyer.Email,
		SuccessURL:    u.app.BaseURL + "/api/v1/payments/properties/" + prop.Slug + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     u.app.BaseURL + "/api/v1/payments/properties/" + prop.Slug + "/payment-cancel",
	})
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentGateway)
	}

	record := unlock.NewPendingRecord(userID, prop.ID, session.ID, settings.UnlockPriceCents, settings.Currency)

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, delErr := tx.Unlocks().DeleteStalePending(ctx, tx.DB(), userID, prop.ID); delErr != nil {
			return delErr
		}
		if _, createErr := tx.Unlocks().Create(ctx, tx.DB(), record); createErr != nil {
			if infra.IsKind(createErr, infra.KindDuplicateKey) {
				return ErrUnlockConflict
			}
			return createErr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (u *unlockCommandsImpl) ConfirmFromRedirect(ctx context.Context, sessionID string) (string, error) {
	snap, err := u.uow.CommandReads().UnlockBySessionID(ctx, sessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", ErrUnknownSession
		}
		return "", err
	}

	prop, err := u.uow.CommandReads().PropertyByID(ctx, snap.PropertyID)
	if err != nil {
		return "", err
	}

	// Never trust the redirect alone, the session state comes from the
	// gateway itself.
	session, err := u.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return prop.Slug, errs.Mark(err, ErrPaymentGateway)
	}
	if !session.Paid {
		return prop.Slug, ErrSessionNotPaid
	}

	record, err := recordFromSnapshot(snap)
	if err != nil {
		return prop.Slug, err
	}
	if !record.MarkSucceeded(session.PaymentIntentID, u.clock.Now()) {
		// A webhook already finalized this record, nothing left to write.
		return prop.Slug, nil
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, updErr := tx.Unlocks().SucceedBySessionID(ctx, tx.DB(), sessionID, record.PaymentIntentID(), *record.UnlockedAt())
		return updErr
	})
	if err != nil {
		return prop.Slug, err
	}

	return prop.Slug, nil
}

func recordFromSnapshot(snap *shared.UnlockSnapshot) (*unlock.Record, error) {
	status, err := unlock.NewStatus(snap.Status)
	if err != nil {
		return nil, err
	}
	return unlock.Reconstruct(unlock.ReconstructParams{
		ID:                snap.ID,
		UserID:            snap.UserID,
		PropertyID:        snap.PropertyID,
		CheckoutSessionID: snap.CheckoutSessionID,
		PaymentIntentID:   snap.PaymentIntentID,
		AmountCents:       snap.AmountCents,
		Currency:          snap.Currency,
		Status:            status,
		UnlockedAt:        snap.UnlockedAt,
	}), nil
}

func (u *unlockCommandsImpl) HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := u.verifier.VerifyAndParse(payload, signature)
	if err != nil {
		return errs.Mark(err, ErrWebhookInvalid)
	}

	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var affected int64
		var applyErr error

		switch event.Type {
		case EventCheckoutCompleted:
			var intentID *string
			if event.PaymentIntentID != "" {
				intentID = &event.PaymentIntentID
			}
			affected, applyErr = tx.Unlocks().SucceedBySessionID(ctx, tx.DB(), event.SessionID, intentID, u.clock.Now())
		case EventPaymentSucceeded:
			affected, applyErr = tx.Unlocks().SucceedByIntentID(ctx, tx.DB(), event.PaymentIntentID, u.clock.Now())
		case EventPaymentFailed:
			affected, applyErr = tx.Unlocks().FailByIntentID(ctx, tx.DB(), event.PaymentIntentID)
		case EventUnhandled:
			return nil
		default:
			return nil
		}

		if applyErr != nil {
			return applyErr
		}
		if affected == 0 {
			// Either the record already succeeded or the event references a
			// session we never created. Acknowledge it so the gateway stops
			// retrying.
			slog.Info("webhook event matched no pending unlock record",
				"event_type", string(event.Type),
				"session_id", event.SessionID,
				"payment_intent_id", event.PaymentIntentID)
		}
		return nil
	})
}
