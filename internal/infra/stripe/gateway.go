package stripe

import (
	"context"
	"encoding/json"

	"realty-api/internal/pkg/config"
	"realty-api/internal/pkg/errs"
	"realty-api/internal/usecase/commands"

	stripelib "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Gateway wraps the Stripe API behind the command-layer ports.
type Gateway struct {
	api           *client.API
	webhookSecret string
}

func NewGateway(cfg config.StripeConfig) *Gateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &Gateway{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
	}
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, p commands.CreateCheckoutParams) (*commands.CheckoutSession, error) {
	params := &stripelib.CheckoutSessionParams{
		Mode:              stripelib.String(string(stripelib.CheckoutSessionModePayment)),
		SuccessURL:        stripelib.String(p.SuccessURL),
		CancelURL:         stripelib.String(p.CancelURL),
		CustomerEmail:     stripelib.String(p.CustomerEmail),
		ClientReferenceID: stripelib.String(p.UserID.String()),
		LineItems: []*stripelib.CheckoutSessionLineItemParams{
			{
				PriceData: &stripelib.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripelib.String(p.Currency),
					UnitAmount: stripelib.Int64(p.AmountCents),
					ProductData: &stripelib.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripelib.String("Unlock listing: " + p.PropertyTitle),
					},
				},
				Quantity: stripelib.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("user_id", p.UserID.String())
	params.AddMetadata("property_id", p.PropertyID.String())
	params.AddMetadata("property_slug", p.PropertySlug)

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create checkout session")
	}
	return toCheckoutSession(sess), nil
}

func (g *Gateway) GetCheckoutSession(ctx context.Context, sessionID string) (*commands.CheckoutSession, error) {
	params := &stripelib.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("payment_intent")

	sess, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, errs.Wrap(err, "failed to retrieve checkout session")
	}
	return toCheckoutSession(sess), nil
}

func toCheckoutSession(sess *stripelib.CheckoutSession) *commands.CheckoutSession {
	out := &commands.CheckoutSession{
		ID:   sess.ID,
		URL:  sess.URL,
		Paid: sess.PaymentStatus == stripelib.CheckoutSessionPaymentStatusPaid,
	}
	if sess.PaymentIntent != nil {
		out.PaymentIntentID = sess.PaymentIntent.ID
	}
	return out
}

// VerifyAndParse checks the webhook signature and maps the payload to a
// neutral event. Event types outside the checkout lifecycle come back
// as EventUnhandled so the caller can acknowledge them without acting.
func (g *Gateway) VerifyAndParse(payload []byte, signature string) (*commands.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, errs.Wrap(err, "webhook signature verification failed")
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripelib.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, errs.Wrap(err, "failed to parse checkout session payload")
		}
		out := &commands.WebhookEvent{
			Type:      commands.EventCheckoutCompleted,
			SessionID: sess.ID,
		}
		if sess.PaymentIntent != nil {
			out.PaymentIntentID = sess.PaymentIntent.ID
		}
		return out, nil

	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var intent stripelib.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return nil, errs.Wrap(err, "failed to parse payment intent payload")
		}
		eventType := commands.EventPaymentSucceeded
		if event.Type == "payment_intent.payment_failed" {
			eventType = commands.EventPaymentFailed
		}
		return &commands.WebhookEvent{
			Type:            eventType,
			PaymentIntentID: intent.ID,
		}, nil

	default:
		return &commands.WebhookEvent{Type: commands.EventUnhandled}, nil
	}
}
