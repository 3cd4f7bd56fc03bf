//go:build unit || e2e

// Package paymenttest provides in-process stand-ins for the outbound
// adapters, so e2e tests can run the full checkout flow without Stripe,
// Redis or an SMTP server.
package paymenttest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"realty-api/internal/pkg/errs"
	"realty-api/internal/usecase/commands"
)

// TestSignature is the only signature the fake verifier accepts.
const TestSignature = "test-signature"

// FakeGateway records created checkout sessions in memory. Tests flip a
// session to paid with MarkPaid before hitting the redirect endpoint.
type FakeGateway struct {
	mu       sync.Mutex
	sessions map[string]*commands.CheckoutSession
	seq      int

	// FailCreate makes CreateCheckoutSession return an error, simulating
	// a gateway outage.
	FailCreate bool
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{sessions: make(map[string]*commands.CheckoutSession)}
}

func (g *FakeGateway) CreateCheckoutSession(_ context.Context, params commands.CreateCheckoutParams) (*commands.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailCreate {
		return nil, errs.New("gateway unavailable")
	}

	g.seq++
	session := &commands.CheckoutSession{
		ID:  fmt.Sprintf("cs_test_%d", g.seq),
		URL: "https://checkout.example.test/pay/" + fmt.Sprintf("cs_test_%d", g.seq),
	}
	g.sessions[session.ID] = session
	return session, nil
}

func (g *FakeGateway) GetCheckoutSession(_ context.Context, sessionID string) (*commands.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	session, ok := g.sessions[sessionID]
	if !ok {
		return nil, errs.New("no such session: " + sessionID)
	}
	copied := *session
	return &copied, nil
}

// MarkPaid simulates the buyer completing the hosted checkout page.
func (g *FakeGateway) MarkPaid(sessionID, paymentIntentID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if session, ok := g.sessions[sessionID]; ok {
		session.Paid = true
		session.PaymentIntentID = paymentIntentID
	}
}

// FakeVerifier accepts TestSignature and decodes the payload directly
// into the neutral event shape, no cryptography involved.
type FakeVerifier struct{}

func NewFakeVerifier() *FakeVerifier {
	return &FakeVerifier{}
}

type fakeWebhookPayload struct {
	Type            string `json:"type"`
	SessionID       string `json:"session_id"`
	PaymentIntentID string `json:"payment_intent_id"`
}

func (v *FakeVerifier) VerifyAndParse(payload []byte, signature string) (*commands.WebhookEvent, error) {
	if signature != TestSignature {
		return nil, errs.New("webhook signature verification failed")
	}

	var body fakeWebhookPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, errs.Wrap(err, "failed to parse webhook payload")
	}

	switch body.Type {
	case "checkout.session.completed":
		return &commands.WebhookEvent{
			Type:            commands.EventCheckoutCompleted,
			SessionID:       body.SessionID,
			PaymentIntentID: body.PaymentIntentID,
		}, nil
	case "payment_intent.succeeded":
		return &commands.WebhookEvent{
			Type:            commands.EventPaymentSucceeded,
			PaymentIntentID: body.PaymentIntentID,
		}, nil
	case "payment_intent.payment_failed":
		return &commands.WebhookEvent{
			Type:            commands.EventPaymentFailed,
			PaymentIntentID: body.PaymentIntentID,
		}, nil
	default:
		return &commands.WebhookEvent{Type: commands.EventUnhandled}, nil
	}
}

// WebhookBody builds the JSON payload the fake verifier understands.
func WebhookBody(eventType, sessionID, paymentIntentID string) []byte {
	body, _ := json.Marshal(fakeWebhookPayload{
		Type:            eventType,
		SessionID:       sessionID,
		PaymentIntentID: paymentIntentID,
	})
	return body
}

// FakeOTPStore keeps codes and parked registrations in memory with the
// same contract as the Redis store, minus expiry and cooldowns.
type FakeOTPStore struct {
	mu       sync.Mutex
	regs     map[string]fakeRegistration
	codes    map[string]string
	verified map[string]bool
}

type fakeRegistration struct {
	code string
	reg  commands.PendingRegistration
}

func NewFakeOTPStore() *FakeOTPStore {
	return &FakeOTPStore{
		regs:     make(map[string]fakeRegistration),
		codes:    make(map[string]string),
		verified: make(map[string]bool),
	}
}

func key(purpose commands.OTPPurpose, email string) string {
	return string(purpose) + ":" + email
}

func (s *FakeOTPStore) SaveRegistration(_ context.Context, email, code string, reg commands.PendingRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs[email] = fakeRegistration{code: code, reg: reg}
	return nil
}

func (s *FakeOTPStore) ConsumeRegistration(_ context.Context, email, code string) (*commands.PendingRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.regs[email]
	if !ok || stored.code != code {
		return nil, nil
	}
	delete(s.regs, email)
	reg := stored.reg
	return &reg, nil
}

func (s *FakeOTPStore) RefreshRegistrationCode(_ context.Context, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.regs[email]
	if !ok {
		return false, nil
	}
	stored.code = code
	s.regs[email] = stored
	return true, nil
}

func (s *FakeOTPStore) SaveCode(_ context.Context, purpose commands.OTPPurpose, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[key(purpose, email)] = code
	return nil
}

func (s *FakeOTPStore) VerifyCode(_ context.Context, purpose commands.OTPPurpose, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.codes[key(purpose, email)]
	if !ok || stored != code {
		return false, nil
	}
	delete(s.codes, key(purpose, email))
	s.verified[key(purpose, email)] = true
	return true, nil
}

func (s *FakeOTPStore) ConsumeVerified(_ context.Context, purpose commands.OTPPurpose, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	was := s.verified[key(purpose, email)]
	delete(s.verified, key(purpose, email))
	return was, nil
}

// FakeMailer records the last code sent per address instead of
// delivering mail.
type FakeMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func NewFakeMailer() *FakeMailer {
	return &FakeMailer{codes: make(map[string]string)}
}

func (m *FakeMailer) SendVerificationCode(to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[to] = code
	return nil
}

func (m *FakeMailer) SendPasswordResetCode(to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[to] = code
	return nil
}

// LastCode returns the most recent code emailed to an address.
func (m *FakeMailer) LastCode(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[to]
}
