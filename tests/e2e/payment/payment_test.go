//go:build e2e

package payment_test

import (
	"fmt"
	"net/http"
	"testing"

	"realty-api/internal/handler/dto/response"
	"realty-api/tests/common/authtest"
	"realty-api/tests/common/dbtest"
	"realty-api/tests/common/httptest"
	"realty-api/tests/common/paymenttest"
	"realty-api/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	checkoutURL       = "/api/v1/payments/properties/%s/checkout"
	paymentSuccessURL = "/api/v1/payments/properties/%s/payment-success"
	paymentCancelURL  = "/api/v1/payments/properties/%s/payment-cancel"
	webhookURL        = "/api/v1/payments/webhooks/stripe"
	myUnlockedURL     = "/api/v1/payments/my-unlocked-properties"
	propertyDetailURL = "/api/v1/properties/%s"
)

type PaymentSuite struct {
	e2e.SharedSuite
}

func TestPaymentSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(PaymentSuite))
}

func (s *PaymentSuite) url(format, slug string) string {
	return fmt.Sprintf(format, slug)
}

// =============================================================================
// TestCheckoutFlow - Checkout initiation and confirmation paths
// =============================================================================

func (s *PaymentSuite) TestCheckoutFlow() {
	s.Run("Normal case: buyer unlocks a listing via the redirect path", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", "owner")
		propertyID := dbtest.CreateTestProperty(t, s.DB, ownerID, "Sunny Cottage", "sunny-cottage", 85_000_000)
		buyerID := dbtest.CreateTestUser(t, s.DB, "buyer@example.com", "buyer")
		token := authtest.LoginUser(t, s.Router, "buyer@example.com", "password123")

		// 未解放の詳細は連絡先を隠し、解放価格を載せる
		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, s.url(propertyDetailURL, "sunny-cottage"), nil, token)
		var locked response.PropertyDetailResponse
		httptest.AssertSuccessResponse(t, lw, http.StatusOK, &locked)
		require.False(t, locked.Unlocked)
		require.Nil(t, locked.OwnerContact)
		require.NotNil(t, locked.UnlockPriceCents)
		require.EqualValues(t, 999, *locked.UnlockPriceCents)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, s.url(checkoutURL, "sunny-cottage"), nil, token)

		var session response.CheckoutSessionResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &session)
		require.NotEmpty(t, session.SessionID)
		require.NotEmpty(t, session.CheckoutURL)

		row := dbtest.GetUnlockRecord(t, s.DB, buyerID, propertyID)
		require.Equal(t, "pending", row.Status)
		require.Nil(t, row.UnlockedAt)

		// 決済完了後のリダイレクトをシミュレート
		s.Fakes.Gateway.MarkPaid(session.SessionID, "pi_redirect_1")

		rw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			s.url(paymentSuccessURL, "sunny-cottage")+"?session_id="+session.SessionID, nil, "")
		httptest.AssertRedirect(t, rw, s.Config.App.FrontendURL+"/properties/sunny-cottage?unlocked=1")

		row = dbtest.GetUnlockRecord(t, s.DB, buyerID, propertyID)
		require.Equal(t, "succeeded", row.Status)
		require.NotNil(t, row.PaymentIntentID)
		require.Equal(t, "pi_redirect_1", *row.PaymentIntentID)
		require.NotNil(t, row.UnlockedAt)

		// Unlocked detail exposes owner contact and reports
		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, s.url(propertyDetailURL, "sunny-cottage"), nil, token)
		var detail response.PropertyDetailResponse
		httptest.AssertSuccessResponse(t, dw, http.StatusOK, &detail)
		require.NotNil(t, detail.OwnerContact)
		require.Equal(t, "owner@example.com", detail.OwnerContact.Email)

		expected := &response.PropertyDetailResponse{
			Title:        "Sunny Cottage",
			Slug:         "sunny-cottage",
			PropertyType: "house",
			Status:       "available",
			PriceCents:   85_000_000,
			Bedrooms:     3,
			Bathrooms:    1,
			Street:       "12 Example St",
			Suburb:       "Newtown",
			State:        "NSW",
			Postcode:     "2042",
			Unlocked:     true,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.PropertyDetailResponse{},
				"ID", "OwnerID", "Description", "Parking", "LandSizeSqm", "IsFeatured",
				"ViewsCount", "Images", "Features", "OwnerContact", "Reports", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &detail, opts...); diff != "" {
			t.Errorf("Property detail mismatch (-want +got):\n%s", diff)
		}

		lw = httptest.PerformRequest(t, s.Router, http.MethodGet, myUnlockedURL, nil, token)
		var unlocked []*response.UnlockedProperty
		httptest.AssertSuccessResponse(t, lw, http.StatusOK, &unlocked)
		require.Len(t, unlocked, 1)
		require.Equal(t, "sunny-cottage", unlocked[0].Slug)
	})

	s.Run("Normal case: webhook confirms the payment without a redirect", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", "owner")
		propertyID := dbtest.CreateTestProperty(t, s.DB, ownerID, "City Apartment", "city-apartment", 65_000_000)
		buyerID := dbtest.CreateTestUser(t, s.DB, "buyer@example.com", "buyer")
		token := authtest.LoginUser(t, s.Router, "buyer@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, s.url(checkoutURL, "city-apartment"), nil, token)
		var session response.CheckoutSessionResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &session)

		body := paymenttest.WebhookBody("checkout.session.completed", session.SessionID, "pi_webhook_1")
		hw := httptest.PerformRawRequest(t, s.Router, http.MethodPost, webhookURL, body,
			map[string]string{"Stripe-Signature": paymenttest.TestSignature})
		require.Equal(t, http.StatusOK, hw.Code, hw.Body.String())

		row := dbtest.GetUnlockRecord(t, s.DB, buyerID, propertyID)
		require.Equal(t, "succeeded", row.Status)
		require.NotNil(t, row.PaymentIntentID)
		require.Equal(t, "pi_webhook_1", *row.PaymentIntentID)
	})

	s.Run("Normal case: redirect after the webhook stays idempotent", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", "owner")
		propertyID := dbtest.CreateTestProperty(t, s.DB, ownerID, "Beach House", "beach-house", 120_000_000)
		buyerID := dbtest.CreateTestUser(t, s.DB, "buyer@example.com", "buyer")
		token := authtest.LoginUser(t, s.Router, "buyer@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, s.url(checkoutURL, "beach-house"), nil, token)
		var session response.CheckoutSessionResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &session)

		s.Fakes.Gateway.MarkPaid(session.SessionID, "pi_race_1")

		body := paymenttest.WebhookBody("checkout.session.completed", session.SessionID, "pi_race_1")
		hw := httptest.PerformRawRequest(t, s.Router, http.MethodPost, webhookURL, body,
			map[string]string{"Stripe-Signature": paymenttest.TestSignature})
		require.Equal(t, http.StatusOK, hw.Code)

		first := dbtest.GetUnlockRecord(t, s.DB, buyerID, propertyID)
		require.Equal(t, "succeeded", first.Status)

		// The losing redirect arrives late and must not move unlocked_at
		rw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			s.url(paymentSuccessURL, "beach-house")+"?session_id="+session.SessionID, nil, "")
		httptest.AssertRedirect(t, rw, s.Config.App.FrontendURL+"/properties/beach-house?unlocked=1")

		second := dbtest.GetUnlockRecord(t, s.DB, buyerID, propertyID)
		require.Equal(t, "succeeded", second.Status)
		require.Equal(t, first.UnlockedAt, second.UnlockedAt)
	})

	s.Run("Error case: owner cannot unlock their own listing", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", "owner")
		dbtest.CreateTestProperty(t, s.DB, ownerID, "Own Listing", "own-listing", 50_000_000)
		token := authtest.LoginUser(t, s.Router, "owner@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, s.url(checkoutURL, "own-listing"), nil, token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Error case: checkout after a successful unlock returns conflict", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", "owner")
		dbtest.CreateTestProperty(t, s.DB, ownerID, "Hill House", "hill-house", 70_000_000)
		dbtest.CreateTestUser(t, s.DB, "buyer@example.com", "buyer")
		token := authtest.LoginUser(t, s.Router, "buyer@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, s.url(checkoutURL, "hill-house"), nil, token)
		var session response.CheckoutSessionResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &session)

		s.Fakes.Gateway.MarkPaid(session.SessionID, "pi_conflict_1")
		rw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			s.url(paymentSuccessURL, "hill-house")+"?session_id="+session.SessionID, nil, "")
		httptest.AssertRedirect(t, rw, s.Config.App.FrontendURL+"/properties/hill-house?unlocked=1")

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, s.url(checkoutURL, "hill-house"), nil, token)
		require.Equal(t, http.StatusConflict, w2.Code)
	})

	s.Run("Error case: abandoned checkout can be retried", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", "owner")
		propertyID := dbtest.CreateTestProperty(t, s.DB, ownerID, "Retry House", "retry-house", 40_000_000)
		buyerID := dbtest.CreateTestUser(t, s.DB, "buyer@example.com", "buyer")
		token := authtest.LoginUser(t, s.Router, "buyer@example.com", "password123")

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, s.url(checkoutURL, "retry-house"), nil, token)
		var first response.CheckoutSessionResponse
		httptest.AssertSuccessResponse(t, w1, http.StatusCreated, &first)

		// Abandon and start over: the stale pending record is replaced
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, s.url(checkoutURL, "retry-house"), nil, token)
		var second response.CheckoutSessionResponse
		httptest.AssertSuccessResponse(t, w2, http.StatusCreated, &second)
		require.NotEqual(t, first.SessionID, second.SessionID)

		row := dbtest.GetUnlockRecord(t, s.DB, buyerID, propertyID)
		require.Equal(t, "pending", row.Status)
	})

	s.Run("Auth test - Unauthorized when not logged in", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", "owner")
		dbtest.CreateTestProperty(t, s.DB, ownerID, "No Auth House", "no-auth-house", 30_000_000)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, s.url(checkoutURL, "no-auth-house"), nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestPaymentRedirects - Redirect error and cancel paths
// =============================================================================

func (s *PaymentSuite) TestPaymentRedirects() {
	s.Run("Error case: unpaid session redirects to the payment error page", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", "owner")
		dbtest.CreateTestProperty(t, s.DB, ownerID, "Unpaid House", "unpaid-house", 30_000_000)
		dbtest.CreateTestUser(t, s.DB, "buyer@example.com", "buyer")
		token := authtest.LoginUser(t, s.Router, "buyer@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, s.url(checkoutURL, "unpaid-house"), nil, token)
		var session response.CheckoutSessionResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &session)

		// 未決済のままリダイレクトが届いたケース
		rw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			s.url(paymentSuccessURL, "unpaid-house")+"?session_id="+session.SessionID, nil, "")
		httptest.AssertRedirect(t, rw, s.Config.App.FrontendURL+"/payment-error?reason=not_paid")
	})

	s.Run("Error case: unknown session redirects to the payment error page", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", "owner")
		dbtest.CreateTestProperty(t, s.DB, ownerID, "Ghost House", "ghost-house", 30_000_000)

		rw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			s.url(paymentSuccessURL, "ghost-house")+"?session_id=cs_never_created", nil, "")
		httptest.AssertRedirect(t, rw, s.Config.App.FrontendURL+"/payment-error?reason=unknown_session")
	})

	s.Run("Normal case: cancel redirects back to the listing", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", "owner")
		dbtest.CreateTestProperty(t, s.DB, ownerID, "Cancel House", "cancel-house", 30_000_000)

		rw := httptest.PerformRequest(t, s.Router, http.MethodGet, s.url(paymentCancelURL, "cancel-house"), nil, "")
		httptest.AssertRedirect(t, rw, s.Config.App.FrontendURL+"/payment-cancelled?property=cancel-house")
	})
}

// =============================================================================
// TestWebhook - Webhook verification and failure events
// =============================================================================

func (s *PaymentSuite) TestWebhook() {
	s.Run("Error case: bad signature is rejected with 400", func() {
		t := s.T()

		body := paymenttest.WebhookBody("checkout.session.completed", "cs_any", "pi_any")
		w := httptest.PerformRawRequest(t, s.Router, http.MethodPost, webhookURL, body,
			map[string]string{"Stripe-Signature": "forged"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("Normal case: failure event for an unknown intent leaves the record pending", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", "owner")
		propertyID := dbtest.CreateTestProperty(t, s.DB, ownerID, "Fail House", "fail-house", 30_000_000)
		buyerID := dbtest.CreateTestUser(t, s.DB, "buyer@example.com", "buyer")
		token := authtest.LoginUser(t, s.Router, "buyer@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, s.url(checkoutURL, "fail-house"), nil, token)
		var session response.CheckoutSessionResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &session)

		// A pending record has no payment intent yet, the failure event
		// cannot match it and must still be acknowledged.
		failed := paymenttest.WebhookBody("payment_intent.payment_failed", "", "pi_unmatched_fail")
		hw := httptest.PerformRawRequest(t, s.Router, http.MethodPost, webhookURL, failed,
			map[string]string{"Stripe-Signature": paymenttest.TestSignature})
		require.Equal(t, http.StatusOK, hw.Code)

		row := dbtest.GetUnlockRecord(t, s.DB, buyerID, propertyID)
		require.Equal(t, "pending", row.Status)
	})

	s.Run("Normal case: unmatched event is acknowledged", func() {
		t := s.T()

		body := paymenttest.WebhookBody("checkout.session.completed", "cs_unmatched", "pi_unmatched")
		w := httptest.PerformRawRequest(t, s.Router, http.MethodPost, webhookURL, body,
			map[string]string{"Stripe-Signature": paymenttest.TestSignature})
		require.Equal(t, http.StatusOK, w.Code, "unmatched events must be acknowledged so the gateway stops retrying")
	})

	s.Run("Normal case: unhandled event type is acknowledged", func() {
		t := s.T()

		body := paymenttest.WebhookBody("customer.created", "", "")
		w := httptest.PerformRawRequest(t, s.Router, http.MethodPost, webhookURL, body,
			map[string]string{"Stripe-Signature": paymenttest.TestSignature})
		require.Equal(t, http.StatusOK, w.Code)
	})
}
