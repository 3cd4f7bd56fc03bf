//go:build unit

package api_test

import (
	"bytes"
	"net/http"
	"testing"

	"realty-api/internal/handler/api"
	resdto "realty-api/internal/handler/dto/response"
	"realty-api/internal/pkg/config"
	"realty-api/internal/usecase/commands"
	"realty-api/internal/usecase/queries"
	"realty-api/tests/common/httptest"
	commandsmock "realty-api/tests/mock/commands"
	queriesmock "realty-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockUnlockCommands
	mockQueries  *queriesmock.MockUnlockQueries
	handler      *api.PaymentHandler
	frontendURL  string
	userID       uuid.UUID
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	cfg := config.NewTestConfig()
	s.frontendURL = cfg.App.FrontendURL
	s.userID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockUnlockCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUnlockQueries(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands, s.mockQueries, cfg.App)

	authenticated := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.userID)
		}
	}

	s.router.POST("/payments/properties/:slug/checkout", authenticated, s.handler.CreateCheckout)
	s.router.GET("/payments/properties/:slug/payment-success", s.handler.PaymentSuccess)
	s.router.GET("/payments/properties/:slug/payment-cancel", s.handler.PaymentCancel)
	s.router.POST("/payments/webhooks/stripe", s.handler.StripeWebhook)
	s.router.GET("/payments/my-unlocked-properties", authenticated, s.handler.MyUnlockedProperties)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) TestCreateCheckout() {
	url := "/payments/properties/sunny-cottage/checkout"

	s.Run("success: returns 201 with the session url", func() {
		s.mockCommands.EXPECT().InitiateCheckout(gomock.Any(), s.userID, "sunny-cottage").
			Return(&commands.CheckoutSession{
				ID:  "cs_test_123",
				URL: "https://checkout.stripe.com/pay/cs_test_123",
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var response resdto.CheckoutSessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("cs_test_123", response.SessionID)
		s.Equal("https://checkout.stripe.com/pay/cs_test_123", response.CheckoutURL)
	})

	s.Run("error: 401 without authentication", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "not authenticated")
	})

	s.Run("error: command failures map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "unknown listing", err: commands.ErrPropertyNotFound, expectCode: http.StatusNotFound},
			{name: "owner checkout", err: commands.ErrOwnerCannotUnlock, expectCode: http.StatusForbidden},
			{name: "already unlocked", err: commands.ErrAlreadyUnlocked, expectCode: http.StatusConflict},
			{name: "concurrent checkout", err: commands.ErrUnlockConflict, expectCode: http.StatusConflict},
			{name: "gateway down", err: commands.ErrPaymentGateway, expectCode: http.StatusBadGateway},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().InitiateCheckout(gomock.Any(), s.userID, "sunny-cottage").
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})
}

func (s *PaymentHandlerTestSuite) TestPaymentSuccess() {
	base := "/payments/properties/sunny-cottage/payment-success"

	s.Run("success: redirects to the unlocked listing", func() {
		s.mockCommands.EXPECT().ConfirmFromRedirect(gomock.Any(), "cs_test_123").
			Return("sunny-cottage", nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?session_id=cs_test_123", nil, "")
		httptest.AssertRedirect(s.T(), rec, s.frontendURL+"/properties/sunny-cottage?unlocked=1")
	})

	s.Run("error: missing session_id skips the gateway entirely", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base, nil, "")
		httptest.AssertRedirect(s.T(), rec, s.frontendURL+"/payment-error?reason=missing_session")
	})

	s.Run("error: confirmation failures map to reason codes", func() {
		cases := []struct {
			name   string
			err    error
			reason string
		}{
			{name: "session unknown to the ledger", err: commands.ErrUnknownSession, reason: "unknown_session"},
			{name: "session unpaid at the gateway", err: commands.ErrSessionNotPaid, reason: "not_paid"},
			{name: "gateway verification failed", err: commands.ErrPaymentGateway, reason: "gateway_error"},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().ConfirmFromRedirect(gomock.Any(), "cs_test_123").
					Return("", tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?session_id=cs_test_123", nil, "")
				httptest.AssertRedirect(s.T(), rec, s.frontendURL+"/payment-error?reason="+tc.reason)
			})
		}
	})
}

func (s *PaymentHandlerTestSuite) TestPaymentCancel() {
	rec := httptest.PerformRequest(s.T(), s.router,
		http.MethodGet, "/payments/properties/sunny-cottage/payment-cancel", nil, "")
	httptest.AssertRedirect(s.T(), rec, s.frontendURL+"/payment-cancelled?property=sunny-cottage")
}

func (s *PaymentHandlerTestSuite) TestStripeWebhook() {
	url := "/payments/webhooks/stripe"
	payload := []byte(`{"type":"checkout.session.completed"}`)
	headers := map[string]string{"Stripe-Signature": "t=1,v1=sig"}

	s.Run("success: acknowledged with 200", func() {
		s.mockCommands.EXPECT().HandleWebhookEvent(gomock.Any(), payload, "t=1,v1=sig").
			Return(nil).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, headers)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"received":true}`, rec.Body.String())
	})

	s.Run("error: 400 on signature verification failure", func() {
		s.mockCommands.EXPECT().HandleWebhookEvent(gomock.Any(), payload, "t=1,v1=sig").
			Return(commands.ErrWebhookInvalid).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "verification failed")
	})

	s.Run("error: 500 on transient failure so the provider retries", func() {
		s.mockCommands.EXPECT().HandleWebhookEvent(gomock.Any(), payload, "t=1,v1=sig").
			Return(commands.ErrUnlockConflict).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "")
	})

	s.Run("error: 400 on an oversized body without reaching the command", func() {
		oversized := bytes.Repeat([]byte("a"), 64<<10+1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, oversized, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unreadable")
	})
}

func (s *PaymentHandlerTestSuite) TestMyUnlockedProperties() {
	url := "/payments/my-unlocked-properties"

	s.Run("success: returns the unlocked list", func() {
		views := []*queries.UnlockedPropertyView{
			{PropertyID: uuid.New(), Title: "Sunny Cottage", Slug: "sunny-cottage", AmountCents: 999, Currency: "aud"},
		}
		s.mockQueries.EXPECT().ListUnlockedProperties(gomock.Any(), s.userID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")

		var response []*resdto.UnlockedProperty
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
		s.Equal("sunny-cottage", response[0].Slug)
	})

	s.Run("error: 401 without authentication", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "not authenticated")
	})
}
