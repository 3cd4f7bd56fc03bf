package api

import (
	"errors"
	"io"
	"net/http"

	resdto "realty-api/internal/handler/dto/response"
	"realty-api/internal/handler/middleware"
	"realty-api/internal/pkg/config"
	"realty-api/internal/usecase/commands"
	"realty-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// webhookBodyLimit caps webhook payloads well above any real Stripe
// event size.
const webhookBodyLimit = 64 << 10

type PaymentHandler struct {
	unlockCommands commands.UnlockCommands
	unlockQueries  queries.UnlockQueries
	app            config.AppConfig
}

func NewPaymentHandler(
	unlockCommands commands.UnlockCommands,
	unlockQueries queries.UnlockQueries,
	app config.AppConfig,
) *PaymentHandler {
	return &PaymentHandler{
		unlockCommands: unlockCommands,
		unlockQueries:  unlockQueries,
		app:            app,
	}
}

// @Summary Start an unlock checkout
// @Description Create a hosted checkout session for one listing
// @Tags payments
// @Security BearerAuth
// @Produce json
// @Param slug path string true "Listing slug"
// @Success 201 {object} resdto.CheckoutSessionResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /payments/properties/{slug}/checkout [post]
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	session, err := h.unlockCommands.InitiateCheckout(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Property not found",
			})
		case errors.Is(err, commands.ErrOwnerCannotUnlock):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Owners already see their own listings",
			})
		case errors.Is(err, commands.ErrAlreadyUnlocked):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Listing is already unlocked",
			})
		case errors.Is(err, commands.ErrUnlockConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Another checkout for this listing is in progress",
			})
		case errors.Is(err, commands.ErrPaymentGateway):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment provider is unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CheckoutSessionResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	})
}

// @Summary Checkout success redirect
// @Description Verifies the session with the payment provider and redirects the browser to the frontend
// @Tags payments
// @Param slug path string true "Listing slug"
// @Param session_id query string true "Checkout session id"
// @Success 302 "Redirect to the unlocked listing or an error page"
// @Router /payments/properties/{slug}/payment-success [get]
func (h *PaymentHandler) PaymentSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		h.redirectError(c, "missing_session")
		return
	}

	slug, err := h.unlockCommands.ConfirmFromRedirect(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUnknownSession):
			h.redirectError(c, "unknown_session")
		case errors.Is(err, commands.ErrSessionNotPaid):
			h.redirectError(c, "not_paid")
		case errors.Is(err, commands.ErrPaymentGateway):
			h.redirectError(c, "gateway_error")
		default:
			h.redirectError(c, "internal_error")
		}
		return
	}

	c.Redirect(http.StatusFound, h.app.FrontendURL+"/properties/"+slug+"?unlocked=1")
}

// @Summary Checkout cancel redirect
// @Description Sends the browser back to the listing page after an abandoned checkout
// @Tags payments
// @Param slug path string true "Listing slug"
// @Success 302 "Redirect to the listing page"
// @Router /payments/properties/{slug}/payment-cancel [get]
func (h *PaymentHandler) PaymentCancel(c *gin.Context) {
	c.Redirect(http.StatusFound, h.app.FrontendURL+"/payment-cancelled?property="+c.Param("slug"))
}

// @Summary Stripe webhook receiver
// @Description Applies verified payment events to the unlock ledger
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /payments/webhooks/stripe [post]
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	// Stripe events are small, anything bigger is not a legitimate
	// delivery and gets rejected before the signature check.
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, webhookBodyLimit))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unreadable webhook payload",
		})
		return
	}

	err = h.unlockCommands.HandleWebhookEvent(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, commands.ErrWebhookInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Webhook verification failed",
			})
			return
		}
		// A transient failure here must surface as non-2xx so the
		// provider retries the delivery.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// @Summary List unlocked properties
// @Tags payments
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.UnlockedProperty
// @Failure 401 {object} map[string]string
// @Router /payments/my-unlocked-properties [get]
func (h *PaymentHandler) MyUnlockedProperties(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	views, err := h.unlockQueries.ListUnlockedProperties(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromUnlockedPropertyViews(views))
}

func (h *PaymentHandler) redirectError(c *gin.Context, reason string) {
	c.Redirect(http.StatusFound, h.app.FrontendURL+"/payment-error?reason="+reason)
}
