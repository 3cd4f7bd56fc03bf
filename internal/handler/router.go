package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"realty-api/internal/domain/user"
	"realty-api/internal/handler/api"
	"realty-api/internal/handler/middleware"
	"realty-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	authHandler *api.AuthHandler,
	propertyHandler *api.PropertyHandler,
	engagementHandler *api.EngagementHandler,
	paymentHandler *api.PaymentHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, authHandler, propertyHandler, engagementHandler, paymentHandler, adminHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	propertyHandler *api.PropertyHandler,
	engagementHandler *api.EngagementHandler,
	paymentHandler *api.PaymentHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api/v1")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/verify-otp", Handler: authHandler.VerifyOTP},
				{Method: http.MethodPost, Path: "/resend-otp", Handler: authHandler.ResendOTP},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodPost, Path: "/forgot-password", Handler: authHandler.ForgotPassword},
				{Method: http.MethodPost, Path: "/reset-password", Handler: authHandler.ResetPassword},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
				{Method: http.MethodPost, Path: "/change-password", Handler: authHandler.ChangePassword},
			})
		}

		users := apiGroup.Group("/users/me")
		users.Use(authMiddleware.RequireAuth())
		{
			addRoutes(users, []route{
				{Method: http.MethodGet, Path: "/profile", Handler: authHandler.GetProfile},
				{Method: http.MethodPut, Path: "/profile", Handler: authHandler.UpdateProfile},
				{Method: http.MethodGet, Path: "/statistics", Handler: propertyHandler.Statistics},
			})
		}

		properties := apiGroup.Group("/properties")
		{
			addRoutes(properties, []route{
				{Method: http.MethodGet, Path: "", Handler: propertyHandler.List},
				{Method: http.MethodGet, Path: "/featured", Handler: propertyHandler.ListFeatured},
				{Method: http.MethodGet, Path: "/:slug", Handler: propertyHandler.GetBySlug,
					Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
				{Method: http.MethodGet, Path: "/:slug/qrcode", Handler: propertyHandler.QRCode},
			})

			ownersOnly := properties.Group("")
			ownersOnly.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleOwner))
			addRoutes(ownersOnly, []route{
				{Method: http.MethodGet, Path: "/mine", Handler: propertyHandler.ListMine},
				{Method: http.MethodPost, Path: "", Handler: propertyHandler.Create},
				{Method: http.MethodPut, Path: "/:slug", Handler: propertyHandler.Update},
				{Method: http.MethodDelete, Path: "/:slug", Handler: propertyHandler.Delete},
				{Method: http.MethodPut, Path: "/:slug/report", Handler: propertyHandler.UpsertReport},
				{Method: http.MethodGet, Path: "/:slug/inspections", Handler: engagementHandler.ListPropertyInspections},
			})

			authRequired := properties.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/:slug/bookmark", Handler: engagementHandler.AddBookmark},
				{Method: http.MethodDelete, Path: "/:slug/bookmark", Handler: engagementHandler.RemoveBookmark},
				{Method: http.MethodPost, Path: "/:slug/inspections", Handler: engagementHandler.RequestInspection},
			})
		}

		authRequired := apiGroup.Group("")
		authRequired.Use(authMiddleware.RequireAuth())
		addRoutes(authRequired, []route{
			{Method: http.MethodGet, Path: "/bookmarks", Handler: engagementHandler.ListBookmarks},
			{Method: http.MethodGet, Path: "/inspections/mine", Handler: engagementHandler.ListMyInspections},
			{Method: http.MethodPatch, Path: "/inspections/:id", Handler: engagementHandler.UpdateInspectionStatus},
		})

		payments := apiGroup.Group("/payments")
		{
			// Redirect and webhook endpoints carry their own verification,
			// the browser arrives without an Authorization header.
			addRoutes(payments, []route{
				{Method: http.MethodGet, Path: "/properties/:slug/payment-success", Handler: paymentHandler.PaymentSuccess},
				{Method: http.MethodGet, Path: "/properties/:slug/payment-cancel", Handler: paymentHandler.PaymentCancel},
				{Method: http.MethodPost, Path: "/webhooks/stripe", Handler: paymentHandler.StripeWebhook},
			})

			paymentsAuth := payments.Group("")
			paymentsAuth.Use(authMiddleware.RequireAuth())
			addRoutes(paymentsAuth, []route{
				{Method: http.MethodPost, Path: "/properties/:slug/checkout", Handler: paymentHandler.CreateCheckout},
				{Method: http.MethodGet, Path: "/my-unlocked-properties", Handler: paymentHandler.MyUnlockedProperties},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/users", Handler: adminHandler.ListUsers},
				{Method: http.MethodPut, Path: "/users/:id/active", Handler: adminHandler.SetUserActive},
				{Method: http.MethodGet, Path: "/settings", Handler: adminHandler.GetSettings},
				{Method: http.MethodPut, Path: "/settings/unlock-price", Handler: adminHandler.UpdateUnlockPrice},
				{Method: http.MethodPut, Path: "/properties/:slug/featured", Handler: adminHandler.SetFeatured},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
