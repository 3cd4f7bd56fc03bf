package components

import (
	"realty-api/internal/handler"
	"realty-api/internal/handler/api"
	"realty-api/internal/handler/middleware"
	"realty-api/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) *middleware.Logger {
			return middleware.NewLogger(cfg.Log)
		},
		api.NewAuthHandler,
		api.NewPropertyHandler,
		api.NewEngagementHandler,
		api.NewPaymentHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
