package components

import (
	"realty-api/internal/infra/mail"
	infraredis "realty-api/internal/infra/redis"
	"realty-api/internal/infra/stripe"
	"realty-api/internal/pkg/config"
	"realty-api/internal/usecase/commands"

	"go.uber.org/fx"
)

// GatewayModule wires the outbound adapters: the payment provider, the
// OTP store and the mail transport.
var GatewayModule = fx.Module("gateway",
	fx.Provide(
		func(cfg config.Config) config.StripeConfig { return cfg.Stripe },
		func(cfg config.Config) config.SMTPConfig { return cfg.SMTP },
		fx.Annotate(
			stripe.NewGateway,
			fx.As(new(commands.PaymentGateway)),
			fx.As(new(commands.WebhookVerifier)),
		),
		fx.Annotate(
			infraredis.NewOTPStore,
			fx.As(new(commands.OTPStore)),
		),
		fx.Annotate(
			mail.NewMailer,
			fx.As(new(commands.Mailer)),
		),
	),
)
