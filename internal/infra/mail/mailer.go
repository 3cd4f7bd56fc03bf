package mail

import (
	"fmt"

	"realty-api/internal/pkg/config"
	"realty-api/internal/pkg/errs"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *Mailer) SendVerificationCode(to, code string) error {
	body := fmt.Sprintf(
		"Your verification code is %s.\n\nIt expires in 5 minutes. If you did not request this, ignore this email.",
		code,
	)
	return m.send(to, "Verify your email address", body)
}

func (m *Mailer) SendPasswordResetCode(to, code string) error {
	body := fmt.Sprintf(
		"Your password reset code is %s.\n\nIt expires in 5 minutes. If you did not request a reset, ignore this email.",
		code,
	)
	return m.send(to, "Reset your password", body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errs.Wrap(err, "failed to send email")
	}
	return nil
}
