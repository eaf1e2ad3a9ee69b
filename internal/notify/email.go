package notify

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"growmate/internal/config"
	"growmate/internal/logger"
)

// Mailer sends account emails.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EmailNotifier delivers mail over SMTP.
type EmailNotifier struct {
	cfg    config.EmailConfig
	logger *logger.Logger
	dial   func(m *gomail.Message) error
}

// NewEmailNotifier creates a new email notifier.
func NewEmailNotifier(cfg config.EmailConfig, log *logger.Logger) *EmailNotifier {
	n := &EmailNotifier{cfg: cfg, logger: log.WithComponent("email")}
	n.dial = func(m *gomail.Message) error {
		d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
		return d.DialAndSend(m)
	}
	return n
}

// Enabled reports whether SMTP is configured.
func (n *EmailNotifier) Enabled() bool {
	return n.cfg.SMTPHost != "" && n.cfg.From != ""
}

// Send delivers a plain text email. Without SMTP configuration it logs and returns nil.
func (n *EmailNotifier) Send(ctx context.Context, to, subject, body string) error {
	if !n.Enabled() {
		n.logger.Warnw("email config missing, skip sending", "to", to, "subject", subject)
		return nil
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dial(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	n.logger.Infow("email sent", "to", to, "subject", subject)
	return nil
}
