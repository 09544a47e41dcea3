package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/tripshare/tripshare/backend/internal/config"
	"github.com/tripshare/tripshare/backend/internal/domain"
)

const smtpTimeout = 15 * time.Second

// SMTPSender delivers messages through an SMTP relay, one connection per message.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender returns a sender for the relay described by cfg. An empty
// cfg.Host is allowed; Send then fails with domain.ErrConfiguration.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send dials the relay and delivers msg.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if s.cfg.Host == "" {
		return fmt.Errorf("mailer.SMTPSender.Send: SMTP_HOST is not set: %w", domain.ErrConfiguration)
	}

	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("mailer.SMTPSender.Send: from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("mailer.SMTPSender.Send: to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(smtpTimeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("mailer.SMTPSender.Send: client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mailer.SMTPSender.Send: %w", err)
	}
	return nil
}
