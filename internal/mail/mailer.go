// Package mail implements the outbound email gateway for interest alerts
// and team invitations.
package mail

import (
	"fmt"

	"squadsync/internal/config"
	"squadsync/internal/middleware"

	"gopkg.in/gomail.v2"
)

// Mailer sends a single transactional email. A failed send is surfaced to
// the caller synchronously; there are no retries.
type Mailer interface {
	Send(to, subject, textBody, htmlBody string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a mailer from the SMTP configuration.
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("SENDER_EMAIL is not configured")
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SenderEmail,
	}, nil
}

// Send delivers one message. htmlBody may be empty for text-only mail.
func (m *SMTPMailer) Send(to, subject, textBody, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		middleware.Logger.Error("email send failed", "to", to, "error", err.Error())
		return err
	}
	middleware.Logger.Info("email sent", "to", to)
	return nil
}
