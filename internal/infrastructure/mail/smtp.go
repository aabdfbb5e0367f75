// Package mail implements SMTP delivery for outgoing quote emails.
package mail

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cotizador/backend/internal/application/notification"
	"github.com/cotizador/backend/internal/infrastructure/config"
	"gopkg.in/gomail.v2"
)

// Ensure SMTPMailer implements notification.Mailer
var _ notification.Mailer = (*SMTPMailer)(nil)

// SMTPMailer sends messages through an SMTP relay using gomail
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// NewSMTPMailer creates an SMTPMailer from the mail configuration
func NewSMTPMailer(cfg *config.MailConfig) (*SMTPMailer, error) {
	if cfg == nil {
		return nil, errors.New("mail configuration is required")
	}
	if cfg.Host == "" {
		return nil, errors.New("mail host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("mail from address is required")
	}

	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
	}, nil
}

// Send delivers one composed message
func (m *SMTPMailer) Send(ctx context.Context, msg notification.OutgoingMessage) error {
	if len(msg.To) == 0 {
		return errors.New("message has no recipients")
	}

	mail := gomail.NewMessage()
	mail.SetAddressHeader("From", m.from, m.fromName)
	mail.SetHeader("To", msg.To...)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/html", msg.HTMLBody)

	for _, part := range msg.Attachments {
		content := part.Content
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		}
		if part.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {part.ContentType},
			}))
		}
		mail.Attach(part.Filename, settings...)
	}

	if err := m.dialer.DialAndSend(mail); err != nil {
		return fmt.Errorf("smtp delivery failed: %w", err)
	}
	return nil
}
