// Package smtp delivers email through an SMTP relay using gomail.
package smtp

import (
	"context"
	"fmt"

	"dispatch/internal/core/ports"

	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Sender sends a composed message. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer implements ports.Mailer.
type Mailer struct {
	sender Sender
	from   string
}

func NewMailer(cfg Config) *Mailer {
	return NewMailerWithSender(gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), cfg.From)
}

func NewMailerWithSender(sender Sender, from string) *Mailer {
	return &Mailer{sender: sender, from: from}
}

// SendMail composes a plain text message, with an HTML alternative when mail.HTML is set.
// gomail has no context support, so ctx is only checked before dialing.
func (m *Mailer) SendMail(ctx context.Context, mail ports.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := m.compose(mail)
	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", mail.To, err)
	}
	return nil
}

func (m *Mailer) compose(mail ports.Mail) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/plain", mail.Text)
	if mail.HTML != "" {
		msg.AddAlternative("text/html", mail.HTML)
	}
	return msg
}
