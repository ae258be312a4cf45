// Package notifier turns notification requests into persisted messages and
// outgoing emails, after asking the notification gate whether the recipient
// wants them.
package notifier

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/message"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/sirupsen/logrus"
)

// MessageRequest describes an in-app/push message. Setting is the preference
// category the recipient must have switched on; an empty Setting is always refused.
type MessageRequest struct {
	Setting     string
	MessageType string
	Title       string
	Body        string
	Data        map[string]string
	// Sender is nil for system messages.
	Sender *kernel.Party
}

// EmailRequest describes one email. Setting "ACCOUNT" is delivered regardless of preferences.
type EmailRequest struct {
	Setting string
	Subject string
	Text    string
	HTML    string
}

// Dispatcher is the message dispatcher. It never returns a bare error: every
// non-nil error is either a *errs.RefusalError or a *errs.FailureError.
type Dispatcher struct {
	gate   services.NotificationGate
	mailer ports.Mailer
	now    func() time.Time
	log    logrus.FieldLogger
}

func NewDispatcher(mailer ports.Mailer, log logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		gate:   services.NewNotificationGate(),
		mailer: mailer,
		now:    time.Now,
		log:    log.WithField("component", "notifier"),
	}
}

// SendMessage persists a message for recipient through messages when the gate
// allows req.Setting. The stored record snapshots the recipient's device tokens;
// pushing it to devices happens later and does not affect the result.
func (d *Dispatcher) SendMessage(
	ctx context.Context,
	messages ports.MessageRepository,
	recipient services.Recipient,
	req MessageRequest,
) (_ *message.Message, err error) {
	defer errs.Recover("sendMessage", &err)

	party := recipient.Party()
	if req.Setting == "" || !d.gate.AllowsNotification(recipient, req.Setting) {
		refusal := errs.NewRefusalError(
			fmt.Sprintf("%s has turned off notification setting: %s", party.Kind, req.Setting),
		)
		d.log.WithFields(logrus.Fields{"recipient": party.String(), "setting": req.Setting}).
			Debug("message refused by recipient settings")
		return nil, refusal
	}

	msg, err := message.NewMessage(
		kernel.NewUUID(),
		party,
		req.Sender,
		message.Content{
			MessageType: req.MessageType,
			Title:       req.Title,
			Body:        req.Body,
			Data:        req.Data,
		},
		recipient.DeviceTokens(),
		d.now(),
	)
	if err != nil {
		return nil, d.fail("sendMessage", err)
	}

	if err = messages.Add(ctx, msg); err != nil {
		return nil, d.fail("sendMessage", err)
	}

	d.log.WithFields(logrus.Fields{
		"recipient":   party.String(),
		"messageId":   msg.ID().String(),
		"messageType": msg.MessageType(),
	}).Info("message stored")
	return msg, nil
}

// SendEmail mails recipient when the gate allows req.Setting. Transport errors
// are returned as *errs.FailureError.
func (d *Dispatcher) SendEmail(ctx context.Context, recipient services.Recipient, req EmailRequest) (err error) {
	defer errs.Recover("sendEmail", &err)

	party := recipient.Party()
	if !d.gate.AllowsEmail(recipient, req.Setting) {
		d.log.WithFields(logrus.Fields{"recipient": party.String(), "setting": req.Setting}).
			Debug("email refused by recipient settings")
		return errs.NewRefusalError(
			fmt.Sprintf("%s has turned off email setting: %s", party.Kind, req.Setting),
		)
	}

	if recipient.Email() == "" {
		return d.fail("sendEmail", errs.NewValueIsRequiredError("recipient email"))
	}

	err = d.mailer.SendMail(ctx, ports.Mail{
		To:      recipient.Email(),
		Subject: req.Subject,
		Text:    req.Text,
		HTML:    req.HTML,
	})
	if err != nil {
		return d.fail("sendEmail", err)
	}

	d.log.WithFields(logrus.Fields{"recipient": party.String(), "setting": req.Setting}).Info("email sent")
	return nil
}

func (d *Dispatcher) fail(functionName string, cause error) error {
	failure := errs.NewFailureError(functionName, cause)
	d.log.WithFields(logrus.Fields{
		"function":   functionName,
		"diagnostic": failure.Diagnostic,
	}).Error("notification failed")
	return failure
}
