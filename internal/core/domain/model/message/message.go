// Package message holds the notification record written for every dispatched
// push or in-app message. Records are append-only: once created only the
// push bookkeeping changes.
package message

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrMessageIsNotConstructed is returned when a Message was not created via NewMessage or RestoreMessage.
var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

// Message is one notification event addressed to a recipient.
// The device tokens are a snapshot taken at dispatch time; later token changes
// on the recipient do not affect where this message is pushed.
type Message struct {
	id           kernel.UUID
	messageType  string
	recipient    kernel.Party
	sender       *kernel.Party
	title        string
	body         string
	data         map[string]string
	deviceTokens []string
	createdAt    time.Time
	pushedAt     *time.Time
	guard        guard.ConstructorGuard
}

// Content is the caller supplied part of a message.
type Content struct {
	MessageType string
	Title       string
	Body        string
	Data        map[string]string
}

// NewMessage builds a message for recipient. sender may be nil for system messages.
func NewMessage(
	id kernel.UUID,
	recipient kernel.Party,
	sender *kernel.Party,
	content Content,
	deviceTokens []string,
	createdAt time.Time,
) (*Message, error) {
	m := &Message{
		title:        content.Title,
		body:         content.Body,
		data:         maps.Clone(content.Data),
		deviceTokens: slices.Clone(deviceTokens),
		createdAt:    createdAt.UTC(),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setMessageType(content.MessageType),
		m.setRecipient(recipient),
		m.setSender(sender),
	); err != nil {
		return nil, err
	}

	if m.data == nil {
		m.data = map[string]string{}
	}
	return m, nil
}

// RestoreMessage reconstructs a persisted message.
func RestoreMessage(
	id kernel.UUID,
	recipient kernel.Party,
	sender *kernel.Party,
	content Content,
	deviceTokens []string,
	createdAt time.Time,
	pushedAt *time.Time,
) (*Message, error) {
	m, err := NewMessage(id, recipient, sender, content, deviceTokens, createdAt)
	if err != nil {
		return nil, err
	}
	if pushedAt != nil {
		at := pushedAt.UTC()
		m.pushedAt = &at
	}
	return m, nil
}

func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

func (m *Message) ID() kernel.UUID {
	return m.id
}

func (m *Message) MessageType() string {
	return m.messageType
}

func (m *Message) Recipient() kernel.Party {
	return m.recipient
}

// Sender returns the sending party, nil for system messages.
func (m *Message) Sender() *kernel.Party {
	if m.sender == nil {
		return nil
	}
	s := *m.sender
	return &s
}

func (m *Message) Title() string {
	return m.title
}

func (m *Message) Body() string {
	return m.body
}

// Data returns a copy of the free-form payload.
func (m *Message) Data() map[string]string {
	return maps.Clone(m.data)
}

func (m *Message) DeviceTokens() []string {
	return slices.Clone(m.deviceTokens)
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) PushedAt() *time.Time {
	return m.pushedAt
}

func (m *Message) IsPushed() bool {
	return m.pushedAt != nil
}

// MarkPushed records when the message was handed to the push transport.
// Marking twice keeps the first timestamp.
func (m *Message) MarkPushed(at time.Time) {
	if m.pushedAt != nil {
		return
	}
	at = at.UTC()
	m.pushedAt = &at
}

func (m *Message) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Message) setMessageType(messageType string) error {
	if strings.TrimSpace(messageType) == "" {
		return errs.NewValueIsRequiredError("message type")
	}
	m.messageType = messageType
	return nil
}

func (m *Message) setRecipient(recipient kernel.Party) error {
	if _, err := kernel.NewParty(recipient.Kind, recipient.ID); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("recipient", err)
	}
	m.recipient = recipient
	return nil
}

func (m *Message) setSender(sender *kernel.Party) error {
	if sender == nil {
		return nil
	}
	if _, err := kernel.NewParty(sender.Kind, sender.ID); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("sender", err)
	}
	s := *sender
	m.sender = &s
	return nil
}
