package commands

import (
	"context"

	"dispatch/internal/core/application/notifier"
	"dispatch/internal/core/domain/model/message"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// MessageDispatcher is satisfied by *notifier.Dispatcher.
type MessageDispatcher interface {
	SendMessage(
		ctx context.Context,
		messages ports.MessageRepository,
		recipient services.Recipient,
		req notifier.MessageRequest,
	) (*message.Message, error)
	SendEmail(ctx context.Context, recipient services.Recipient, req notifier.EmailRequest) error
}

// Message types written into the data payload.
const (
	MessageTypeRequestDriver = "REQUEST_DRIVER"
	MessageTypeOrderReady    = "ORDER_READY"
	MessageTypeOrderCanceled = "ORDER_CANCELED"
)
