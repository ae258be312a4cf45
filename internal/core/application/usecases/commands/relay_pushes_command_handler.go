package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/message"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// RelayPushesCommandHandler drains the message outbox into the push transport.
//
// Messages are published oldest first and marked pushed one by one. The first
// publish failure stops the batch; everything marked before it is committed and
// the failed message is retried on the next run. A message whose recipient has
// no device tokens is marked without publishing.
type RelayPushesCommandHandler struct {
	uowFactory MessageUoWFactory
	publisher  ports.PushPublisher
	now        func() time.Time
}

func NewRelayPushesCommandHandler(uowFactory MessageUoWFactory, publisher ports.PushPublisher) RelayPushesCommandHandler {
	return RelayPushesCommandHandler{uowFactory: uowFactory, publisher: publisher, now: time.Now}
}

// Handle returns how many messages were marked pushed.
func (h RelayPushesCommandHandler) Handle(ctx context.Context, command RelayPushesCommand) (_ int, err error) {
	defer errs.Recover(fnRelayPushes, &err)

	n, err := h.handle(ctx, command)
	return n, errs.AsFailure(fnRelayPushes, err)
}

func (h RelayPushesCommandHandler) handle(ctx context.Context, command RelayPushesCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.MessageRepository()
	pending, err := repo.GetUnpushed(ctx, command.Batch())
	if err != nil {
		return 0, err
	}

	pushed := 0
	var publishErr error
	for _, m := range pending {
		if len(m.DeviceTokens()) > 0 {
			if publishErr = h.publisher.PublishPush(ctx, toPushNotification(m)); publishErr != nil {
				break
			}
		}
		if err = repo.MarkPushed(ctx, m.ID(), h.now()); err != nil {
			return 0, err
		}
		pushed++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return pushed, publishErr
}

func toPushNotification(m *message.Message) ports.PushNotification {
	return ports.PushNotification{
		MessageID:    m.ID().String(),
		MessageType:  m.MessageType(),
		Recipient:    m.Recipient().String(),
		DeviceTokens: m.DeviceTokens(),
		Title:        m.Title(),
		Body:         m.Body(),
		Data:         m.Data(),
	}
}
