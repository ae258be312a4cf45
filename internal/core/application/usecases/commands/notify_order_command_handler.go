package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/application/notifier"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/message"
	"dispatch/internal/pkg/errs"
)

type orderNotice struct {
	messageType string
	title       string
	bodyFormat  string
}

var (
	orderReadyNotice = orderNotice{
		messageType: MessageTypeOrderReady,
		title:       "Order ready",
		bodyFormat:  "%s has your order ready for pickup.",
	}
	orderCanceledNotice = orderNotice{
		messageType: MessageTypeOrderCanceled,
		title:       "Order canceled",
		bodyFormat:  "%s canceled the order.",
	}
)

// NotifyOrderReadyCommandHandler stores an ORDER_READY message for the driver,
// sent by the order's vendor under the driver's REQUEST_DRIVER setting.
type NotifyOrderReadyCommandHandler struct {
	notifier orderNotifier
}

func NewNotifyOrderReadyCommandHandler(uowFactory UoWFactory, dispatcher MessageDispatcher) NotifyOrderReadyCommandHandler {
	return NotifyOrderReadyCommandHandler{notifier: orderNotifier{uowFactory: uowFactory, dispatcher: dispatcher}}
}

func (h NotifyOrderReadyCommandHandler) Handle(
	ctx context.Context,
	command NotifyOrderReadyCommand,
) (_ *message.Message, err error) {
	defer errs.Recover(fnNotifyOrderReady, &err)

	if err = command.Validate(); err != nil {
		return nil, errs.AsFailure(fnNotifyOrderReady, err)
	}
	msg, err := h.notifier.notify(ctx, command.driverOrderTarget, orderReadyNotice)
	return msg, errs.AsFailure(fnNotifyOrderReady, err)
}

// NotifyOrderCanceledCommandHandler is NotifyOrderReadyCommandHandler for cancellations.
type NotifyOrderCanceledCommandHandler struct {
	notifier orderNotifier
}

func NewNotifyOrderCanceledCommandHandler(
	uowFactory UoWFactory,
	dispatcher MessageDispatcher,
) NotifyOrderCanceledCommandHandler {
	return NotifyOrderCanceledCommandHandler{notifier: orderNotifier{uowFactory: uowFactory, dispatcher: dispatcher}}
}

func (h NotifyOrderCanceledCommandHandler) Handle(
	ctx context.Context,
	command NotifyOrderCanceledCommand,
) (_ *message.Message, err error) {
	defer errs.Recover(fnNotifyOrderCanceled, &err)

	if err = command.Validate(); err != nil {
		return nil, errs.AsFailure(fnNotifyOrderCanceled, err)
	}
	msg, err := h.notifier.notify(ctx, command.driverOrderTarget, orderCanceledNotice)
	return msg, errs.AsFailure(fnNotifyOrderCanceled, err)
}

type orderNotifier struct {
	uowFactory UoWFactory
	dispatcher MessageDispatcher
}

func (n orderNotifier) notify(ctx context.Context, target driverOrderTarget, notice orderNotice) (*message.Message, error) {
	uow := n.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, o, err := loadDriverAndOrder(ctx, uow, target.DriverID(), target.OrderID())
	if err != nil {
		return nil, err
	}

	vendor, err := uow.DirectoryRepository().GetVendor(ctx, o.VendorID())
	if err != nil {
		return nil, err
	}

	sender := vendor.Party()
	msg, err := n.dispatcher.SendMessage(ctx, uow.MessageRepository(), d, notifier.MessageRequest{
		Setting:     driver.CategoryRequestDriver,
		MessageType: notice.messageType,
		Title:       notice.title,
		Body:        fmt.Sprintf(notice.bodyFormat, vendor.BusinessName()),
		Data: map[string]string{
			"orderId":     o.ID().String(),
			"messageType": notice.messageType,
			"openModal":   "false",
		},
		Sender: &sender,
	})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return msg, nil
}
