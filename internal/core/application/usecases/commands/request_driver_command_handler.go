package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/application/notifier"
	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/message"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// RequestDriverCommandHandler offers an order to a driver.
//
// It refuses, in this order, when the order already has a driver, when the
// driver's route belongs to another vendor and when the driver is offline.
// Otherwise it stores a REQUEST_DRIVER message for the driver, sent by the
// vendor, and returns it. A refusal from the dispatcher (driver switched
// REQUEST_DRIVER off) is returned unchanged.
//
// The handler does not assign the driver; AcceptOrderCommandHandler does.
type RequestDriverCommandHandler struct {
	uowFactory   UoWFactory
	dispatcher   MessageDispatcher
	availability services.DriverAvailability
	formatter    services.AddressFormatter
}

func NewRequestDriverCommandHandler(uowFactory UoWFactory, dispatcher MessageDispatcher) RequestDriverCommandHandler {
	return RequestDriverCommandHandler{
		uowFactory:   uowFactory,
		dispatcher:   dispatcher,
		availability: services.NewDriverAvailability(),
		formatter:    services.NewAddressFormatter(),
	}
}

func (h RequestDriverCommandHandler) Handle(
	ctx context.Context,
	command RequestDriverCommand,
) (_ *message.Message, err error) {
	defer errs.Recover(fnRequestDriver, &err)

	msg, err := h.handle(ctx, command)
	return msg, errs.AsFailure(fnRequestDriver, err)
}

func (h RequestDriverCommandHandler) handle(ctx context.Context, command RequestDriverCommand) (*message.Message, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, o, err := loadDriverAndOrder(ctx, uow, command.DriverID(), command.OrderID())
	if err != nil {
		return nil, err
	}

	routeOrders, err := loadRouteOrders(ctx, uow.OrderRepository(), d, o)
	if err != nil {
		return nil, err
	}

	if err = h.availability.Check(d, o, routeOrders); err != nil {
		return nil, err
	}

	parties, err := loadOrderParties(ctx, uow.DirectoryRepository(), o)
	if err != nil {
		return nil, err
	}

	sender := parties.vendor.Party()
	msg, err := h.dispatcher.SendMessage(ctx, uow.MessageRepository(), d, notifier.MessageRequest{
		Setting:     driver.CategoryRequestDriver,
		MessageType: MessageTypeRequestDriver,
		Title:       "New delivery request",
		Body:        fmt.Sprintf("%s is requesting a driver for an order.", parties.vendor.BusinessName()),
		Data: map[string]string{
			"orderId":         o.ID().String(),
			"messageType":     MessageTypeRequestDriver,
			"openModal":       "true",
			"vendorName":      parties.vendor.BusinessName(),
			"vendorAddress":   h.formatter.Format(parties.vendorAddress),
			"customerName":    parties.customer.ShortName(),
			"deliveryAddress": h.formatter.Format(parties.deliveryAddress),
			"tip":             o.Tip().String(),
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

type driverOrderLoader interface {
	DriverRepoFactory
	OrderRepoFactory
}

func loadDriverAndOrder(
	ctx context.Context,
	uow driverOrderLoader,
	driverID, orderID kernel.UUID,
) (*driver.Driver, *order.Order, error) {
	d, err := uow.DriverRepository().Get(ctx, driverID)
	if err != nil {
		return nil, nil, err
	}
	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return d, o, nil
}

// loadRouteOrders loads the orders on d's route when the vendor affinity check needs them.
func loadRouteOrders(
	ctx context.Context,
	orders ports.OrderRepository,
	d *driver.Driver,
	o *order.Order,
) ([]*order.Order, error) {
	if o.HasDriver() || !d.HasActiveOrders() {
		return nil, nil
	}
	return orders.GetMany(ctx, d.Orders())
}

type orderParties struct {
	vendor          *directory.Vendor
	vendorAddress   directory.Address
	customer        *directory.Customer
	deliveryAddress directory.Address
}

func loadOrderParties(ctx context.Context, dir ports.DirectoryRepository, o *order.Order) (orderParties, error) {
	var (
		p   orderParties
		err error
	)

	if p.vendor, err = dir.GetVendor(ctx, o.VendorID()); err != nil {
		return p, err
	}
	if p.vendor.AddressID().Validate() == nil {
		if p.vendorAddress, err = dir.GetAddress(ctx, p.vendor.AddressID()); err != nil {
			return p, err
		}
	}
	if p.customer, err = dir.GetCustomer(ctx, o.CustomerID()); err != nil {
		return p, err
	}
	if p.deliveryAddress, err = dir.GetAddress(ctx, o.DeliveryAddressID()); err != nil {
		return p, err
	}

	return p, nil
}
