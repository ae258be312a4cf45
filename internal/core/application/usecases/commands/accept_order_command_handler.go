package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// AcceptOrderCommandHandler assigns an order to the driver who accepted the request.
//
// The driver row is locked for the whole transaction and availability is checked
// again, because the route may have changed since the request was sent. The order
// is then claimed with a conditional write; a driver who loses the race to another
// driver gets the same refusal as an order that was already assigned.
type AcceptOrderCommandHandler struct {
	uowFactory   UoWFactory
	availability services.DriverAvailability
}

func NewAcceptOrderCommandHandler(uowFactory UoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory:   uowFactory,
		availability: services.NewDriverAvailability(),
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, command AcceptOrderCommand) (_ *order.Order, err error) {
	defer errs.Recover(fnAcceptOrder, &err)

	o, err := h.handle(ctx, command)
	return o, errs.AsFailure(fnAcceptOrder, err)
}

func (h AcceptOrderCommandHandler) handle(ctx context.Context, command AcceptOrderCommand) (*order.Order, error) {
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

	drivers := uow.DriverRepository()
	d, err := drivers.GetForUpdate(ctx, command.DriverID())
	if err != nil {
		return nil, err
	}

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	routeOrders, err := loadRouteOrders(ctx, orders, d, o)
	if err != nil {
		return nil, err
	}
	if err = h.availability.Check(d, o, routeOrders); err != nil {
		return nil, err
	}

	claimed, err := orders.ClaimDriver(ctx, o.ID(), d.ID())
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, errs.NewRefusalError(services.MsgOrderAlreadyAssigned)
	}

	if err = o.AssignDriver(d.ID()); err != nil {
		return nil, err
	}
	if err = d.TakeOrder(o.ID()); err != nil {
		return nil, err
	}
	if err = drivers.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
