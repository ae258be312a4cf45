package commands

import (
	"context"
	"errors"
	"net/http"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

const MsgOrderNotOnRoute = "Order is not on your route."

// CompleteDeliveryCommandHandler marks the order DELIVERED and moves it from the
// driver's route to the driver's history.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	policy     order.TransitionPolicy
}

func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory,
	policy order.TransitionPolicy,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h CompleteDeliveryCommandHandler) Handle(
	ctx context.Context,
	command CompleteDeliveryCommand,
) (_ *order.Order, err error) {
	defer errs.Recover(fnCompleteDelivery, &err)

	o, err := h.handle(ctx, command)
	return o, errs.AsFailure(fnCompleteDelivery, err)
}

func (h CompleteDeliveryCommandHandler) handle(ctx context.Context, command CompleteDeliveryCommand) (*order.Order, error) {
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

	notOnRoute := errs.NewRefusalErrorWithStatus(fnCompleteDelivery, MsgOrderNotOnRoute, http.StatusConflict)
	if !o.HasDriver() || !o.DriverID().IsEqual(d.ID()) {
		return nil, notOnRoute
	}

	if err = o.ChangeDisposition(order.DispositionDelivered, h.policy); err != nil {
		return nil, err
	}
	if err = d.FinishOrder(o.ID()); err != nil {
		if errors.Is(err, driver.ErrOrderNotOnRoute) {
			return nil, notOnRoute
		}
		return nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
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
