package commands

import (
	"context"

	"dispatch/internal/pkg/errs"
)

// RemoveOrderItemCommandHandler removes an item from an order and lowers the total by its price.
// The item row is deleted by the order repository when the order is updated.
type RemoveOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRemoveOrderItemCommandHandler(uowFactory OrderUoWFactory) RemoveOrderItemCommandHandler {
	return RemoveOrderItemCommandHandler{uowFactory: uowFactory}
}

func (h RemoveOrderItemCommandHandler) Handle(
	ctx context.Context,
	command RemoveOrderItemCommand,
) (_ OrderItemResult, err error) {
	defer errs.Recover(fnRemoveOrderItem, &err)

	res, err := h.handle(ctx, command)
	return res, errs.AsFailure(fnRemoveOrderItem, err)
}

func (h RemoveOrderItemCommandHandler) handle(ctx context.Context, command RemoveOrderItemCommand) (OrderItemResult, error) {
	if err := command.Validate(); err != nil {
		return OrderItemResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderItemResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, command.OrderID())
	if err != nil {
		return OrderItemResult{}, err
	}

	removed, err := o.RemoveItem(command.ItemID())
	if err != nil {
		return OrderItemResult{}, ledgerRefusal(fnRemoveOrderItem, err)
	}

	if err = repo.Update(ctx, o); err != nil {
		return OrderItemResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return OrderItemResult{}, err
	}

	return OrderItemResult{Order: o, Item: removed}, nil
}
