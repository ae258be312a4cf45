package commands

import (
	"context"
	"errors"
	"net/http"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

const (
	MsgOrderNotMutable     = "Order can no longer be changed."
	MsgMenuItemOtherVendor  = "Menu item is not sold by this order's vendor."
)

// OrderItemResult is the order after an item ledger change together with the
// item that was added or removed.
type OrderItemResult struct {
	Order *order.Order
	Item  *order.Item
}

// AddOrderItemCommandHandler prices a menu item and appends it to an order.
type AddOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAddOrderItemCommandHandler(uowFactory OrderUoWFactory) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{uowFactory: uowFactory}
}

func (h AddOrderItemCommandHandler) Handle(
	ctx context.Context,
	command AddOrderItemCommand,
) (_ OrderItemResult, err error) {
	defer errs.Recover(fnAddOrderItem, &err)

	res, err := h.handle(ctx, command)
	return res, errs.AsFailure(fnAddOrderItem, err)
}

func (h AddOrderItemCommandHandler) handle(ctx context.Context, command AddOrderItemCommand) (OrderItemResult, error) {
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

	menuItem, err := uow.DirectoryRepository().GetMenuItem(ctx, command.MenuItemID())
	if err != nil {
		return OrderItemResult{}, err
	}
	if !menuItem.VendorID.IsEqual(o.VendorID()) {
		return OrderItemResult{}, errs.NewRefusalErrorWithStatus(fnAddOrderItem, MsgMenuItemOtherVendor, http.StatusConflict)
	}

	item, err := order.NewItem(kernel.NewUUID(), menuItem.ID, menuItem.Price, command.Modifications())
	if err != nil {
		return OrderItemResult{}, err
	}

	if err = o.AddItem(item); err != nil {
		return OrderItemResult{}, ledgerRefusal(fnAddOrderItem, err)
	}

	if err = repo.Update(ctx, o); err != nil {
		return OrderItemResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return OrderItemResult{}, err
	}

	return OrderItemResult{Order: o, Item: item}, nil
}

// ledgerRefusal turns a change on a closed order into a refusal for the caller.
func ledgerRefusal(fn string, err error) error {
	if errors.Is(err, order.ErrOrderIsNotMutable) {
		return errs.NewRefusalErrorWithStatus(fn, MsgOrderNotMutable, http.StatusConflict)
	}
	return err
}
