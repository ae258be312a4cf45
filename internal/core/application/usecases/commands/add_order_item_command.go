package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrAddOrderItemCommandIsNotConstructed = errors.New(
	"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
)

// AddOrderItemCommand adds one menu item, with its selected modifications, to an order.
// Modifications arrive as raw JSON: a single group object or a list of groups.
type AddOrderItemCommand struct {
	orderID       kernel.UUID
	menuItemID    kernel.UUID
	modifications []order.Modification
	guard         guard.ConstructorGuard
}

func NewAddOrderItemCommand(
	orderID kernel.UUID,
	menuItemID kernel.UUID,
	rawModifications []byte,
) (AddOrderItemCommand, error) {
	modifications, modErr := order.ParseModifications(rawModifications)
	if err := errors.Join(
		wrapRequired("orderID", orderID.Validate()),
		wrapRequired("menuItemID", menuItemID.Validate()),
		modErr,
	); err != nil {
		return AddOrderItemCommand{}, err
	}

	return AddOrderItemCommand{
		orderID:       orderID,
		menuItemID:    menuItemID,
		modifications: modifications,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c AddOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AddOrderItemCommand) MenuItemID() kernel.UUID {
	return c.menuItemID
}

func (c AddOrderItemCommand) Modifications() []order.Modification {
	return c.modifications
}

func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}
