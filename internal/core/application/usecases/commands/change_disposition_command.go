package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrChangeDispositionCommandIsNotConstructed = errors.New(
	"ChangeDispositionCommand must be created via NewChangeDispositionCommand constructor",
)

type ChangeDispositionCommand struct {
	orderID     kernel.UUID
	disposition order.Disposition
	guard       guard.ConstructorGuard
}

func NewChangeDispositionCommand(orderID kernel.UUID, disposition order.Disposition) (ChangeDispositionCommand, error) {
	if err := errors.Join(
		wrapRequired("orderID", orderID.Validate()),
		disposition.Validate(),
	); err != nil {
		return ChangeDispositionCommand{}, err
	}

	return ChangeDispositionCommand{
		orderID:     orderID,
		disposition: disposition,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeDispositionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeDispositionCommand) Disposition() order.Disposition {
	return c.disposition
}

func (c ChangeDispositionCommand) Validate() error {
	return c.guard.Validate(ErrChangeDispositionCommandIsNotConstructed)
}
