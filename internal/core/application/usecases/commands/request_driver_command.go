package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRequestDriverCommandIsNotConstructed = errors.New(
	"RequestDriverCommand must be created via NewRequestDriverCommand constructor",
)

// RequestDriverCommand asks a driver to deliver an order on behalf of its vendor.
//
// Example:
//
//	cmd, err := NewRequestDriverCommand(driverID, orderID)
//	if err != nil {
//	    return err
//	}
//	msg, err := handler.Handle(ctx, cmd)
type RequestDriverCommand struct {
	driverID kernel.UUID
	orderID  kernel.UUID
	guard    guard.ConstructorGuard
}

func NewRequestDriverCommand(driverID kernel.UUID, orderID kernel.UUID) (RequestDriverCommand, error) {
	if err := errors.Join(
		wrapRequired("driverID", driverID.Validate()),
		wrapRequired("orderID", orderID.Validate()),
	); err != nil {
		return RequestDriverCommand{}, err
	}

	return RequestDriverCommand{
		driverID: driverID,
		orderID:  orderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RequestDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c RequestDriverCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RequestDriverCommand) Validate() error {
	return c.guard.Validate(ErrRequestDriverCommandIsNotConstructed)
}

// wrapRequired names the missing command parameter.
func wrapRequired(name string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(name, err)
}
