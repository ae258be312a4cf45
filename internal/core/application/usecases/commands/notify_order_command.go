package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrNotifyOrderReadyCommandIsNotConstructed = errors.New(
		"NotifyOrderReadyCommand must be created via NewNotifyOrderReadyCommand constructor",
	)
	ErrNotifyOrderCanceledCommandIsNotConstructed = errors.New(
		"NotifyOrderCanceledCommand must be created via NewNotifyOrderCanceledCommand constructor",
	)
)

type driverOrderTarget struct {
	driverID kernel.UUID
	orderID  kernel.UUID
}

func newDriverOrderTarget(driverID, orderID kernel.UUID) (driverOrderTarget, error) {
	if err := errors.Join(
		wrapRequired("driverID", driverID.Validate()),
		wrapRequired("orderID", orderID.Validate()),
	); err != nil {
		return driverOrderTarget{}, err
	}
	return driverOrderTarget{driverID: driverID, orderID: orderID}, nil
}

func (t driverOrderTarget) DriverID() kernel.UUID {
	return t.driverID
}

func (t driverOrderTarget) OrderID() kernel.UUID {
	return t.orderID
}

// NotifyOrderReadyCommand tells a driver that the vendor has the order ready for pickup.
type NotifyOrderReadyCommand struct {
	driverOrderTarget
	guard guard.ConstructorGuard
}

func NewNotifyOrderReadyCommand(driverID, orderID kernel.UUID) (NotifyOrderReadyCommand, error) {
	target, err := newDriverOrderTarget(driverID, orderID)
	if err != nil {
		return NotifyOrderReadyCommand{}, err
	}
	return NotifyOrderReadyCommand{driverOrderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c NotifyOrderReadyCommand) Validate() error {
	return c.guard.Validate(ErrNotifyOrderReadyCommandIsNotConstructed)
}

// NotifyOrderCanceledCommand tells a driver that the vendor canceled the order.
type NotifyOrderCanceledCommand struct {
	driverOrderTarget
	guard guard.ConstructorGuard
}

func NewNotifyOrderCanceledCommand(driverID, orderID kernel.UUID) (NotifyOrderCanceledCommand, error) {
	target, err := newDriverOrderTarget(driverID, orderID)
	if err != nil {
		return NotifyOrderCanceledCommand{}, err
	}
	return NotifyOrderCanceledCommand{driverOrderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c NotifyOrderCanceledCommand) Validate() error {
	return c.guard.Validate(ErrNotifyOrderCanceledCommandIsNotConstructed)
}
