package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrAcceptOrderCommandIsNotConstructed = errors.New(
		"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
	)
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
)

// AcceptOrderCommand is the driver's answer to a delivery request.
type AcceptOrderCommand struct {
	driverOrderTarget
	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(driverID, orderID kernel.UUID) (AcceptOrderCommand, error) {
	target, err := newDriverOrderTarget(driverID, orderID)
	if err != nil {
		return AcceptOrderCommand{}, err
	}
	return AcceptOrderCommand{driverOrderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// CompleteDeliveryCommand marks an order on the driver's route as delivered.
type CompleteDeliveryCommand struct {
	driverOrderTarget
	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(driverID, orderID kernel.UUID) (CompleteDeliveryCommand, error) {
	target, err := newDriverOrderTarget(driverID, orderID)
	if err != nil {
		return CompleteDeliveryCommand{}, err
	}
	return CompleteDeliveryCommand{driverOrderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}
