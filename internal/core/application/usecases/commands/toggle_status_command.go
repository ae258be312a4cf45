package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrToggleStatusCommandIsNotConstructed = errors.New(
	"ToggleStatusCommand must be created via NewToggleStatusCommand constructor",
)

// ToggleStatusCommand switches a driver between ACTIVE and INACTIVE.
type ToggleStatusCommand struct {
	driverID kernel.UUID
	status   driver.Status
	guard    guard.ConstructorGuard
}

func NewToggleStatusCommand(driverID kernel.UUID, status driver.Status) (ToggleStatusCommand, error) {
	if err := errors.Join(
		wrapRequired("driverID", driverID.Validate()),
		status.Validate(),
	); err != nil {
		return ToggleStatusCommand{}, err
	}

	return ToggleStatusCommand{
		driverID: driverID,
		status:   status,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ToggleStatusCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c ToggleStatusCommand) Status() driver.Status {
	return c.status
}

func (c ToggleStatusCommand) Validate() error {
	return c.guard.Validate(ErrToggleStatusCommandIsNotConstructed)
}
