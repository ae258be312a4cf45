package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDriverPresenceCommandIsNotConstructed = errors.New(
	"UpdateDriverPresenceCommand must be created via NewUpdateDriverPresenceCommand constructor",
)

// UpdateDriverPresenceCommand reports whether the driver app is online and where the driver is.
type UpdateDriverPresenceCommand struct {
	driverID kernel.UUID
	online   bool
	location kernel.GeoPoint
	guard    guard.ConstructorGuard
}

func NewUpdateDriverPresenceCommand(
	driverID kernel.UUID,
	online bool,
	latitude, longitude float64,
) (UpdateDriverPresenceCommand, error) {
	location, locErr := kernel.NewGeoPoint(latitude, longitude)
	if err := errors.Join(wrapRequired("driverID", driverID.Validate()), locErr); err != nil {
		return UpdateDriverPresenceCommand{}, err
	}

	return UpdateDriverPresenceCommand{
		driverID: driverID,
		online:   online,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDriverPresenceCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c UpdateDriverPresenceCommand) Online() bool {
	return c.online
}

func (c UpdateDriverPresenceCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c UpdateDriverPresenceCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverPresenceCommandIsNotConstructed)
}
