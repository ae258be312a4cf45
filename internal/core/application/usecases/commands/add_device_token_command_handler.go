package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/pkg/errs"
)

// AddDeviceTokenCommandHandler adds the token to the driver's device list,
// moving it to the end if it was already registered.
type AddDeviceTokenCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewAddDeviceTokenCommandHandler(uowFactory DriverUoWFactory) AddDeviceTokenCommandHandler {
	return AddDeviceTokenCommandHandler{uowFactory: uowFactory}
}

func (h AddDeviceTokenCommandHandler) Handle(
	ctx context.Context,
	command AddDeviceTokenCommand,
) (_ *driver.Driver, err error) {
	defer errs.Recover(fnAddDeviceToken, &err)

	d, err := updateDriver(ctx, h.uowFactory, command.Validate, command.DriverID, func(d *driver.Driver) error {
		return d.AddDeviceToken(command.Token())
	})
	return d, errs.AsFailure(fnAddDeviceToken, err)
}
