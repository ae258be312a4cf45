package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/pkg/errs"
)

type UpdateDriverPresenceCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewUpdateDriverPresenceCommandHandler(uowFactory DriverUoWFactory) UpdateDriverPresenceCommandHandler {
	return UpdateDriverPresenceCommandHandler{uowFactory: uowFactory}
}

func (h UpdateDriverPresenceCommandHandler) Handle(
	ctx context.Context,
	command UpdateDriverPresenceCommand,
) (_ *driver.Driver, err error) {
	defer errs.Recover(fnUpdateDriverPresence, &err)

	d, err := updateDriver(ctx, h.uowFactory, command.Validate, command.DriverID, func(d *driver.Driver) error {
		return d.UpdatePresence(command.Online(), command.Location())
	})
	return d, errs.AsFailure(fnUpdateDriverPresence, err)
}
