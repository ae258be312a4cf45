package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAddDeviceTokenCommandIsNotConstructed = errors.New(
	"AddDeviceTokenCommand must be created via NewAddDeviceTokenCommand constructor",
)

// AddDeviceTokenCommand registers a push token for a driver's device.
type AddDeviceTokenCommand struct {
	driverID kernel.UUID
	token    string
	guard    guard.ConstructorGuard
}

func NewAddDeviceTokenCommand(driverID kernel.UUID, token string) (AddDeviceTokenCommand, error) {
	var tokenErr error
	if strings.TrimSpace(token) == "" {
		tokenErr = errs.NewValueIsRequiredError("token")
	}
	if err := errors.Join(wrapRequired("driverID", driverID.Validate()), tokenErr); err != nil {
		return AddDeviceTokenCommand{}, err
	}

	return AddDeviceTokenCommand{
		driverID: driverID,
		token:    token,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AddDeviceTokenCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c AddDeviceTokenCommand) Token() string {
	return c.token
}

func (c AddDeviceTokenCommand) Validate() error {
	return c.guard.Validate(ErrAddDeviceTokenCommandIsNotConstructed)
}
