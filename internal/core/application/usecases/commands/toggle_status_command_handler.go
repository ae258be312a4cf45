package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/pkg/errs"
)

// StatusActiveOrdersOnRoute is the status hint of the refusal to go INACTIVE
// with orders still on the route.
const StatusActiveOrdersOnRoute = 418

// ToggleStatusCommandHandler changes a driver's status and returns the new one.
type ToggleStatusCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewToggleStatusCommandHandler(uowFactory DriverUoWFactory) ToggleStatusCommandHandler {
	return ToggleStatusCommandHandler{uowFactory: uowFactory}
}

func (h ToggleStatusCommandHandler) Handle(ctx context.Context, command ToggleStatusCommand) (_ driver.Status, err error) {
	defer errs.Recover(fnToggleStatus, &err)

	status, err := h.handle(ctx, command)
	return status, errs.AsFailure(fnToggleStatus, err)
}

func (h ToggleStatusCommandHandler) handle(ctx context.Context, command ToggleStatusCommand) (driver.Status, error) {
	if err := command.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DriverRepository()
	d, err := repo.Get(ctx, command.DriverID())
	if err != nil {
		return "", err
	}

	if err = d.ChangeStatus(command.Status()); err != nil {
		if errors.Is(err, driver.ErrActiveOrdersOnRoute) {
			return "", errs.NewRefusalErrorWithStatus(fnToggleStatus, err.Error(), StatusActiveOrdersOnRoute)
		}
		return "", err
	}

	if err = repo.Update(ctx, d); err != nil {
		return "", err
	}
	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return d.Status(), nil
}
