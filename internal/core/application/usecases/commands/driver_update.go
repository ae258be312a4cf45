package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// updateDriver runs the load, mutate, save cycle shared by the single-driver commands.
func updateDriver(
	ctx context.Context,
	uowFactory DriverUoWFactory,
	validate func() error,
	driverID func() kernel.UUID,
	mutate func(d *driver.Driver) error,
) (*driver.Driver, error) {
	if err := validate(); err != nil {
		return nil, err
	}

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DriverRepository()
	d, err := repo.Get(ctx, driverID())
	if err != nil {
		return nil, err
	}

	if err = mutate(d); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, d); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
