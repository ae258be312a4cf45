// Package ports defines the contracts between the dispatch core and its
// infrastructure: repositories, the unit of work, and the mail, push and
// credential transports.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver. A duplicate email is reported as a
	// *errs.RefusalError with status 409.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver, including its route and history.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver by id. Returns *errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetForUpdate is Get with the driver row locked until the surrounding
	// transaction ends. Concurrent claims on the same driver queue behind it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetByEmail retrieves a driver by email. Returns *errs.ObjectNotFoundError when absent.
	GetByEmail(ctx context.Context, email string) (*driver.Driver, error)
}
