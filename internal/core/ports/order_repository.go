package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Items are stored with their order: Update inserts new items and deletes
// the ones no longer on the aggregate.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items. Returns *errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetMany retrieves the orders with the given ids, in no particular order.
	// Unknown ids are skipped.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// ClaimDriver sets the order's driver only if it has none yet, in a single
	// conditional write. It reports false when another driver got there first.
	ClaimDriver(ctx context.Context, orderID kernel.UUID, driverID kernel.UUID) (bool, error)
}
