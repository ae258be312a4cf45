package ports

import (
	"context"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
)

// DirectoryRepository reads vendor, customer, address and menu records.
// Each getter returns *errs.ObjectNotFoundError when the record is absent.
type DirectoryRepository interface {
	GetVendor(ctx context.Context, id kernel.UUID) (*directory.Vendor, error)
	GetCustomer(ctx context.Context, id kernel.UUID) (*directory.Customer, error)
	GetAddress(ctx context.Context, id kernel.UUID) (directory.Address, error)
	GetMenuItem(ctx context.Context, id kernel.UUID) (directory.MenuItem, error)
}
