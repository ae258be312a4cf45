package directoryrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDirectoryRepository implements ports.DirectoryRepository. It is read-only,
// so unlike the aggregate repositories it tracks nothing.
type GormDirectoryRepository struct {
	db *gorm.DB
}

func NewGormDirectoryRepository(db *gorm.DB) *GormDirectoryRepository {
	return &GormDirectoryRepository{db: db}
}

func (r *GormDirectoryRepository) GetVendor(ctx context.Context, id kernel.UUID) (*directory.Vendor, error) {
	var dto VendorDTO
	if err := r.first(ctx, &dto, "vendor", id); err != nil {
		return nil, err
	}
	return vendorToDomain(dto)
}

func (r *GormDirectoryRepository) GetCustomer(ctx context.Context, id kernel.UUID) (*directory.Customer, error) {
	var dto CustomerDTO
	if err := r.first(ctx, &dto, "customer", id); err != nil {
		return nil, err
	}
	return customerToDomain(dto)
}

func (r *GormDirectoryRepository) GetAddress(ctx context.Context, id kernel.UUID) (directory.Address, error) {
	var dto AddressDTO
	if err := r.first(ctx, &dto, "address", id); err != nil {
		return directory.Address{}, err
	}
	return addressToDomain(dto)
}

func (r *GormDirectoryRepository) GetMenuItem(ctx context.Context, id kernel.UUID) (directory.MenuItem, error) {
	var dto MenuItemDTO
	if err := r.first(ctx, &dto, "menuItem", id); err != nil {
		return directory.MenuItem{}, err
	}
	return menuItemToDomain(dto)
}

func (r *GormDirectoryRepository) first(ctx context.Context, dest any, name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).First(dest, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError(name, id.String())
		}
		return err
	}
	return nil
}
