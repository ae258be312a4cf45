package postgres

import (
	"dispatch/internal/adapters/out/postgres/directoryrepo"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/messagerepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the repositories use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&directoryrepo.AddressDTO{},
		&directoryrepo.VendorDTO{},
		&directoryrepo.CustomerDTO{},
		&directoryrepo.MenuItemDTO{},
		&driverrepo.DriverDTO{},
		&driverrepo.DriverOrderDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&messagerepo.MessageDTO{},
	)
}
