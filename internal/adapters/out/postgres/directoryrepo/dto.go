// Package directoryrepo reads the vendor, customer, address and menu tables.
// The tables are written by the marketplace services that own them.
package directoryrepo

import (
	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type AddressDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Street string    `gorm:"type:varchar(255);not null"`
	Unit   string    `gorm:"type:varchar(64)"`
	City   string    `gorm:"type:varchar(128);not null"`
	State  string    `gorm:"type:varchar(64)"`
	Zip    string    `gorm:"type:varchar(16)"`
}

func (AddressDTO) TableName() string {
	return "addresses"
}

type VendorDTO struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BusinessName            string          `gorm:"type:varchar(255);not null"`
	AddressID               uuid.UUID       `gorm:"type:uuid"`
	Email                   string          `gorm:"type:varchar(64)"`
	EmailPreferences        map[string]bool `gorm:"serializer:json;type:jsonb"`
	NotificationPreferences map[string]bool `gorm:"serializer:json;type:jsonb"`
	DeviceTokens            pq.StringArray  `gorm:"type:text[]"`
}

func (VendorDTO) TableName() string {
	return "vendors"
}

type CustomerDTO struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FirstName               string          `gorm:"type:varchar(128)"`
	LastName                string          `gorm:"type:varchar(128)"`
	Email                   string          `gorm:"type:varchar(64)"`
	EmailPreferences        map[string]bool `gorm:"serializer:json;type:jsonb"`
	NotificationPreferences map[string]bool `gorm:"serializer:json;type:jsonb"`
	DeviceTokens            pq.StringArray  `gorm:"type:text[]"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type MenuItemDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VendorID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name     string          `gorm:"type:varchar(255);not null"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func addressToDomain(dto AddressDTO) (directory.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return directory.Address{}, err
	}
	return directory.Address{
		ID:     id,
		Street: dto.Street,
		Unit:   dto.Unit,
		City:   dto.City,
		State:  dto.State,
		Zip:    dto.Zip,
	}, nil
}

func vendorToDomain(dto VendorDTO) (*directory.Vendor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	// vendors without an address keep a zero AddressID
	addressID, _ := kernel.UUIDFromBytes(dto.AddressID[:])

	return directory.NewVendor(
		id,
		dto.BusinessName,
		addressID,
		dto.Email,
		kernel.NewPreferences(dto.EmailPreferences),
		kernel.NewPreferences(dto.NotificationPreferences),
		dto.DeviceTokens,
	), nil
}

func customerToDomain(dto CustomerDTO) (*directory.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return directory.NewCustomer(
		id,
		dto.FirstName,
		dto.LastName,
		dto.Email,
		kernel.NewPreferences(dto.EmailPreferences),
		kernel.NewPreferences(dto.NotificationPreferences),
		dto.DeviceTokens,
	), nil
}

func menuItemToDomain(dto MenuItemDTO) (directory.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return directory.MenuItem{}, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return directory.MenuItem{}, err
	}
	return directory.MenuItem{ID: id, VendorID: vendorID, Name: dto.Name, Price: dto.Price}, nil
}
