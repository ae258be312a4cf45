// Package driverrepo persists the driver aggregate. A driver row carries identity,
// presence and preferences; the route and the order history live in driver_orders.
package driverrepo

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DriverDTO is the drivers table row.
type DriverDTO struct {
	ID                      uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Email                   string           `gorm:"type:varchar(64);not null;uniqueIndex"`
	PasswordHash            string           `gorm:"type:varchar(128);not null"`
	EmailConfirmed          bool             `gorm:"not null;default:false"`
	Online                  bool             `gorm:"not null;default:false"`
	Latitude                *float64         `gorm:"type:double precision"`
	Longitude               *float64         `gorm:"type:double precision"`
	Status                  string           `gorm:"type:varchar(16);not null;default:INACTIVE;index"`
	DeviceTokens            pq.StringArray   `gorm:"type:text[]"`
	EmailPreferences        map[string]bool  `gorm:"serializer:json;type:jsonb"`
	NotificationPreferences map[string]bool  `gorm:"serializer:json;type:jsonb"`
	Orders                  []DriverOrderDTO `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (DriverDTO) TableName() string {
	return "drivers"
}

// DriverOrderDTO links a driver to an order on its route (Active) or in its history.
type DriverOrderDTO struct {
	DriverID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Active   bool      `gorm:"not null;index"`
	Position int       `gorm:"not null"`
}

func (DriverOrderDTO) TableName() string {
	return "driver_orders"
}

func fromDomain(d *driver.Driver) DriverDTO {
	id := d.ID().Bytes()

	dto := DriverDTO{
		ID:                      id,
		Email:                   d.Email(),
		PasswordHash:            d.PasswordHash(),
		EmailConfirmed:          d.EmailConfirmed(),
		Online:                  d.Online(),
		Status:                  d.Status().String(),
		DeviceTokens:            pq.StringArray(d.DeviceTokens()),
		EmailPreferences:        d.EmailPreferences().Map(),
		NotificationPreferences: d.NotificationPreferences().Map(),
	}

	if loc, ok := d.Location(); ok {
		lat, lng := loc.Latitude(), loc.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}

	history := d.OrderHistory()
	route := d.Orders()
	dto.Orders = make([]DriverOrderDTO, 0, len(history)+len(route))
	for i, orderID := range history {
		dto.Orders = append(dto.Orders, DriverOrderDTO{DriverID: id, OrderID: orderID.Bytes(), Position: i})
	}
	for i, orderID := range route {
		dto.Orders = append(dto.Orders, DriverOrderDTO{DriverID: id, OrderID: orderID.Bytes(), Active: true, Position: i})
	}

	return dto
}

// toDomain expects dto.Orders sorted by position.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, locErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	var route, history []kernel.UUID
	for _, link := range dto.Orders {
		orderID, linkErr := kernel.UUIDFromBytes(link.OrderID[:])
		if linkErr != nil {
			return nil, linkErr
		}
		if link.Active {
			route = append(route, orderID)
		} else {
			history = append(history, orderID)
		}
	}

	return driver.RestoreDriver(
		id,
		dto.Email,
		dto.PasswordHash,
		dto.EmailConfirmed,
		dto.Online,
		location,
		driver.Status(dto.Status),
		dto.DeviceTokens,
		kernel.NewPreferences(dto.EmailPreferences),
		kernel.NewPreferences(dto.NotificationPreferences),
		route,
		history,
	)
}
