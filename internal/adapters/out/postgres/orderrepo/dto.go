// Package orderrepo persists the order aggregate together with its items.
package orderrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders table row. Address ids are kept in a text[] column
// in their original order; the first is the delivery address.
type OrderDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	AddressIDs  pq.StringArray  `gorm:"type:text[];not null"`
	DriverID    *uuid.UUID      `gorm:"type:uuid;index"`
	Fulfillment string          `gorm:"type:varchar(16);not null"`
	Total       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tip         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	AmountPaid  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ChargeID    string          `gorm:"type:varchar(255)"`
	Disposition string          `gorm:"type:varchar(16);not null;index"`
	Items       []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order_items row. Modifications are stored normalized, as a JSON list.
type OrderItemDTO struct {
	ID            uuid.UUID            `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	MenuItemID    uuid.UUID            `gorm:"type:uuid;not null"`
	Position      int                  `gorm:"not null"`
	BasePrice     decimal.Decimal      `gorm:"type:numeric(12,2);not null"`
	Price         decimal.Decimal      `gorm:"type:numeric(12,2);not null"`
	Modifications []order.Modification `gorm:"serializer:json;type:jsonb"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	var driverID *uuid.UUID
	if id := o.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	addressIDs := make(pq.StringArray, 0, len(o.AddressIDs()))
	for _, id := range o.AddressIDs() {
		addressIDs = append(addressIDs, id.String())
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:            item.ID().Bytes(),
			OrderID:       orderID,
			MenuItemID:    item.MenuItemID().Bytes(),
			Position:      i,
			BasePrice:     item.BasePrice(),
			Price:         item.Price(),
			Modifications: item.Modifications(),
		})
	}

	return OrderDTO{
		ID:          orderID,
		CustomerID:  o.CustomerID().Bytes(),
		VendorID:    o.VendorID().Bytes(),
		AddressIDs:  addressIDs,
		DriverID:    driverID,
		Fulfillment: o.Fulfillment().String(),
		Total:       o.Total(),
		Tip:         o.Tip(),
		AmountPaid:  o.AmountPaid(),
		ChargeID:    o.ChargeID(),
		Disposition: o.Disposition().String(),
		Items:       items,
	}
}

// toDomain expects dto.Items sorted by position. The stored total is ignored,
// RestoreOrder recomputes it from the items.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	addressIDs := make([]kernel.UUID, 0, len(dto.AddressIDs))
	for _, raw := range dto.AddressIDs {
		addressID, addrErr := kernel.UUIDFromString(raw)
		if addrErr != nil {
			return nil, addrErr
		}
		addressIDs = append(addressIDs, addressID)
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		customerID,
		vendorID,
		addressIDs,
		driverID,
		order.Fulfillment(dto.Fulfillment),
		items,
		dto.Tip,
		dto.AmountPaid,
		dto.ChargeID,
		order.Disposition(dto.Disposition),
	)
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, menuItemID, dto.BasePrice, dto.Modifications)
}
