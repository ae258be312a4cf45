package order

import (
	"errors"
	"fmt"
	"slices"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsNotMutable is returned when items change on a DELIVERED or CANCELED order.
	ErrOrderIsNotMutable = errors.New("order can no longer be changed")

	// ErrDriverAlreadyAssigned is returned when an order that carries a driver is assigned again.
	ErrDriverAlreadyAssigned = errors.New("order already has a driver assigned")
)

// Order is a customer's purchase from one vendor. It is the aggregate root that owns
// its items and keeps the running total consistent with them.
//
// Order follows these invariants:
//   - Must have a valid id, customer, vendor and at least one delivery address
//   - total equals the sum of item prices after every successful mutation
//   - tip is never negative
//   - at most one driver is assigned
//   - items change only while the disposition is mutable
type Order struct {
	id          kernel.UUID
	customerID  kernel.UUID
	vendorID    kernel.UUID
	addressIDs  []kernel.UUID
	driverID    *kernel.UUID
	fulfillment Fulfillment
	items       []*Item
	total       decimal.Decimal
	tip         decimal.Decimal
	amountPaid  decimal.Decimal
	chargeID    string
	disposition Disposition
	guard       guard.ConstructorGuard
}

// NewOrder starts an order at checkout: NEW disposition, no items, zero total.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, vendorID,
//	    []kernel.UUID{addressID}, order.FulfillmentDelivery, decimal.NewFromInt(5))
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	addressIDs []kernel.UUID,
	fulfillment Fulfillment,
	tip decimal.Decimal,
) (*Order, error) {
	o := &Order{
		disposition: DispositionNew,
		total:       decimal.Zero,
		amountPaid:  decimal.Zero,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setVendorID(vendorID),
		o.setAddressIDs(addressIDs),
		o.setFulfillment(fulfillment),
		o.setTip(tip),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. The total is rebuilt
// from the items so the ledger invariant holds for every loaded aggregate.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	addressIDs []kernel.UUID,
	driverID *kernel.UUID,
	fulfillment Fulfillment,
	items []*Item,
	tip decimal.Decimal,
	amountPaid decimal.Decimal,
	chargeID string,
	disposition Disposition,
) (*Order, error) {
	o := &Order{
		total:      decimal.Zero,
		amountPaid: amountPaid,
		chargeID:   chargeID,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setVendorID(vendorID),
		o.setAddressIDs(addressIDs),
		o.setDriverID(driverID),
		o.setFulfillment(fulfillment),
		o.setTip(tip),
		o.setDisposition(disposition),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) VendorID() kernel.UUID {
	return o.vendorID
}

// AddressIDs returns a copy of the delivery address references.
func (o *Order) AddressIDs() []kernel.UUID {
	return slices.Clone(o.addressIDs)
}

// DeliveryAddressID is the primary (first) delivery address.
func (o *Order) DeliveryAddressID() kernel.UUID {
	return o.addressIDs[0]
}

// DriverID returns the assigned driver, nil when unassigned.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

func (o *Order) HasDriver() bool {
	return o.driverID != nil
}

func (o *Order) Fulfillment() Fulfillment {
	return o.fulfillment
}

// Items returns a copy of the order lines.
func (o *Order) Items() []*Item {
	return slices.Clone(o.items)
}

func (o *Order) Total() decimal.Decimal {
	return o.total
}

func (o *Order) Tip() decimal.Decimal {
	return o.tip
}

func (o *Order) AmountPaid() decimal.Decimal {
	return o.amountPaid
}

func (o *Order) ChargeID() string {
	return o.chargeID
}

func (o *Order) Disposition() Disposition {
	return o.disposition
}

// AddItem appends item and adds its price to the total.
func (o *Order) AddItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if !o.disposition.IsMutable() {
		return ErrOrderIsNotMutable
	}
	if o.findItem(item.ID()) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause("item", fmt.Errorf("item %s is already on the order", item.ID()))
	}

	o.items = append(o.items, item)
	o.total = o.total.Add(item.Price())
	return nil
}

// RemoveItem drops the item with itemID and subtracts its price from the total.
// The removed item is returned so the caller can delete its record.
func (o *Order) RemoveItem(itemID kernel.UUID) (*Item, error) {
	if !o.disposition.IsMutable() {
		return nil, ErrOrderIsNotMutable
	}

	idx := o.findItem(itemID)
	if idx < 0 {
		return nil, errs.NewObjectNotFoundError("orderItem", itemID.String())
	}

	removed := o.items[idx]
	o.items = slices.Delete(o.items, idx, idx+1)
	o.total = o.total.Sub(removed.Price())
	return removed, nil
}

// AssignDriver links the order to a driver. An order carries at most one driver.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.driverID != nil {
		return ErrDriverAlreadyAssigned
	}

	o.driverID = &driverID
	return nil
}

// ChangeDisposition moves the order to next after asking policy whether the edge is allowed.
func (o *Order) ChangeDisposition(next Disposition, policy TransitionPolicy) error {
	if err := policy.Check(o.disposition, next); err != nil {
		return err
	}

	o.disposition = next
	return nil
}

func (o *Order) findItem(itemID kernel.UUID) int {
	return slices.IndexFunc(o.items, func(i *Item) bool {
		return i.ID().IsEqual(itemID)
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setVendorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vendor", err)
	}
	o.vendorID = id
	return nil
}

func (o *Order) setAddressIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("delivery address")
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("delivery address", err)
		}
	}
	o.addressIDs = slices.Clone(ids)
	return nil
}

func (o *Order) setDriverID(id *kernel.UUID) error {
	if id == nil {
		o.driverID = nil
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	driverID := *id
	o.driverID = &driverID
	return nil
}

func (o *Order) setFulfillment(f Fulfillment) error {
	if f == "" {
		f = FulfillmentPickup
	}
	if err := f.Validate(); err != nil {
		return err
	}
	o.fulfillment = f
	return nil
}

func (o *Order) setTip(tip decimal.Decimal) error {
	if tip.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("tip is invalid", fmt.Errorf("%s is negative", tip.String()))
	}
	o.tip = tip
	return nil
}

func (o *Order) setDisposition(d Disposition) error {
	if err := d.Validate(); err != nil {
		return err
	}
	o.disposition = d
	return nil
}

func (o *Order) setItems(items []*Item) error {
	o.items = make([]*Item, 0, len(items))
	o.total = decimal.Zero
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		o.items = append(o.items, item)
		o.total = o.total.Add(item.Price())
	}
	return nil
}
