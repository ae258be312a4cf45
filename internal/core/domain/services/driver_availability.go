package services

import (
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// Refusal messages shown to the vendor when a driver cannot be offered an order.
const (
	MsgOrderAlreadyAssigned = "Order already has a driver assigned."
	MsgAnotherVendorRoute   = "Driver is currently delivering for another vendor."
	MsgDriverOffline        = "Driver is offline."
)

// DriverAvailability decides whether a driver may be offered an order.
//
// The checks run in a fixed order and the first failing one wins:
//  1. the order must not carry a driver already
//  2. every order on the driver's route must belong to the order's vendor
//  3. the driver must be ACTIVE
//
// Each failure is a *errs.RefusalError, never a system failure.
//
// Example:
//
//	routeOrders, _ := orderRepo.GetMany(ctx, d.Orders())
//	if err := services.NewDriverAvailability().Check(d, o, routeOrders); err != nil {
//	    return err // refusal, show err.Message to the vendor
//	}
type DriverAvailability struct{}

func NewDriverAvailability() DriverAvailability {
	return DriverAvailability{}
}

// Check returns nil when d may be offered o. routeOrders are the loaded orders
// referenced by d.Orders(); the caller loads them only when the route is non-empty.
func (DriverAvailability) Check(d *driver.Driver, o *order.Order, routeOrders []*order.Order) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}

	if o.HasDriver() {
		return errs.NewRefusalError(MsgOrderAlreadyAssigned)
	}

	for _, routeOrder := range routeOrders {
		if routeOrder.IsEqual(o) {
			continue
		}
		if !routeOrder.VendorID().IsEqual(o.VendorID()) {
			return errs.NewRefusalError(MsgAnotherVendorRoute)
		}
	}

	if !d.Status().IsActive() {
		return errs.NewRefusalError(MsgDriverOffline)
	}

	return nil
}
