package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Fulfillment is how the order reaches the customer.
type Fulfillment string

const (
	FulfillmentDelivery Fulfillment = "DELIVERY"
	FulfillmentPickup   Fulfillment = "PICKUP"
)

func (f Fulfillment) Validate() error {
	if f != FulfillmentDelivery && f != FulfillmentPickup {
		return errs.NewValueIsInvalidErrorWithCause("fulfillment is invalid", fmt.Errorf("%q is not a valid fulfillment", string(f)))
	}
	return nil
}

func (f Fulfillment) String() string {
	return string(f)
}
