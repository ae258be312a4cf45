package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newDriver(t *testing.T, status driver.Status) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), "d@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, d.ChangeStatus(status))
	return d
}

func newOrder(t *testing.T, vendorID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), vendorID,
		[]kernel.UUID{kernel.NewUUID()}, order.FulfillmentDelivery, decimal.NewFromInt(5))
	require.NoError(t, err)
	return o
}

func newVendor(prefs map[string]bool, emailPrefs map[string]bool) *directory.Vendor {
	return directory.NewVendor(kernel.NewUUID(), "Pizza Place", kernel.NewUUID(), "v@example.com",
		kernel.NewPreferences(emailPrefs), kernel.NewPreferences(prefs), nil)
}
