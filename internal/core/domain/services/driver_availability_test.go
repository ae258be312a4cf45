package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireRefusal(t *testing.T, err error, message string) {
	t.Helper()
	var refusal *errs.RefusalError
	require.ErrorAs(t, err, &refusal)
	assert.Equal(t, message, refusal.Message)
}

func TestDriverAvailability_Check(t *testing.T) {
	availability := services.NewDriverAvailability()
	vendorID := kernel.NewUUID()

	t.Run("active driver with empty route is available", func(t *testing.T) {
		d := newDriver(t, driver.StatusActive)

		require.NoError(t, availability.Check(d, newOrder(t, vendorID), nil))
	})

	t.Run("same vendor route is available", func(t *testing.T) {
		d := newDriver(t, driver.StatusActive)
		routeOrder := newOrder(t, vendorID)
		require.NoError(t, d.TakeOrder(routeOrder.ID()))

		require.NoError(t, availability.Check(d, newOrder(t, vendorID), []*order.Order{routeOrder}))
	})

	t.Run("order with driver is refused first", func(t *testing.T) {
		d := newDriver(t, driver.StatusInactive)
		o := newOrder(t, vendorID)
		require.NoError(t, o.AssignDriver(kernel.NewUUID()))

		err := availability.Check(d, o, []*order.Order{newOrder(t, kernel.NewUUID())})

		requireRefusal(t, err, services.MsgOrderAlreadyAssigned)
	})

	t.Run("another vendor route is refused before offline", func(t *testing.T) {
		d := newDriver(t, driver.StatusActive)
		routeOrder := newOrder(t, kernel.NewUUID())
		require.NoError(t, d.TakeOrder(routeOrder.ID()))
		require.NoError(t, d.FinishOrder(routeOrder.ID()))
		require.NoError(t, d.ChangeStatus(driver.StatusInactive))

		err := availability.Check(d, newOrder(t, vendorID), []*order.Order{routeOrder})

		requireRefusal(t, err, services.MsgAnotherVendorRoute)
	})

	t.Run("inactive driver is offline", func(t *testing.T) {
		d := newDriver(t, driver.StatusInactive)

		err := availability.Check(d, newOrder(t, vendorID), nil)

		requireRefusal(t, err, services.MsgDriverOffline)
		assert.True(t, errs.IsRefusal(err))
	})

	t.Run("unconstructed inputs fail validation", func(t *testing.T) {
		err := availability.Check(&driver.Driver{}, newOrder(t, vendorID), nil)

		require.ErrorIs(t, err, driver.ErrDriverIsNotConstructed)
		assert.False(t, errs.IsRefusal(err))
	})
}
