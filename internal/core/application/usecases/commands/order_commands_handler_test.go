package commands_test

import (
	"net/http"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMenuItem(vendorID kernel.UUID, price int64) directory.MenuItem {
	return directory.MenuItem{ID: kernel.NewUUID(), VendorID: vendorID, Name: "Margherita", Price: decimal.NewFromInt(price)}
}

func TestAddOrderItemCommandHandler_Handle(t *testing.T) {
	t.Run("prices the item and raises the total", func(t *testing.T) {
		ctx := t.Context()
		vendorID := kernel.NewUUID()
		o := newOrder(t, vendorID)
		menuItem := newMenuItem(vendorID, 10)
		r := newRepos()

		mock.InOrder(
			r.uow.On("Begin", ctx).Return(nil).Once(),
			r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			r.directory.On("GetMenuItem", ctx, menuItem.ID).Return(menuItem, nil).Once(),
			r.orders.On("Update", ctx, o).Return(nil).Once(),
			r.uow.On("Commit", ctx).Return(nil).Once(),
			r.uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewAddOrderItemCommand(o.ID(), menuItem.ID,
			[]byte(`[{"name":"toppings","options":[{"name":"cheese","price":2},{"name":"olives","price":1}]}]`))
		require.NoError(t, err)

		res, err := commands.NewAddOrderItemCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(13).Equal(res.Item.Price()), res.Item.Price().String())
		assert.True(t, decimal.NewFromInt(13).Equal(res.Order.Total()), res.Order.Total().String())
		assert.Len(t, res.Order.Items(), 1)
		assert.Equal(t, menuItem.ID, res.Item.MenuItemID())
		r.assertExpectations(t)
	})

	t.Run("single modification object", func(t *testing.T) {
		ctx := t.Context()
		vendorID := kernel.NewUUID()
		o := newOrder(t, vendorID)
		menuItem := newMenuItem(vendorID, 4)
		r := newRepos()

		r.uow.On("Begin", ctx).Return(nil).Once()
		r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		r.directory.On("GetMenuItem", ctx, menuItem.ID).Return(menuItem, nil).Once()
		r.orders.On("Update", ctx, o).Return(nil).Once()
		r.uow.On("Commit", ctx).Return(nil).Once()
		r.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewAddOrderItemCommand(o.ID(), menuItem.ID, []byte(`{"options":[{"price":"0.5"}]}`))
		require.NoError(t, err)

		res, err := commands.NewAddOrderItemCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "4.5", res.Order.Total().String())
	})

	t.Run("closed order is refused", func(t *testing.T) {
		ctx := t.Context()
		vendorID := kernel.NewUUID()
		o := newOrder(t, vendorID)
		require.NoError(t, o.ChangeDisposition(order.DispositionCanceled, order.Permissive))
		menuItem := newMenuItem(vendorID, 10)
		r := newRepos()

		r.uow.On("Begin", ctx).Return(nil).Once()
		r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		r.directory.On("GetMenuItem", ctx, menuItem.ID).Return(menuItem, nil).Once()
		r.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewAddOrderItemCommand(o.ID(), menuItem.ID, nil)
		require.NoError(t, err)

		_, err = commands.NewAddOrderItemCommandHandler(factory).Handle(ctx, cmd)

		var refusal *errs.RefusalError
		require.ErrorAs(t, err, &refusal)
		assert.Equal(t, commands.MsgOrderNotMutable, refusal.Message)
		assert.Equal(t, http.StatusConflict, refusal.Status)
		assert.True(t, o.Total().IsZero())
		r.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("menu item of another vendor is refused", func(t *testing.T) {
		ctx := t.Context()
		o := newOrder(t, kernel.NewUUID())
		menuItem := newMenuItem(kernel.NewUUID(), 10)
		r := newRepos()

		r.uow.On("Begin", ctx).Return(nil).Once()
		r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		r.directory.On("GetMenuItem", ctx, menuItem.ID).Return(menuItem, nil).Once()
		r.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewAddOrderItemCommand(o.ID(), menuItem.ID, nil)
		require.NoError(t, err)

		_, err = commands.NewAddOrderItemCommandHandler(factory).Handle(ctx, cmd)

		var refusal *errs.RefusalError
		require.ErrorAs(t, err, &refusal)
		assert.Equal(t, commands.MsgMenuItemOtherVendor, refusal.Message)
		assert.Empty(t, o.Items())
	})

	t.Run("unknown menu item", func(t *testing.T) {
		ctx := t.Context()
		o := newOrder(t, kernel.NewUUID())
		menuItemID := kernel.NewUUID()
		r := newRepos()

		r.uow.On("Begin", ctx).Return(nil).Once()
		r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		r.directory.On("GetMenuItem", ctx, menuItemID).
			Return(directory.MenuItem{}, errs.NewObjectNotFoundError("menuItem", menuItemID.String())).Once()
		r.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewAddOrderItemCommand(o.ID(), menuItemID, nil)
		require.NoError(t, err)

		_, err = commands.NewAddOrderItemCommandHandler(factory).Handle(ctx, cmd)

		var failure *errs.FailureError
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, "addOrderItem", failure.FunctionName)
		var notFound *errs.ObjectNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestRemoveOrderItemCommandHandler_Handle(t *testing.T) {
	newOrderWithItem := func(t *testing.T) (*order.Order, *order.Item) {
		t.Helper()
		o := newOrder(t, kernel.NewUUID())
		item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(7), nil)
		require.NoError(t, err)
		require.NoError(t, o.AddItem(item))
		return o, item
	}

	t.Run("lowers the total", func(t *testing.T) {
		ctx := t.Context()
		o, item := newOrderWithItem(t)
		r := newRepos()

		mock.InOrder(
			r.uow.On("Begin", ctx).Return(nil).Once(),
			r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			r.orders.On("Update", ctx, o).Return(nil).Once(),
			r.uow.On("Commit", ctx).Return(nil).Once(),
			r.uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewRemoveOrderItemCommand(o.ID(), item.ID())
		require.NoError(t, err)

		res, err := commands.NewRemoveOrderItemCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Same(t, item, res.Item)
		assert.True(t, res.Order.Total().IsZero())
		assert.Empty(t, res.Order.Items())
		r.assertExpectations(t)
	})

	t.Run("unknown item", func(t *testing.T) {
		ctx := t.Context()
		o, _ := newOrderWithItem(t)
		r := newRepos()

		r.uow.On("Begin", ctx).Return(nil).Once()
		r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		r.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewRemoveOrderItemCommand(o.ID(), kernel.NewUUID())
		require.NoError(t, err)

		_, err = commands.NewRemoveOrderItemCommandHandler(factory).Handle(ctx, cmd)

		var failure *errs.FailureError
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, "removeOrderItem", failure.FunctionName)
		var notFound *errs.ObjectNotFoundError
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, "7", o.Total().String())
	})

	t.Run("delivered order is refused", func(t *testing.T) {
		ctx := t.Context()
		o, item := newOrderWithItem(t)
		require.NoError(t, o.ChangeDisposition(order.DispositionDelivered, order.Permissive))
		r := newRepos()

		r.uow.On("Begin", ctx).Return(nil).Once()
		r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		r.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewRemoveOrderItemCommand(o.ID(), item.ID())
		require.NoError(t, err)

		_, err = commands.NewRemoveOrderItemCommandHandler(factory).Handle(ctx, cmd)

		var refusal *errs.RefusalError
		require.ErrorAs(t, err, &refusal)
		assert.Equal(t, "removeOrderItem", refusal.FunctionName)
		assert.Len(t, o.Items(), 1)
	})
}

func TestChangeDispositionCommandHandler_Handle(t *testing.T) {
	t.Run("permissive accepts any target", func(t *testing.T) {
		ctx := t.Context()
		o := newOrder(t, kernel.NewUUID())
		require.NoError(t, o.ChangeDisposition(order.DispositionDelivered, order.Permissive))
		r := newRepos()

		r.uow.On("Begin", ctx).Return(nil).Once()
		r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		r.orders.On("Update", ctx, o).Return(nil).Once()
		r.uow.On("Commit", ctx).Return(nil).Once()
		r.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewChangeDispositionCommand(o.ID(), order.DispositionPaid)
		require.NoError(t, err)

		got, err := commands.NewChangeDispositionCommandHandler(factory, order.Permissive).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.DispositionPaid, got.Disposition())
		r.assertExpectations(t)
	})

	t.Run("strict refuses an edge outside the graph", func(t *testing.T) {
		ctx := t.Context()
		o := newOrder(t, kernel.NewUUID())
		require.NoError(t, o.ChangeDisposition(order.DispositionDelivered, order.Permissive))
		r := newRepos()

		r.uow.On("Begin", ctx).Return(nil).Once()
		r.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		r.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewChangeDispositionCommand(o.ID(), order.DispositionPaid)
		require.NoError(t, err)

		_, err = commands.NewChangeDispositionCommandHandler(factory, order.Strict).Handle(ctx, cmd)

		var refusal *errs.RefusalError
		require.ErrorAs(t, err, &refusal)
		assert.Equal(t, http.StatusConflict, refusal.Status)
		assert.Equal(t, "changeDisposition", refusal.FunctionName)
		assert.Equal(t, order.DispositionDelivered, o.Disposition())
		r.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown order", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()
		r := newRepos()

		r.uow.On("Begin", ctx).Return(nil).Once()
		r.orders.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once()
		r.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewChangeDispositionCommand(orderID, order.DispositionPaid)
		require.NoError(t, err)

		_, err = commands.NewChangeDispositionCommandHandler(factory, order.Permissive).Handle(ctx, cmd)

		var failure *errs.FailureError
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, "changeDisposition", failure.FunctionName)
	})
}
