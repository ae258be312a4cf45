package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/notifier"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/message"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetByEmail(ctx context.Context, email string) (*driver.Driver, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ClaimDriver(ctx context.Context, orderID kernel.UUID, driverID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID, driverID)
	return args.Bool(0), args.Error(1)
}

type MockMessageRepository struct{ mock.Mock }

func (m *MockMessageRepository) Add(ctx context.Context, msg *message.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) GetUnpushed(ctx context.Context, limit int) ([]*message.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*message.Message), args.Error(1)
}

func (m *MockMessageRepository) MarkPushed(ctx context.Context, id kernel.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type MockDirectoryRepository struct{ mock.Mock }

func (m *MockDirectoryRepository) GetVendor(ctx context.Context, id kernel.UUID) (*directory.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Vendor), args.Error(1)
}

func (m *MockDirectoryRepository) GetCustomer(ctx context.Context, id kernel.UUID) (*directory.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Customer), args.Error(1)
}

func (m *MockDirectoryRepository) GetAddress(ctx context.Context, id kernel.UUID) (directory.Address, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(directory.Address), args.Error(1)
}

func (m *MockDirectoryRepository) GetMenuItem(ctx context.Context, id kernel.UUID) (directory.MenuItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(directory.MenuItem), args.Error(1)
}

// MockUoW satisfies UoW, DriverUoW and OrderUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) MessageRepository() ports.MessageRepository {
	args := m.Called()
	return args.Get(0).(ports.MessageRepository)
}

func (m *MockUoW) DirectoryRepository() ports.DirectoryRepository {
	args := m.Called()
	return args.Get(0).(ports.DirectoryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendMail(ctx context.Context, mail ports.Mail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(plain string, hash string) (bool, error) {
	args := m.Called(plain, hash)
	return args.Bool(0), args.Error(1)
}

// repos bundles a mocked unit of work with all of its repositories wired in.
type repos struct {
	uow       *MockUoW
	drivers   *MockDriverRepository
	orders    *MockOrderRepository
	messages  *MockMessageRepository
	directory *MockDirectoryRepository
}

func newRepos() repos {
	r := repos{
		uow:       new(MockUoW),
		drivers:   new(MockDriverRepository),
		orders:    new(MockOrderRepository),
		messages:  new(MockMessageRepository),
		directory: new(MockDirectoryRepository),
	}
	r.uow.On("DriverRepository").Return(r.drivers).Maybe()
	r.uow.On("OrderRepository").Return(r.orders).Maybe()
	r.uow.On("MessageRepository").Return(r.messages).Maybe()
	r.uow.On("DirectoryRepository").Return(r.directory).Maybe()
	return r
}

func (r repos) assertExpectations(t *testing.T) {
	t.Helper()
	r.uow.AssertExpectations(t)
	r.drivers.AssertExpectations(t)
	r.orders.AssertExpectations(t)
	r.messages.AssertExpectations(t)
	r.directory.AssertExpectations(t)
}

func nullLogger() *logrus.Logger {
	log, _ := logtest.NewNullLogger()
	return log
}

func nullLoggerWithHook() (*logrus.Logger, *logtest.Hook) {
	return logtest.NewNullLogger()
}

func newDispatcher() *notifier.Dispatcher {
	return newDispatcherWithMailer(new(MockMailer))
}

func newDispatcherWithMailer(mailer ports.Mailer) *notifier.Dispatcher {
	return notifier.NewDispatcher(mailer, nullLogger())
}

func newActiveDriver(t *testing.T) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), "driver@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, d.ChangeStatus(driver.StatusActive))
	require.NoError(t, d.AddDeviceToken("device-1"))
	return d
}

func newOrder(t *testing.T, vendorID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), vendorID,
		[]kernel.UUID{kernel.NewUUID()}, order.FulfillmentDelivery, decimal.NewFromInt(5))
	require.NoError(t, err)
	return o
}
