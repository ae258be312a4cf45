package cmd

import (
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/notifier"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Transports groups the outbound adapters that are dialed in main.
type Transports struct {
	Mailer    ports.Mailer
	Publisher ports.PushPublisher
	Hasher    ports.PasswordHasher
}

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	transports Transports
	dispatcher *notifier.Dispatcher
	policy     order.TransitionPolicy
	logger     logrus.FieldLogger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	transports Transports,
	logger logrus.FieldLogger,
	hooks ...postgres.CommitHook,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, hooks...),
		transports: transports,
		dispatcher: notifier.NewDispatcher(transports.Mailer, logger),
		policy:     config.DispositionPolicy(),
		logger:     logger,
	}
}

// AddCommitHook registers a hook on the shared unit of work factory. Used for
// hooks whose owner needs handlers from this root, like the push relay job.
func (c *CompositionRoot) AddCommitHook(hook postgres.CommitHook) {
	c.uowFactory.AddHook(hook)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoW() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) messageUoW() commands.MessageUoWFactory {
	return FuncMessageUoWFactory(func() commands.MessageUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRequestDriverCommandHandler() commands.RequestDriverCommandHandler {
	return commands.NewRequestDriverCommandHandler(c.uow(), c.dispatcher)
}

func (c *CompositionRoot) CreateNotifyOrderReadyCommandHandler() commands.NotifyOrderReadyCommandHandler {
	return commands.NewNotifyOrderReadyCommandHandler(c.uow(), c.dispatcher)
}

func (c *CompositionRoot) CreateNotifyOrderCanceledCommandHandler() commands.NotifyOrderCanceledCommandHandler {
	return commands.NewNotifyOrderCanceledCommandHandler(c.uow(), c.dispatcher)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.uow(), c.policy)
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	return commands.NewCreateDriverCommandHandler(c.driverUoW(), c.transports.Hasher, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateToggleStatusCommandHandler() commands.ToggleStatusCommandHandler {
	return commands.NewToggleStatusCommandHandler(c.driverUoW())
}

func (c *CompositionRoot) CreateAddDeviceTokenCommandHandler() commands.AddDeviceTokenCommandHandler {
	return commands.NewAddDeviceTokenCommandHandler(c.driverUoW())
}

func (c *CompositionRoot) CreateUpdateDriverPresenceCommandHandler() commands.UpdateDriverPresenceCommandHandler {
	return commands.NewUpdateDriverPresenceCommandHandler(c.driverUoW())
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	return commands.NewAddOrderItemCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateRemoveOrderItemCommandHandler() commands.RemoveOrderItemCommandHandler {
	return commands.NewRemoveOrderItemCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateChangeDispositionCommandHandler() commands.ChangeDispositionCommandHandler {
	return commands.NewChangeDispositionCommandHandler(c.orderUoW(), c.policy)
}

func (c *CompositionRoot) CreateRelayPushesCommandHandler() commands.RelayPushesCommandHandler {
	return commands.NewRelayPushesCommandHandler(c.messageUoW(), c.transports.Publisher)
}

func (c *CompositionRoot) CreateGetRecipientMessagesQueryHandler() queries.GetRecipientMessagesQueryHandler {
	return queries.NewGetRecipientMessagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateVerifyDriverCredentialsQueryHandler() queries.VerifyDriverCredentialsQueryHandler {
	return queries.NewVerifyDriverCredentialsQueryHandler(c.gormDB, c.transports.Hasher)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncMessageUoWFactory func() commands.MessageUoW

func (f FuncMessageUoWFactory) Create() commands.MessageUoW {
	return f()
}
