package commands

import (
	"context"

	"dispatch/internal/core/application/notifier"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/sirupsen/logrus"
)

const (
	welcomeSubject = "Welcome aboard"
	welcomeText    = "Your driver account is ready. Switch to ACTIVE in the app to start receiving delivery requests."
)

// CreateDriverCommandHandler registers a driver and sends the welcome email.
// A duplicate email is refused by the repository. The welcome email is sent
// after commit; failing to send it is logged and does not fail the signup.
type CreateDriverCommandHandler struct {
	uowFactory DriverUoWFactory
	hasher     ports.PasswordHasher
	dispatcher MessageDispatcher
	log        logrus.FieldLogger
}

func NewCreateDriverCommandHandler(
	uowFactory DriverUoWFactory,
	hasher ports.PasswordHasher,
	dispatcher MessageDispatcher,
	log logrus.FieldLogger,
) CreateDriverCommandHandler {
	return CreateDriverCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		dispatcher: dispatcher,
		log:        log.WithField("component", "createDriver"),
	}
}

func (h CreateDriverCommandHandler) Handle(ctx context.Context, command CreateDriverCommand) (_ *driver.Driver, err error) {
	defer errs.Recover(fnCreateDriver, &err)

	d, err := h.handle(ctx, command)
	if err != nil {
		return nil, errs.AsFailure(fnCreateDriver, err)
	}

	if mailErr := h.dispatcher.SendEmail(ctx, d, notifier.EmailRequest{
		Setting: services.AccountCategory,
		Subject: welcomeSubject,
		Text:    welcomeText,
	}); mailErr != nil {
		h.log.WithError(mailErr).WithField("driver", d.ID().String()).Warn("welcome email not sent")
	}

	return d, nil
}

func (h CreateDriverCommandHandler) handle(ctx context.Context, command CreateDriverCommand) (*driver.Driver, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(command.Password())
	if err != nil {
		return nil, err
	}

	d, err := driver.NewDriver(kernel.NewUUID(), command.Email(), hash)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DriverRepository().Add(ctx, d); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
