package commands_test

import (
	"errors"
	"net/http"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestToggleStatusCommandHandler_Handle(t *testing.T) {
	t.Run("goes inactive with an empty route", func(t *testing.T) {
		ctx := t.Context()
		d := newActiveDriver(t)
		r := newRepos()

		mock.InOrder(
			r.uow.On("Begin", ctx).Return(nil).Once(),
			r.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once(),
			r.drivers.On("Update", ctx, d).Return(nil).Once(),
			r.uow.On("Commit", ctx).Return(nil).Once(),
			r.uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockDriverUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewToggleStatusCommand(d.ID(), driver.StatusInactive)
		require.NoError(t, err)

		status, err := commands.NewToggleStatusCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, driver.StatusInactive, status)
		r.assertExpectations(t)
	})

	t.Run("refuses to go inactive with orders on the route", func(t *testing.T) {
		ctx := t.Context()
		d := newActiveDriver(t)
		require.NoError(t, d.TakeOrder(kernel.NewUUID()))
		r := newRepos()

		r.uow.On("Begin", ctx).Return(nil).Once()
		r.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()
		r.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockDriverUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewToggleStatusCommand(d.ID(), driver.StatusInactive)
		require.NoError(t, err)

		status, err := commands.NewToggleStatusCommandHandler(factory).Handle(ctx, cmd)

		var refusal *errs.RefusalError
		require.ErrorAs(t, err, &refusal)
		assert.Equal(t, "There are still active orders on your route!", refusal.Message)
		assert.Equal(t, "toggleStatus", refusal.FunctionName)
		assert.Equal(t, 418, refusal.Status)
		assert.Empty(t, status)
		assert.Equal(t, driver.StatusActive, d.Status())
		r.drivers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		r.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("commit failure", func(t *testing.T) {
		ctx := t.Context()
		d := newActiveDriver(t)
		r := newRepos()

		r.uow.On("Begin", ctx).Return(nil).Once()
		r.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()
		r.drivers.On("Update", ctx, d).Return(nil).Once()
		r.uow.On("Commit", ctx).Return(errors.New("commit error")).Once()
		r.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockDriverUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewToggleStatusCommand(d.ID(), driver.StatusInactive)
		require.NoError(t, err)

		_, err = commands.NewToggleStatusCommandHandler(factory).Handle(ctx, cmd)

		var failure *errs.FailureError
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, "toggleStatus", failure.FunctionName)
		assert.Equal(t, http.StatusInternalServerError, failure.Status)
		assert.EqualError(t, errors.Unwrap(err), "commit error")
	})
}

func TestAddDeviceTokenCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	d, err := driver.NewDriver(kernel.NewUUID(), "driver@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, d.AddDeviceToken("a"))
	require.NoError(t, d.AddDeviceToken("b"))
	r := newRepos()

	r.uow.On("Begin", ctx).Return(nil).Twice()
	r.drivers.On("Get", ctx, d.ID()).Return(d, nil).Twice()
	r.drivers.On("Update", ctx, d).Return(nil).Twice()
	r.uow.On("Commit", ctx).Return(nil).Twice()
	r.uow.On("Rollback", ctx).Return(nil).Twice()
	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(r.uow).Twice()

	handler := commands.NewAddDeviceTokenCommandHandler(factory)
	cmd, err := commands.NewAddDeviceTokenCommand(d.ID(), "a")
	require.NoError(t, err)

	got, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, got.DeviceTokens())

	got, err = handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, got.DeviceTokens())
	r.assertExpectations(t)
}

func TestUpdateDriverPresenceCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	d := newActiveDriver(t)
	r := newRepos()

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()
	r.drivers.On("Update", ctx, d).Return(nil).Once()
	r.uow.On("Commit", ctx).Return(nil).Once()
	r.uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(r.uow).Once()

	cmd, err := commands.NewUpdateDriverPresenceCommand(d.ID(), true, 39.78, -89.65)
	require.NoError(t, err)

	got, err := commands.NewUpdateDriverPresenceCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, got.Online())
	location, ok := got.Location()
	require.True(t, ok)
	assert.InDelta(t, 39.78, location.Latitude(), 1e-9)
	assert.InDelta(t, -89.65, location.Longitude(), 1e-9)
	r.assertExpectations(t)
}

func TestCreateDriverCommandHandler_Handle(t *testing.T) {
	t.Run("stores the driver and sends the welcome email", func(t *testing.T) {
		ctx := t.Context()
		r := newRepos()
		hasher := new(MockPasswordHasher)
		mailer := new(MockMailer)

		hasher.On("Hash", "s3cret-pass").Return("$2a$hash", nil).Once()
		r.uow.On("Begin", ctx).Return(nil).Once()
		r.drivers.On("Add", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once()
		r.uow.On("Commit", ctx).Return(nil).Once()
		r.uow.On("Rollback", ctx).Return(nil).Once()
		mailer.On("SendMail", ctx, mock.MatchedBy(func(m ports.Mail) bool {
			return m.To == "new@example.com" && m.Subject != ""
		})).Return(nil).Once()
		factory := new(MockDriverUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewCreateDriverCommand(" New@Example.com ", "s3cret-pass")
		require.NoError(t, err)

		handler := commands.NewCreateDriverCommandHandler(factory, hasher, newDispatcherWithMailer(mailer), nullLogger())
		d, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", d.Email())
		assert.Equal(t, "$2a$hash", d.PasswordHash())
		assert.Equal(t, driver.StatusInactive, d.Status())
		r.assertExpectations(t)
		hasher.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("duplicate email is refused", func(t *testing.T) {
		ctx := t.Context()
		r := newRepos()
		hasher := new(MockPasswordHasher)
		mailer := new(MockMailer)

		duplicate := errs.NewRefusalErrorWithStatus("createDriver", "Email is already registered.", http.StatusConflict)
		hasher.On("Hash", "s3cret-pass").Return("$2a$hash", nil).Once()
		r.uow.On("Begin", ctx).Return(nil).Once()
		r.drivers.On("Add", ctx, mock.AnythingOfType("*driver.Driver")).Return(duplicate).Once()
		r.uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockDriverUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewCreateDriverCommand("taken@example.com", "s3cret-pass")
		require.NoError(t, err)

		handler := commands.NewCreateDriverCommandHandler(factory, hasher, newDispatcherWithMailer(mailer), nullLogger())
		d, err := handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrBusinessRefusal)
		assert.Same(t, duplicate, err)
		assert.Nil(t, d)
		mailer.AssertNotCalled(t, "SendMail", mock.Anything, mock.Anything)
	})

	t.Run("mail failure does not fail the signup", func(t *testing.T) {
		ctx := t.Context()
		r := newRepos()
		hasher := new(MockPasswordHasher)
		mailer := new(MockMailer)

		hasher.On("Hash", "s3cret-pass").Return("$2a$hash", nil).Once()
		r.uow.On("Begin", ctx).Return(nil).Once()
		r.drivers.On("Add", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once()
		r.uow.On("Commit", ctx).Return(nil).Once()
		r.uow.On("Rollback", ctx).Return(nil).Once()
		mailer.On("SendMail", ctx, mock.Anything).Return(errors.New("smtp down")).Once()
		factory := new(MockDriverUoWFactory)
		factory.On("Create").Return(r.uow).Once()

		cmd, err := commands.NewCreateDriverCommand("new@example.com", "s3cret-pass")
		require.NoError(t, err)

		log, hook := nullLoggerWithHook()
		handler := commands.NewCreateDriverCommandHandler(factory, hasher, newDispatcherWithMailer(mailer), log)
		d, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.NotNil(t, d)
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, "welcome email not sent", hook.LastEntry().Message)
	})

	t.Run("hash failure", func(t *testing.T) {
		ctx := t.Context()
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", "s3cret-pass").Return("", errors.New("hash error")).Once()
		factory := new(MockDriverUoWFactory)

		cmd, err := commands.NewCreateDriverCommand("new@example.com", "s3cret-pass")
		require.NoError(t, err)

		handler := commands.NewCreateDriverCommandHandler(factory, hasher, newDispatcher(), nullLogger())
		_, err = handler.Handle(ctx, cmd)

		var failure *errs.FailureError
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, "createDriver", failure.FunctionName)
		factory.AssertNotCalled(t, "Create")
	})
}
