package notifier_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/notifier"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/message"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendMail(ctx context.Context, mail ports.Mail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}

func newDispatcher(t *testing.T, mailer ports.Mailer) (*notifier.Dispatcher, *logtest.Hook) {
	t.Helper()
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return notifier.NewDispatcher(mailer, log), hook
}

func newDriver(t *testing.T) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), "d@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, d.AddDeviceToken("token-1"))
	return d
}

func TestDispatcher_SendMessage(t *testing.T) {
	sender := kernel.Party{Kind: kernel.PartyVendor, ID: kernel.NewUUID()}

	t.Run("allowed setting persists the message", func(t *testing.T) {
		ctx := t.Context()
		d := newDriver(t)
		repo := new(MockMessageRepository)
		repo.On("Add", ctx, mock.AnythingOfType("*message.Message")).Return(nil).Once()
		dispatcher, _ := newDispatcher(t, nil)

		msg, err := dispatcher.SendMessage(ctx, repo, d, notifier.MessageRequest{
			Setting:     driver.CategoryRequestDriver,
			MessageType: "REQUEST_DRIVER",
			Title:       "New delivery request",
			Data:        map[string]string{"orderId": "o-1"},
			Sender:      &sender,
		})

		require.NoError(t, err)
		require.NotNil(t, msg)
		assert.Equal(t, d.Party(), msg.Recipient())
		assert.Equal(t, sender, *msg.Sender())
		assert.Equal(t, []string{"token-1"}, msg.DeviceTokens())
		assert.Equal(t, "o-1", msg.Data()["orderId"])
		assert.Same(t, msg, repo.Calls[0].Arguments.Get(1))
		repo.AssertExpectations(t)
	})

	t.Run("switched off setting is refused without persisting", func(t *testing.T) {
		d := newDriver(t)
		require.NoError(t, d.SetNotificationPreference(driver.CategoryChat, false))
		repo := new(MockMessageRepository)
		dispatcher, _ := newDispatcher(t, nil)

		msg, err := dispatcher.SendMessage(t.Context(), repo, d, notifier.MessageRequest{
			Setting:     driver.CategoryChat,
			MessageType: "CHAT",
		})

		assert.Nil(t, msg)
		var refusal *errs.RefusalError
		require.ErrorAs(t, err, &refusal)
		assert.Equal(t, "Driver has turned off notification setting: CHAT", refusal.Message)
		assert.Equal(t, 200, refusal.Status)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("empty setting is always refused", func(t *testing.T) {
		repo := new(MockMessageRepository)
		dispatcher, _ := newDispatcher(t, nil)

		_, err := dispatcher.SendMessage(t.Context(), repo, newDriver(t), notifier.MessageRequest{MessageType: "CHAT"})

		require.ErrorIs(t, err, errs.ErrBusinessRefusal)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("persistence failure is wrapped", func(t *testing.T) {
		ctx := t.Context()
		repo := new(MockMessageRepository)
		repo.On("Add", ctx, mock.Anything).Return(errors.New("connection reset")).Once()
		dispatcher, hook := newDispatcher(t, nil)

		_, err := dispatcher.SendMessage(ctx, repo, newDriver(t), notifier.MessageRequest{
			Setting:     driver.CategoryRequestDriver,
			MessageType: "REQUEST_DRIVER",
		})

		var failure *errs.FailureError
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, "sendMessage", failure.FunctionName)
		assert.Contains(t, failure.Diagnostic, "connection reset")
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	})

	t.Run("panic in the repository becomes a failure", func(t *testing.T) {
		ctx := t.Context()
		repo := new(MockMessageRepository)
		repo.On("Add", ctx, mock.Anything).Run(func(mock.Arguments) { panic("boom") }).Once()
		dispatcher, _ := newDispatcher(t, nil)

		_, err := dispatcher.SendMessage(ctx, repo, newDriver(t), notifier.MessageRequest{
			Setting:     driver.CategoryRequestDriver,
			MessageType: "REQUEST_DRIVER",
		})

		var failure *errs.FailureError
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, "sendMessage", failure.FunctionName)
	})
}

func TestDispatcher_SendEmail(t *testing.T) {
	t.Run("account mail ignores preferences", func(t *testing.T) {
		ctx := t.Context()
		d := newDriver(t)
		require.NoError(t, d.SetEmailPreference(services.AccountCategory, false))
		mailer := new(MockMailer)
		mailer.On("SendMail", ctx, ports.Mail{
			To:      "d@example.com",
			Subject: "Confirm your email",
			Text:    "code 1234",
		}).Return(nil).Once()
		dispatcher, _ := newDispatcher(t, mailer)

		err := dispatcher.SendEmail(ctx, d, notifier.EmailRequest{
			Setting: services.AccountCategory,
			Subject: "Confirm your email",
			Text:    "code 1234",
		})

		require.NoError(t, err)
		mailer.AssertExpectations(t)
	})

	t.Run("unset category is refused", func(t *testing.T) {
		mailer := new(MockMailer)
		dispatcher, _ := newDispatcher(t, mailer)

		err := dispatcher.SendEmail(t.Context(), newDriver(t), notifier.EmailRequest{Setting: "RECEIPTS"})

		var refusal *errs.RefusalError
		require.ErrorAs(t, err, &refusal)
		assert.Equal(t, "Driver has turned off email setting: RECEIPTS", refusal.Message)
		mailer.AssertNotCalled(t, "SendMail", mock.Anything, mock.Anything)
	})

	t.Run("transport failure is wrapped", func(t *testing.T) {
		ctx := t.Context()
		mailer := new(MockMailer)
		mailer.On("SendMail", ctx, mock.Anything).Return(errors.New("smtp: 421 try later")).Once()
		dispatcher, _ := newDispatcher(t, mailer)

		err := dispatcher.SendEmail(ctx, newDriver(t), notifier.EmailRequest{Setting: services.AccountCategory})

		var failure *errs.FailureError
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, "sendEmail", failure.FunctionName)
		assert.False(t, errs.IsRefusal(err))
	})
}
