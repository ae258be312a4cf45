package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/message"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRelayHandler struct{ mock.Mock }

func (m *MockRelayHandler) Handle(ctx context.Context, command commands.RelayPushesCommand) (int, error) {
	args := m.Called(ctx, command)
	return args.Int(0), args.Error(1)
}

func nullLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

func TestPushRelayJob_RunOnce(t *testing.T) {
	ctx := t.Context()
	log, _ := nullLogger()
	handler := new(MockRelayHandler)
	handler.On("Handle", ctx, mock.MatchedBy(func(c commands.RelayPushesCommand) bool {
		return c.Batch() == 20
	})).Return(3, nil).Once()

	job := NewPushRelayJob(handler, "", 20, log)

	assert.Equal(t, 3, job.RunOnce(ctx))
	handler.AssertExpectations(t)
}

func TestPushRelayJob_RunOnceLogsFailure(t *testing.T) {
	ctx := t.Context()
	log, hook := nullLogger()
	handler := new(MockRelayHandler)
	handler.On("Handle", ctx, mock.Anything).Return(1, errors.New("broker unavailable")).Once()

	job := NewPushRelayJob(handler, "", 10, log)

	assert.Equal(t, 1, job.RunOnce(ctx))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "push_relay_job", hook.LastEntry().Data["component"])
	assert.Equal(t, 1, hook.LastEntry().Data["relayed"])
}

func TestPushRelayJob_RunOnceSkipsWhileRunning(t *testing.T) {
	log, _ := nullLogger()
	handler := new(MockRelayHandler)
	job := NewPushRelayJob(handler, "", 10, log)

	job.running.Lock()
	defer job.running.Unlock()

	assert.Zero(t, job.RunOnce(t.Context()))
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestNewPushRelayJob_Defaults(t *testing.T) {
	log, _ := nullLogger()
	job := NewPushRelayJob(new(MockRelayHandler), "", 0, log)

	assert.Equal(t, DefaultPushRelaySchedule, job.schedule)
	assert.Equal(t, commands.MaxRelayBatch, job.batch)
}

func TestPushRelayJob_OnCommitKicksOnlyForMessages(t *testing.T) {
	log, _ := nullLogger()
	job := NewPushRelayJob(new(MockRelayHandler), "", 10, log)

	job.OnCommit(t.Context(), []any{"not a message"})
	assert.Empty(t, job.kick)

	m, err := message.NewMessage(kernel.NewUUID(),
		kernel.Party{Kind: kernel.PartyDriver, ID: kernel.NewUUID()}, nil,
		message.Content{MessageType: "ORDER_READY"}, nil, time.Now())
	require.NoError(t, err)

	job.OnCommit(t.Context(), []any{m})
	job.OnCommit(t.Context(), []any{m})
	assert.Len(t, job.kick, 1)
}

func TestPushRelayJob_KickTriggersRun(t *testing.T) {
	log, _ := nullLogger()
	handler := new(MockRelayHandler)
	var wg sync.WaitGroup
	wg.Add(1)
	handler.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { wg.Done() }).
		Return(1, nil).Once()

	job := NewPushRelayJob(handler, "0 0 0 1 1 *", 10, log)
	require.NoError(t, job.Start())
	defer job.Stop()

	m, err := message.NewMessage(kernel.NewUUID(),
		kernel.Party{Kind: kernel.PartyCustomer, ID: kernel.NewUUID()}, nil,
		message.Content{MessageType: "ORDER_READY"}, nil, time.Now())
	require.NoError(t, err)
	job.OnCommit(t.Context(), []any{m})

	wg.Wait()
	handler.AssertExpectations(t)
}

func TestPushRelayJob_StartRejectsBadSchedule(t *testing.T) {
	log, _ := nullLogger()
	job := NewPushRelayJob(new(MockRelayHandler), "not a schedule", 10, log)

	assert.Error(t, job.Start())
}
