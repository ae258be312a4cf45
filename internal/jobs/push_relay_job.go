package jobs

import (
	"context"
	"errors"
	"sync"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/message"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const DefaultPushRelaySchedule = "*/5 * * * * *"

// RelayPushesHandler is the command side of the relay job.
type RelayPushesHandler interface {
	Handle(ctx context.Context, command commands.RelayPushesCommand) (int, error)
}

// PushRelayJob periodically drains the message outbox into the push transport.
// A commit that stored messages can also kick an immediate run through OnCommit.
type PushRelayJob struct {
	handler  RelayPushesHandler
	schedule string
	batch    int
	cron     *cron.Cron
	logger   logrus.FieldLogger

	running sync.Mutex
	kick    chan struct{}
	done    chan struct{}
	stop    sync.Once
}

func NewPushRelayJob(handler RelayPushesHandler, schedule string, batch int, logger logrus.FieldLogger) *PushRelayJob {
	if schedule == "" {
		schedule = DefaultPushRelaySchedule
	}
	if batch < 1 || batch > commands.MaxRelayBatch {
		batch = commands.MaxRelayBatch
	}
	return &PushRelayJob{
		handler:  handler,
		schedule: schedule,
		batch:    batch,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.WithField("component", "push_relay_job"),
		kick:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Start registers the schedule and begins listening for kicks.
func (j *PushRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	go j.listen()
	j.cron.Start()
	j.logger.Infof("Push relay job started (schedule %q, batch %d)", j.schedule, j.batch)
	return nil
}

// Stop waits for a running relay to finish.
func (j *PushRelayJob) Stop() {
	j.stop.Do(func() {
		close(j.done)
		<-j.cron.Stop().Done()
		j.logger.Info("Push relay job stopped")
	})
}

// OnCommit matches postgres.CommitHook. Kicks are coalesced; a burst of
// commits produces at most one extra run.
func (j *PushRelayJob) OnCommit(_ context.Context, aggregates []any) {
	for _, a := range aggregates {
		if _, ok := a.(*message.Message); ok {
			select {
			case j.kick <- struct{}{}:
			default:
			}
			return
		}
	}
}

// RunOnce relays one batch unless another run is in progress. It reports how
// many messages were marked pushed.
func (j *PushRelayJob) RunOnce(ctx context.Context) int {
	if !j.running.TryLock() {
		return 0
	}
	defer j.running.Unlock()

	cmd, err := commands.NewRelayPushesCommand(j.batch)
	if err != nil {
		j.logger.WithError(err).Error("Push relay command rejected")
		return 0
	}

	n, err := j.handler.Handle(ctx, cmd)
	if n > 0 {
		j.logger.WithField("count", n).Debug("Pushes relayed")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		j.logger.WithError(err).WithField("relayed", n).Error("Push relay job failed")
	}
	return n
}

func (j *PushRelayJob) listen() {
	for {
		select {
		case <-j.done:
			return
		case <-j.kick:
			j.RunOnce(context.Background())
		}
	}
}
