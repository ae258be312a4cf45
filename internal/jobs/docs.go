// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// PushRelayJob drains the message outbox: every stored notification is handed
// to the push transport and marked pushed. It runs on PUSH_RELAY_SCHEDULE and is
// also kicked right after any commit that stored a message, so device pushes do
// not wait for the next tick.
//
// # Usage
//
//	relay := jobs.NewPushRelayJob(relayHandler, cfg.PushRelaySchedule, cfg.PushRelayBatch, logger)
//	uowFactory := postgres.NewGormUnitOfWorkFactory(db, relay.OnCommit)
//
//	jobManager := jobs.NewJobManager(relay)
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal(err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed relay is logged and retried on the next run. Publishing stops at the
// first transport error, so delivery is at least once and ordered by creation time.
package jobs
