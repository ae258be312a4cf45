package jobs

import (
	"fmt"
)

// Job is a background task the manager can start and stop.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Jobs start in registration order and stop in reverse.
type JobManager struct {
	jobs  []namedJob
	start int
}

type namedJob struct {
	name string
	job  Job
}

// NewJobManager creates a job manager around the push relay job.
func NewJobManager(pushRelay *PushRelayJob) *JobManager {
	jm := &JobManager{}
	jm.Register("push relay", pushRelay)
	return jm
}

// Register adds a job. Registering after StartAll has no effect until the next StartAll.
func (jm *JobManager) Register(name string, job Job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts all scheduled jobs.
// If any job fails to start, the ones already running are stopped.
func (jm *JobManager) StartAll() error {
	for i, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			jm.stopFirst(i)
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
	}
	jm.start = len(jm.jobs)
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stopFirst(jm.start)
	jm.start = 0
}

func (jm *JobManager) stopFirst(n int) {
	for i := n - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}
