package jobs

import (
	"fmt"
)

// JobManager starts and stops the background jobs together.
type JobManager struct {
	paymentReconcileJob *PaymentReconcileJob
	eventRelayJob       *EventRelayJob
}

func NewJobManager(paymentReconcileJob *PaymentReconcileJob, eventRelayJob *EventRelayJob) *JobManager {
	return &JobManager{
		paymentReconcileJob: paymentReconcileJob,
		eventRelayJob:       eventRelayJob,
	}
}

// StartAll starts every job. When one fails the jobs already running are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.eventRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start event relay job: %w", err)
	}

	if err := jm.paymentReconcileJob.Start(); err != nil {
		jm.eventRelayJob.Stop()
		return fmt.Errorf("failed to start payment reconcile job: %w", err)
	}

	return nil
}

// StopAll waits for running jobs to finish.
func (jm *JobManager) StopAll() {
	jm.paymentReconcileJob.Stop()
	jm.eventRelayJob.Stop()
}
