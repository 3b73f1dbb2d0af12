// Package jobs provides scheduled background tasks built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. PaymentReconcileJob - confirms online payments that stayed PENDING past a
//     minimum age by asking the gateway for their state
//  2. EventRelayJob - moves order events from the Redis queue to the RabbitMQ
//     notification exchange
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileJob, relayJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs use six-field cron specs (seconds first) read from configuration.
// A run that is still going when the next tick fires causes that tick to be skipped.
//
// # Error Handling
//
//   - Reconciliation skips orders whose payment is still pending at the gateway and
//     logs other failures without aborting the batch
//   - The relay requeues an event whose publish failed and retries on the next tick
//   - Failed job starts stop any already running jobs
package jobs
