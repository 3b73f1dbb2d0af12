package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type EventDrainer interface {
	Recover(ctx context.Context) (int, error)
	Drain(ctx context.Context, limit int) (int, error)
}

// EventRelayJob forwards queued order events to the notification broker.
type EventRelayJob struct {
	relay  EventDrainer
	spec   string
	batch  int
	cron   *cron.Cron
	logger *slog.Logger
}

func NewEventRelayJob(relay EventDrainer, spec string, batch int, logger *slog.Logger) *EventRelayJob {
	return &EventRelayJob{
		relay:  relay,
		spec:   spec,
		batch:  batch,
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With("component", "event_relay_job"),
	}
}

// Start puts events left over by a previous process back on the queue, then
// schedules Run.
func (j *EventRelayJob) Start() error {
	ctx := context.Background()
	moved, err := j.relay.Recover(ctx)
	if err != nil {
		return err
	}
	if moved > 0 {
		j.logger.WarnContext(ctx, "Requeued unacknowledged events", "count", moved)
	}

	if _, err = j.cron.AddFunc(j.spec, func() {
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Event relay job failed", "error", err)
		}
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Event relay job started", "spec", j.spec)
	return nil
}

func (j *EventRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Event relay job stopped")
}

// Run drains one batch. An event whose publish failed is requeued so the next run
// retries it.
func (j *EventRelayJob) Run(ctx context.Context) (int, error) {
	delivered, err := j.relay.Drain(ctx, j.batch)
	if delivered > 0 {
		j.logger.DebugContext(ctx, "Events relayed", "count", delivered)
	}
	if err != nil {
		if _, recoverErr := j.relay.Recover(ctx); recoverErr != nil {
			j.logger.ErrorContext(ctx, "Event requeue failed", "error", recoverErr)
		}
		return delivered, err
	}
	return delivered, nil
}
