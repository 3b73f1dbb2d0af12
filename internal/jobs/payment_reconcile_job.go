package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

type PendingPaymentsFinder interface {
	Handle(ctx context.Context, query queries.GetPendingPaymentsQuery) ([]queries.GetPendingPaymentsQueryResponse, error)
}

type PaymentConfirmer interface {
	Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) (*payment.Transaction, error)
}

// PaymentReconcileJob asks the gateway about online payments that stayed PENDING
// longer than minAge, for providers whose webhook never arrived.
type PaymentReconcileJob struct {
	finder    PendingPaymentsFinder
	confirmer PaymentConfirmer
	spec      string
	minAge    time.Duration
	batch     int
	clock     func() time.Time
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewPaymentReconcileJob(
	finder PendingPaymentsFinder,
	confirmer PaymentConfirmer,
	spec string,
	minAge time.Duration,
	batch int,
	logger *slog.Logger,
) *PaymentReconcileJob {
	return &PaymentReconcileJob{
		finder:    finder,
		confirmer: confirmer,
		spec:      spec,
		minAge:    minAge,
		batch:     batch,
		clock:     time.Now,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "payment_reconcile_job"),
	}
}

// Start schedules Run on the job's cron spec.
func (j *PaymentReconcileJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Payment reconcile job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment reconcile job started", "spec", j.spec)
	return nil
}

func (j *PaymentReconcileJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Payment reconcile job stopped")
}

// Run confirms one batch of stale pending payments and returns how many left PENDING.
// A failure on one order is logged and does not stop the batch.
func (j *PaymentReconcileJob) Run(ctx context.Context) (int, error) {
	query, err := queries.NewGetPendingPaymentsQuery(j.clock().Add(-j.minAge), j.batch)
	if err != nil {
		return 0, err
	}
	pending, err := j.finder.Handle(ctx, query)
	if err != nil {
		return 0, err
	}

	resolved := 0
	for _, p := range pending {
		cmd, err := commands.NewConfirmPaymentCommand(p.OrderID)
		if err != nil {
			return resolved, err
		}
		tx, err := j.confirmer.Handle(ctx, cmd)
		switch {
		case errs.HasCode(err, errs.CodePaymentPending):
			continue
		case err != nil:
			j.logger.ErrorContext(ctx, "Payment confirmation failed",
				"order_id", p.OrderID.String(), "transaction_id", p.TransactionID.String(), "error", err)
			continue
		case tx.Status() == payment.Pending:
			continue
		}
		resolved++
		j.logger.InfoContext(ctx, "Payment reconciled",
			"order_id", p.OrderID.String(), "status", tx.Status().String())
	}
	return resolved, nil
}
