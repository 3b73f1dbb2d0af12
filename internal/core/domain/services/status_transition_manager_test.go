package services_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestStatusTransitionManager_Start(t *testing.T) {
	manager := services.NewStatusTransitionManager(fixedClock(now))

	t.Run("should wait for payment on online methods", func(t *testing.T) {
		o := newOrderWithItems(t, order.Delivery, order.Pix, "10.00")

		require.NoError(t, manager.Start(o, "customer"))

		assert.Equal(t, order.AwaitingPayment, o.Status())
		require.Len(t, o.History(), 1)
		entry := o.History()[0]
		assert.Equal(t, order.Pending, entry.From())
		assert.Equal(t, order.AwaitingPayment, entry.To())
		assert.Equal(t, services.ReasonFinalized, entry.Reason())
		assert.Equal(t, now, entry.At())
	})

	t.Run("should go straight to the printer otherwise", func(t *testing.T) {
		o := newOrderWithItems(t, order.DineIn, order.Cash, "10.00")

		require.NoError(t, manager.Start(o, "waiter"))

		assert.Equal(t, order.PrintPending, o.Status())
	})
}

func TestStatusTransitionManager_Transition(t *testing.T) {
	t.Run("should record every transition in order", func(t *testing.T) {
		clock := now
		manager := services.NewStatusTransitionManager(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		})
		o := newOrderWithItems(t, order.Delivery, order.Cash, "10.00")
		require.NoError(t, manager.Start(o, "customer"))

		for _, target := range []order.Status{order.InProgress, order.OutForDelivery, order.Completed} {
			require.NoError(t, manager.Transition(o, target, "", "kitchen"))
		}

		history := o.History()
		require.Len(t, history, 4)
		observed := []order.Status{}
		for i, entry := range history {
			assert.Equal(t, i+1, entry.Sequence())
			if i > 0 {
				assert.True(t, entry.At().After(history[i-1].At()))
				assert.Equal(t, history[i-1].To(), entry.From())
			}
			observed = append(observed, entry.To())
		}
		assert.Equal(t, []order.Status{order.PrintPending, order.InProgress, order.OutForDelivery, order.Completed}, observed)
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("should reject completing a pending order", func(t *testing.T) {
		manager := services.NewStatusTransitionManager(fixedClock(now))
		o := newOrderWithItems(t, order.Counter, order.Cash, "10.00")

		err := manager.Transition(o, order.Completed, "", "cashier")

		require.Error(t, err)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
		assert.True(t, errs.HasCode(err, errs.CodeInvalidTransition))
		assert.Equal(t, order.Pending, o.Status())
		assert.Empty(t, o.History())
	})

	t.Run("should reject unknown target", func(t *testing.T) {
		manager := services.NewStatusTransitionManager(fixedClock(now))
		o := newOrderWithItems(t, order.Counter, order.Cash, "10.00")

		err := manager.Transition(o, order.Unknown, "", "cashier")

		require.Error(t, err)
		assert.Equal(t, order.Pending, o.Status())
	})
}
