package services

import (
	"time"

	"ordering/internal/core/domain/model/order"
)

// ReasonFinalized is recorded on the first history entry of every order.
const ReasonFinalized = "order finalized"

// StatusTransitionManager applies status changes stamped with its clock.
type StatusTransitionManager struct {
	now func() time.Time
}

func NewStatusTransitionManager(now func() time.Time) StatusTransitionManager {
	if now == nil {
		now = time.Now
	}
	return StatusTransitionManager{now: now}
}

// InitialStatus is AWAITING_PAYMENT for methods settled online, PRINT_PENDING otherwise.
func (m StatusTransitionManager) InitialStatus(method order.PaymentMethod) order.Status {
	if method.RequiresOnlineConfirmation() {
		return order.AwaitingPayment
	}
	return order.PrintPending
}

// Start moves a freshly built order out of PENDING, writing its first history entry.
func (m StatusTransitionManager) Start(o *order.Order, actor string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return o.ChangeStatus(m.InitialStatus(o.PaymentMethod()), ReasonFinalized, actor, m.now())
}

// Transition moves o to target. Illegal targets, including the current status,
// fail with INVALID_TRANSITION and leave o unchanged.
func (m StatusTransitionManager) Transition(o *order.Order, target order.Status, reason, actor string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	return o.ChangeStatus(target, reason, actor, m.now())
}

func (m StatusTransitionManager) Now() time.Time {
	return m.now()
}
