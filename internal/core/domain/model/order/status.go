package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
// It implements a state machine with a fixed transition table so that every
// order follows the kitchen workflow in the same way.
//
// State transitions:
//
//	PENDING ──> PRINT_PENDING ──> IN_PROGRESS ──> (OUT_FOR_DELIVERY ──>) COMPLETED
//	   │              ▲                 │
//	   └─> AWAITING_PAYMENT             └─> IN_EDIT ──> EDITED ──> PRINT_PENDING | IN_PROGRESS
//
// Every non-terminal status may move to CANCELLED. COMPLETED and CANCELLED are terminal.
// OUT_FOR_DELIVERY is reachable only by delivery orders, which in turn cannot
// complete straight from IN_PROGRESS.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the status an order has while it is being finalized.
	// It is recorded only as the origin of the first history entry.
	Pending

	// PrintPending means the order is ready for the kitchen ticket printer.
	// Orders paid in person start here.
	PrintPending

	// InProgress means the kitchen is preparing the order.
	InProgress

	// OutForDelivery means a courier left with the order. Delivery orders only.
	OutForDelivery

	// Completed indicates the order was handed over.
	// This is a final state with no further transitions allowed.
	Completed

	// Cancelled indicates the order was abandoned.
	// This is a final state; a pending payment is voided with it.
	Cancelled

	// Edited means an edit session finished and the order returns to the kitchen.
	Edited

	// InEdit means the order is open for item changes by staff.
	InEdit

	// AwaitingPayment holds orders paid online until the gateway confirms the charge.
	AwaitingPayment
)

// getStatusStrings returns a map of Status values to their stored codes.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "UNKNOWN",
		Pending:         "PENDING",
		PrintPending:    "PRINT_PENDING",
		InProgress:      "IN_PROGRESS",
		OutForDelivery:  "OUT_FOR_DELIVERY",
		Completed:       "COMPLETED",
		Cancelled:       "CANCELLED",
		Edited:          "EDITED",
		InEdit:          "IN_EDIT",
		AwaitingPayment: "AWAITING_PAYMENT",
	}
}

// successors is the fixed transition table. Channel restrictions are applied on top of it
// in CanTransitionTo.
func successors() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown statuses have no successors
	return map[Status][]Status{
		Pending:         {PrintPending, AwaitingPayment, InEdit, Cancelled},
		AwaitingPayment: {PrintPending, Cancelled},
		PrintPending:    {InProgress, InEdit, Cancelled},
		InProgress:      {OutForDelivery, Completed, InEdit, Cancelled},
		OutForDelivery:  {Completed, Cancelled},
		InEdit:          {Edited, Cancelled},
		Edited:          {PrintPending, InProgress, InEdit, Cancelled},
	}
}

// ParseStatus converts a stored status code back into a Status.
//
// Returns:
//   - the matching Status for codes such as "PRINT_PENDING"
//   - (Unknown, error) for "UNKNOWN" and any unrecognized code
//
// Example:
//
//	s, err := order.ParseStatus(dto.Status)
//	if err != nil {
//	    return nil, err
//	}
func ParseStatus(code string) (Status, error) {
	for s, str := range getStatusStrings() {
		if s != Unknown && str == code {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", code))
}

// Validate checks if the Status value is one of the defined statuses.
//
// Returns:
//   - nil if the status is valid
//   - error with details for Unknown (0) and out-of-range values
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the stored code of the status, "UNKNOWN" for invalid values.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
//
// Example:
//
//	fmt.Println(o.Status()) // Output: "AWAITING_PAYMENT"
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports COMPLETED and CANCELLED, the statuses an order never leaves.
// Terminal orders refuse edits, courier changes and payments.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Successors lists the statuses reachable from s on the given channel.
//
// Example:
//
//	order.InProgress.Successors(order.Delivery)
//	// [OUT_FOR_DELIVERY IN_EDIT CANCELLED]
func (s Status) Successors(channel Channel) []Status {
	out := make([]Status, 0, 4)
	for _, next := range successors()[s] {
		if allowedOnChannel(s, next, channel) {
			out = append(out, next)
		}
	}
	return out
}

// CanTransitionTo checks a transition without performing it.
//
// Returns:
//   - nil if target is an allowed successor of s for the channel
//   - a validation error if target itself is not a valid status
//   - a conflict error with code INVALID_TRANSITION naming both ends otherwise
//
// This method is used by Order.ChangeStatus, which applies the transition only
// after this check passes.
func (s Status) CanTransitionTo(target Status, channel Channel) error {
	if err := target.Validate(); err != nil {
		return err
	}
	for _, next := range s.Successors(channel) {
		if next == target {
			return nil
		}
	}
	return errs.NewConflictError(
		errs.CodeInvalidTransition,
		fmt.Sprintf("%s -> %s is not allowed for %s orders", s, target, channel),
	)
}

func allowedOnChannel(from, to Status, channel Channel) bool {
	if to == OutForDelivery {
		return channel == Delivery
	}
	if from == InProgress && to == Completed {
		return channel != Delivery
	}
	return true
}
