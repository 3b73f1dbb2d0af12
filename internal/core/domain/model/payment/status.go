package payment

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status is the state of a payment transaction. Transitions are monotone:
//
//	PENDING ──> AUTHORIZED ──> PAID ──> REFUNDED
//	   │             │
//	   ├─> DECLINED  └─> CANCELLED
//	   └─> CANCELLED
//
// PENDING may also move straight to PAID when the gateway captures at once.
// DECLINED, CANCELLED and REFUNDED are terminal failures; an order whose latest
// transaction is in one of them may be charged again.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values and unrecognized
	// gateway answers.
	Unknown Status = iota

	// Pending is the status of a freshly opened transaction. The gateway was asked,
	// or is about to be, and has not settled the charge yet.
	Pending

	// Authorized means the gateway reserved the funds. The money is secured and the
	// order is released to the kitchen.
	Authorized

	// Paid means the funds were captured.
	Paid

	// Declined means the gateway refused the charge.
	Declined

	// Cancelled means the transaction was voided before capture.
	Cancelled

	// Refunded means captured funds were returned to the customer.
	Refunded
)

// getStatusStrings returns a map of the valid statuses to their stored codes.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:    "PENDING",
		Authorized: "AUTHORIZED",
		Paid:       "PAID",
		Declined:   "DECLINED",
		Cancelled:  "CANCELLED",
		Refunded:   "REFUNDED",
	}
}

// ParseStatus converts a stored status code back into a Status.
//
// Returns:
//   - the matching Status for codes such as "PAID"
//   - (Unknown, error) for any other code
func ParseStatus(code string) (Status, error) {
	for s, str := range getStatusStrings() {
		if str == code {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid", fmt.Errorf("%q is not a valid payment status", code))
}

// Validate checks if the Status value is one of the defined statuses.
//
// Returns:
//   - nil if the status is valid
//   - error with details for Unknown (0) and out-of-range values
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the stored code of the status, "UNKNOWN" for invalid values.
//
// Example:
//
//	fmt.Println(tx.Status()) // Output: "PENDING"
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsFailed reports the terminal states that free the order for a new transaction.
func (s Status) IsFailed() bool {
	return s == Declined || s == Cancelled || s == Refunded
}

// IsSettled reports states in which the money is secured and the gateway must not be called again.
func (s Status) IsSettled() bool {
	return s == Authorized || s == Paid
}

// canMoveTo encodes the transition diagram on Status.
func (s Status) canMoveTo(target Status) bool {
	//nolint:exhaustive // unlisted statuses are terminal
	switch s {
	case Pending:
		return target == Authorized || target == Paid || target == Declined || target == Cancelled
	case Authorized:
		return target == Paid || target == Cancelled
	case Paid:
		return target == Refunded
	}
	return false
}
