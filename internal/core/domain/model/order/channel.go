package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Channel is how the order reaches the customer.
// It decides which statuses the order may pass through: only Delivery orders
// go OUT_FOR_DELIVERY and only they may carry a courier.
type Channel int

const (
	// UnknownChannel represents an invalid or undefined channel.
	UnknownChannel Channel = iota

	// DineIn orders are served at a table.
	DineIn

	// Counter orders are picked up by the customer.
	Counter

	// Delivery orders are taken to the customer's address by a courier.
	Delivery
)

// getChannelStrings returns a map of Channel values to their stored codes.
func getChannelStrings() map[Channel]string {
	return map[Channel]string{
		DineIn:   "DINE_IN",
		Counter:  "COUNTER",
		Delivery: "DELIVERY",
	}
}

// ParseChannel converts a code such as "DELIVERY" into a Channel.
//
// Returns:
//   - the matching Channel
//   - (UnknownChannel, error) for any unrecognized code
func ParseChannel(code string) (Channel, error) {
	for c, str := range getChannelStrings() {
		if str == code {
			return c, nil
		}
	}
	return UnknownChannel, errs.NewValueIsInvalidErrorWithCause("channel is invalid", fmt.Errorf("%q is not a valid channel", code))
}

// Validate returns a validation error unless c is DineIn, Counter or Delivery.
func (c Channel) Validate() error {
	if _, ok := getChannelStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("channel is invalid", fmt.Errorf("%d is not a valid channel", c))
	}
	return nil
}

// String returns the stored code of the channel, "UNKNOWN" for invalid values.
func (c Channel) String() string {
	if str, ok := getChannelStrings()[c]; ok {
		return str
	}
	return "UNKNOWN"
}
