package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// PaymentMethod is how the customer intends to pay. Online methods are settled through a
// payment gateway before the kitchen sees the order; the others are collected in person.
type PaymentMethod int

const (
	// UnknownPaymentMethod represents an invalid or undefined method.
	UnknownPaymentMethod PaymentMethod = iota

	// Cash is collected in person.
	Cash

	// CardOnDelivery is charged on a card machine when the order is handed over.
	CardOnDelivery

	// MealVoucher is collected in person with a meal benefit card.
	MealVoucher

	// Pix is an instant transfer confirmed by the gateway.
	Pix

	// OnlineCard is a card charge confirmed by the gateway.
	OnlineCard
)

// getPaymentMethodStrings returns a map of PaymentMethod values to their stored codes.
func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		Cash:           "CASH",
		CardOnDelivery: "CARD_ON_DELIVERY",
		MealVoucher:    "MEAL_VOUCHER",
		Pix:            "PIX",
		OnlineCard:     "ONLINE_CARD",
	}
}

// ParsePaymentMethod converts a code such as "PIX" into a PaymentMethod.
//
// Returns:
//   - the matching PaymentMethod
//   - (UnknownPaymentMethod, error) for any unrecognized code
func ParsePaymentMethod(code string) (PaymentMethod, error) {
	for m, str := range getPaymentMethodStrings() {
		if str == code {
			return m, nil
		}
	}
	return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause(
		"payment method is invalid", fmt.Errorf("%q is not a valid payment method", code))
}

// Validate returns a validation error for UnknownPaymentMethod and out-of-range values.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method is invalid", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the stored code of the method, "UNKNOWN" for invalid values.
//
// Example:
//
//	fmt.Println(order.Pix) // Output: "PIX"
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

// RequiresOnlineConfirmation reports whether a gateway must confirm payment before
// the order is released to the kitchen.
func (m PaymentMethod) RequiresOnlineConfirmation() bool {
	return m == Pix || m == OnlineCard
}
