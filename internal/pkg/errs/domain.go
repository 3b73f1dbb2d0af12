package errs

import (
	"errors"
	"fmt"
)

// Kind groups domain errors by how the caller is expected to react.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindExternalService
	KindRegionUnavailable
)

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrExternalService   = errors.New("external service error")
	ErrRegionUnavailable = errors.New("region unavailable")
)

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindExternalService:
		return ErrExternalService
	case KindRegionUnavailable:
		return ErrRegionUnavailable
	case KindUnknown:
	}
	return nil
}

func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return "unknown error"
}

// Code is a stable identifier the request layer renders without matching on messages.
type Code string

const (
	CodeInvalidValue  Code = "INVALID_VALUE"
	CodeObjectMissing Code = "OBJECT_NOT_FOUND"

	CodeEmptyOrder         Code = "EMPTY_ORDER"
	CodeTooManyItems       Code = "TOO_MANY_ITEMS"
	CodeProductUnavailable Code = "PRODUCT_UNAVAILABLE"
	CodeAddressRequired    Code = "ADDRESS_REQUIRED"
	CodeAmountMismatch     Code = "AMOUNT_MISMATCH"
	CodeMethodMismatch     Code = "PAYMENT_METHOD_MISMATCH"
	CodeNotDeliveryOrder   Code = "NOT_DELIVERY_ORDER"

	CodeOrderNotFound       Code = "ORDER_NOT_FOUND"
	CodeItemNotFound        Code = "ITEM_NOT_FOUND"
	CodeProductNotFound     Code = "PRODUCT_NOT_FOUND"
	CodeCourierNotFound     Code = "COURIER_NOT_FOUND"
	CodeTransactionNotFound Code = "TRANSACTION_NOT_FOUND"

	CodeCouponNotFound     Code = "COUPON_NOT_FOUND"
	CodeCouponInactive     Code = "COUPON_INACTIVE"
	CodeCouponWrongTenant  Code = "COUPON_WRONG_TENANT"
	CodeCouponExpired      Code = "COUPON_EXPIRED"
	CodeCouponBelowMinimum Code = "COUPON_BELOW_MINIMUM"

	CodeRegionUnavailable   Code = "REGION_UNAVAILABLE"
	CodeRegionNotConfigured Code = "REGION_NOT_CONFIGURED"

	CodeInvalidTransition        Code = "INVALID_TRANSITION"
	CodeInvalidPaymentTransition Code = "INVALID_PAYMENT_TRANSITION"
	CodeOrderNotEditable         Code = "ORDER_NOT_EDITABLE"
	CodeDuplicateTransaction     Code = "DUPLICATE_TRANSACTION"
	CodePaymentPending           Code = "PAYMENT_PENDING"
	CodeConcurrentUpdate         Code = "CONCURRENT_UPDATE"

	CodeGatewayUnavailable Code = "GATEWAY_UNAVAILABLE"
)

// DomainError is the typed failure returned by the ordering core.
type DomainError struct {
	Kind    Kind
	Code    Code
	Message string
	Cause   error
}

func newDomainError(kind Kind, code Code, message string, cause error) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message, Cause: cause}
}

func NewValidationError(code Code, message string) *DomainError {
	return newDomainError(KindValidation, code, message, nil)
}

func NewNotFoundError(code Code, message string) *DomainError {
	return newDomainError(KindNotFound, code, message, nil)
}

func NewConflictError(code Code, message string) *DomainError {
	return newDomainError(KindConflict, code, message, nil)
}

func NewExternalServiceError(code Code, message string, cause error) *DomainError {
	return newDomainError(KindExternalService, code, message, cause)
}

func NewRegionUnavailableError(code Code, message string) *DomainError {
	return newDomainError(KindRegionUnavailable, code, message, nil)
}

func (e *DomainError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, sanitize(e.Message))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is / errors.As.
func (e *DomainError) Unwrap() []error {
	out := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		out = append(out, s)
	}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

// KindOf classifies err. Value errors count as validation, ObjectNotFoundError as not found.
func KindOf(err error) Kind {
	var de *DomainError
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &de):
		return de.Kind
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	}
	return KindUnknown
}

// CodeOf returns the stable code of the first classified error in the chain, or "".
func CodeOf(err error) Code {
	var de *DomainError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &de):
		return de.Code
	case errors.Is(err, ErrObjectNotFound):
		return CodeObjectMissing
	case KindOf(err) == KindValidation:
		return CodeInvalidValue
	}
	return ""
}

// HasCode reports whether err carries code anywhere in its chain.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}
