// Package errs provides the error types shared by the ordering core.
//
// Two families live here:
//   - value errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError) raised by constructors and repositories;
//   - DomainError, which carries a Kind (validation, not found, conflict, external service,
//     region unavailable) and a stable Code the calling layer can switch on.
//
// Every value error follows the same shape: a sentinel variable, a struct with the details,
// constructors with and without a cause, Error and Unwrap. KindOf and CodeOf classify any
// error in the chain, so callers never match on message text.
package errs
