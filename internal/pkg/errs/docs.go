// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two families of errors.
//
// Validation errors, used by domain constructors and setters:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//
// Operation outcome errors, returned by every public command and query:
//   - RefusalError: an expected, named business denial (offline driver, vendor mismatch,
//     disabled notification category). It carries a user-facing message and a status hint.
//   - FailureError: an unexpected persistence or transport failure. It carries the name of
//     the operation that failed, the cause and a serialized diagnostic of the cause chain.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
package errs
