package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrBusinessRefusal    = errors.New("business refusal")
	ErrUnexpectedFailure  = errors.New("unexpected failure")
	errRecoveredFromPanic = errors.New("recovered from panic")
)

// RefusalError is an expected denial of an operation. Callers present Message
// to the user and use Status as a transport hint; it is never a system failure.
type RefusalError struct {
	Message      string
	Status       int
	FunctionName string
}

// NewRefusalError creates a refusal with the default status hint (http.StatusOK,
// the request itself was understood and answered).
func NewRefusalError(message string) *RefusalError {
	return &RefusalError{Message: message, Status: http.StatusOK}
}

// NewRefusalErrorWithStatus creates a refusal raised by functionName with an explicit status hint.
func NewRefusalErrorWithStatus(functionName string, message string, status int) *RefusalError {
	return &RefusalError{Message: message, Status: status, FunctionName: functionName}
}

func (e *RefusalError) Error() string {
	if e.FunctionName != "" {
		return fmt.Sprintf("%s: %s: %s", ErrBusinessRefusal, e.FunctionName, e.Message)
	}
	return fmt.Sprintf("%s: %s", ErrBusinessRefusal, e.Message)
}

func (e *RefusalError) Is(target error) bool {
	return target == ErrBusinessRefusal
}

// FailureError wraps a persistence or transport error at the boundary of the
// operation that triggered it.
type FailureError struct {
	FunctionName string
	Status       int
	Cause        error
	// Diagnostic is the serialized cause chain: one "type: message" entry per wrapped layer.
	Diagnostic string
}

func NewFailureError(functionName string, cause error) *FailureError {
	return &FailureError{
		FunctionName: functionName,
		Status:       http.StatusInternalServerError,
		Cause:        cause,
		Diagnostic:   Diagnose(cause),
	}
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("%s in %s: %v", ErrUnexpectedFailure, e.FunctionName, e.Cause)
}

func (e *FailureError) Is(target error) bool {
	return target == ErrUnexpectedFailure
}

func (e *FailureError) Unwrap() error {
	return e.Cause
}

// AsFailure converts err into the operation outcome taxonomy. Refusals and
// failures raised deeper in the call chain pass through unchanged so their
// message, status and function name survive; anything else becomes a
// FailureError attributed to functionName.
func AsFailure(functionName string, err error) error {
	if err == nil {
		return nil
	}

	var refusal *RefusalError
	if errors.As(err, &refusal) {
		return refusal
	}

	var failure *FailureError
	if errors.As(err, &failure) {
		return failure
	}

	return NewFailureError(functionName, err)
}

// Recover turns a panic into a FailureError stored in *errp. It must be
// deferred directly:
//
//	func (h Handler) Handle(ctx context.Context, cmd Command) (err error) {
//	    defer errs.Recover("handle", &err)
//	    ...
//	}
func Recover(functionName string, errp *error) {
	r := recover()
	if r == nil {
		return
	}

	cause, ok := r.(error)
	if !ok {
		cause = fmt.Errorf("%w: %v", errRecoveredFromPanic, r)
	} else {
		cause = fmt.Errorf("%w: %w", errRecoveredFromPanic, cause)
	}
	*errp = NewFailureError(functionName, cause)
}

// IsRefusal reports whether err is a business refusal.
func IsRefusal(err error) bool {
	return errors.Is(err, ErrBusinessRefusal)
}

// Diagnose serializes the full cause chain of err, including joined errors.
func Diagnose(err error) string {
	if err == nil {
		return ""
	}

	var parts []string
	var walk func(e error)
	walk = func(e error) {
		for e != nil {
			parts = append(parts, fmt.Sprintf("%T: %s", e, e.Error()))
			if joined, ok := e.(interface{ Unwrap() []error }); ok {
				for _, inner := range joined.Unwrap() {
					walk(inner)
				}
				return
			}
			e = errors.Unwrap(e)
		}
	}
	walk(err)

	return strings.Join(parts, " <- ")
}
