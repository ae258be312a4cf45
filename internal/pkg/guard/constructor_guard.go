// Package guard provides ConstructorGuard, a marker embedded in domain types so a
// zero value can be told apart from a value produced by its constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing value went through its constructor.
// Embed it as an unexported field and set it with NewConstructorGuard:
//
//	type Driver struct {
//	    email string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewDriver(email string) (*Driver, error) {
//	    return &Driver{email: email, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (d *Driver) Validate() error {
//	    return d.guard.Validate(ErrDriverIsNotConstructed)
//	}
//
// The guard is a plain value, safe to copy and to read concurrently.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError otherwise.
// A nil validationError is replaced with ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
