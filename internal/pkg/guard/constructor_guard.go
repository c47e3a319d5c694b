// Package guard holds the constructor guard shared by commands, queries and
// domain objects.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. The zero value is
// "not constructed", so embedding a guard lets Validate reject structs created
// with a literal or left uninitialised.
//
//	type RunSchedulerCommand struct {
//	    asOf  kernel.Date
//	    guard guard.ConstructorGuard
//	}
//
//	func (c RunSchedulerCommand) Validate() error {
//	    return c.guard.Validate(ErrRunSchedulerCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard flagged as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil) for
// a zero-value guard and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
