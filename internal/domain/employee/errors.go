package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("Employee not found")

	// ErrMissingHireDate marks an employee record the entitlement calculation
	// cannot proceed from. It is never silently defaulted to zero.
	ErrMissingHireDate = errors.New("Employee record has no hire date")
)
