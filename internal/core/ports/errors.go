package ports

import "errors"

var (
	// ErrOrderAlreadyAssigned is returned by AssignmentRepository when the order
	// already holds an active assignment.
	ErrOrderAlreadyAssigned = errors.New("order already has an active assignment")

	// ErrOrderAlreadyExists is returned by OrderRepository.Add for a duplicate id.
	ErrOrderAlreadyExists = errors.New("order already exists")
)
