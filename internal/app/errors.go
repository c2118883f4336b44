// Package app defines the ports to external collaborators and the error
// taxonomy shared by the service and pipeline layers.
package app

import "fmt"

// ValidationError marks a rejected state transition or malformed input. The
// operation was refused; retrying without change will fail again.
type ValidationError struct {
	Entity string
	ID     string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.ID, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// CollaboratorError wraps a failure of an external collaborator (sourcing,
// messaging). The affected entity is skipped and retried on a later cycle.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator %s: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }
