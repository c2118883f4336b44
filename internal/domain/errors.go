package domain

import "errors"

var (
	// ErrNoCommunications indicates a negotiation was requested on a deal
	// that has no communication history to evaluate.
	ErrNoCommunications = errors.New("deal has no communications")
)
