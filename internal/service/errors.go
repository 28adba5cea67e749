package service

import "errors"

// ErrTimeout is returned when an external call exceeded its budget.
// It is distinguishable from store.ErrUnavailable so the caller can explain
// "the service took too long" differently from "the store is unreachable".
var ErrTimeout = errors.New("external call timed out")

// ErrInvalidContactID is returned when a caller-supplied identifier fails
// the canonical chat identifier grammar.
var ErrInvalidContactID = errors.New("invalid chat identifier")
