package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// entity does not exist in the loaded collections.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, non-positive duration).
// State is never mutated when this error is returned.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInUse is returned when deleting a customer or package that is still
// referenced by at least one booking. The entity stays in its collection.
var ErrInUse = errors.New("in use")

// ErrBooking covers booking failures: the service cannot be booked, is not
// available, or the booking is already cancelled.
var ErrBooking = errors.New("booking failed")

// ErrPayment covers payment failures: missing booking, amount or method, or
// a payment that did not process.
var ErrPayment = errors.New("payment failed")

// ErrPersistence wraps an I/O or parse error on one data file.
// It never aborts the load or save of the other files.
var ErrPersistence = errors.New("persistence failure")

// ErrDuplicateID is returned when adding an entity whose ID is already present.
var ErrDuplicateID = errors.New("duplicate id")
