package services

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrOrderInvalid rejects an order creation request: no lines, a
	// non-positive quantity, an unknown customer, or an unknown product.
	// The cases are indistinguishable to the caller.
	ErrOrderInvalid = errors.New("invalid order request")
)
