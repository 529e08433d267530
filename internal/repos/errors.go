package repos

import "errors"

var (
	// ErrInsufficientStock is returned when a guarded decrement would
	// take quantity_available below zero.
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrDuplicateEmail is returned when an email is already registered
	// in the target table.
	ErrDuplicateEmail = errors.New("correo ya registrado")
)
