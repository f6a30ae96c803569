package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrDuplicate       = errors.New("already exists")
	ErrAlreadyInCart   = errors.New("product is already in cart")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrTransaction     = errors.New("transaction failed")
	ErrConnectivity    = errors.New("storage unreachable")
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
