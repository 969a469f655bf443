package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicate      = errors.New("duplicate resource")
	ErrUnauthorized   = errors.New("not authorized")
	ErrEmptyBill      = errors.New("bill has no line items")
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session expired")
)
