package service

import "errors"

// Sentinel errors the HTTP layer maps to status codes. Services wrap them
// with detail: fmt.Errorf("%w: the cart is empty", ErrValidation).
var (
	ErrValidation   = errors.New("validation")    // 400
	ErrUnauthorized = errors.New("unauthorized")  // 401
	ErrForbidden    = errors.New("forbidden")     // 403
	ErrNotFound     = errors.New("not found")     // 404
	ErrProtected    = errors.New("protected")     // 405, guarded delete
	ErrConflict     = errors.New("conflict")      // 409
)
