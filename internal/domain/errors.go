package domain

import "errors"

// Cross-cutting workflow error taxonomy. Handlers map these to HTTP codes;
// repositories and services wrap them with context via fmt.Errorf("%w", ...).
var (
	ErrNotFound          = errors.New("not_found")
	ErrExpired           = errors.New("expired")
	ErrInvalidTransition = errors.New("invalid_status_transition")
	ErrInvalidState      = errors.New("invalid_payment_state")
	ErrCatalogReference  = errors.New("catalog_reference_error")
	ErrSignature         = errors.New("invalid_signature")
	ErrValidation        = errors.New("validation error")
)
