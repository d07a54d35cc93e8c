package services

import (
	"errors"
	"fmt"

	"storefront/internal/repositories"
)

// Sentinel errors returned by services. Handlers map them onto HTTP status codes.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// repoErr rewraps repository sentinels as service sentinels, keeping the message.
func repoErr(err error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case errors.Is(err, repositories.ErrDuplicate), errors.Is(err, repositories.ErrStale):
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
