package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrUnauthorized    = errors.New("unauthorized")
)

// NewKind returns a bare kind error for op.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags err with kind so callers can match either with errors.Is.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the client-facing text for an error kind.
func publicMessage(err error) string {
	switch {
	case errors.Is(err, ErrPayloadTooLarge):
		return "Request body too large."
	case errors.Is(err, ErrBadRequest):
		return "Malformed JSON body."
	case errors.Is(err, ErrUnauthorized):
		return apiKeyErrorMessage
	default:
		return http.StatusText(http.StatusInternalServerError)
	}
}
