// Package server provides the HTTP API serving the three workflow
// collaborators: skill extraction, learning resources and profile search.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/gapmap/internal/services"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		inputErr      *services.InputError
		upstreamErr   *services.UpstreamError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the client-facing text for err. Validation and input
// errors carry their own message; anything else is reported as is.
func errorMessage(err error) string {
	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return err.Error()
}
