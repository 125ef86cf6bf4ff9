package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/pkg/directorysdk"
	"github.com/aussiebroadwan/directory/pkg/httpx"
)

// statusFor maps a service error to its HTTP status and the message that
// may be shown to the caller. Unknown errors are opaque.
func statusFor(err error) (int, string) {
	var (
		ve *domain.ValidationError
		ae *domain.AuthenticationError
		ne *domain.NotFoundError
		ce *domain.ConflictError
		ie *domain.IntegrityError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.As(err, &ae):
		return http.StatusUnauthorized, ae.Message
	case errors.As(err, &ne):
		return http.StatusNotFound, ne.Message
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "account not found"
	case errors.As(err, &ce):
		return http.StatusConflict, ce.Message
	case errors.As(err, &ie):
		return http.StatusBadRequest, ie.Message
	default:
		return http.StatusInternalServerError, "An unexpected error occurred."
	}
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	default:
		return "server_error"
	}
}

func writeJSONError(w http.ResponseWriter, status int, description string) {
	httpx.WriteJSON(w, status, directorysdk.ErrorResponse{
		Error:            errorCode(status),
		ErrorDescription: description,
	})
}
