package apiclient

import (
	"errors"
	"net/http"
)

// Error kinds. Use errors.Is against these.
var (
	ErrSessionExpired = errors.New("session expired")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrRateLimited    = errors.New("rate limited")
	ErrServer         = errors.New("server error")
	ErrUnreachable    = errors.New("cannot reach server")
	ErrRequest        = errors.New("request failed")
)

// User-facing messages.
const (
	msgSessionExpired = "Sesión expirada. Por favor, inicia sesión nuevamente."
	msgForbidden      = "No tienes permisos para realizar esta acción."
	msgNotFound       = "Recurso no encontrado."
	msgRateLimited    = "Demasiadas peticiones. Por favor, intenta más tarde."
	msgServer         = "Error del servidor. Por favor, intenta más tarde."
	msgUnreachable    = "No se pudo conectar con el servidor. Verifica tu conexión."
	msgDefault        = "Error en la petición"
)

// Error is a failed backend call. Message is safe to show to the user.
type Error struct {
	Status  int
	Message string
	kind    error
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	errs := []error{e.kind}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// Message returns the user-facing text of err, falling back to fallback
// when err did not come from the API client.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// statusError maps a non-2xx status to the error taxonomy. bodyMessage is
// only used for statuses without a dedicated kind.
func statusError(status int, bodyMessage string) *Error {
	switch status {
	case http.StatusUnauthorized:
		return &Error{Status: status, Message: msgSessionExpired, kind: ErrSessionExpired}
	case http.StatusForbidden:
		return &Error{Status: status, Message: msgForbidden, kind: ErrForbidden}
	case http.StatusNotFound:
		return &Error{Status: status, Message: msgNotFound, kind: ErrNotFound}
	case http.StatusTooManyRequests:
		return &Error{Status: status, Message: msgRateLimited, kind: ErrRateLimited}
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return &Error{Status: status, Message: msgServer, kind: ErrServer}
	default:
		return &Error{Status: status, Message: bodyMessage, kind: ErrRequest}
	}
}

func unreachable(cause error) *Error {
	return &Error{Message: msgUnreachable, kind: ErrUnreachable, cause: cause}
}
