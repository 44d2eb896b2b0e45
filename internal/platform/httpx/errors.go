package httpx

import (
	"errors"
	"net/http"

	"github.com/siege-works/garrison/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807. All
// authentication failure kinds collapse to a single 401; the distinction
// between them is logged at the call site only.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrAuthenticationRequired),
		errors.Is(err, shared.ErrInvalidToken),
		errors.Is(err, shared.ErrInvalidCredentials),
		errors.Is(err, shared.ErrUserNotFound):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "not authenticated")
	case errors.Is(err, shared.ErrInsufficientPermission):
		Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, shared.ErrInvalidRole):
		Problem(w, http.StatusBadRequest, "Invalid Role", err.Error())
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrExternalService):
		Problem(w, http.StatusBadGateway, "Bad Gateway", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
