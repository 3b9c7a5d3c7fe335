package httpx

import (
	"errors"
	"net/http"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
//
// Ownership denials map to 401, matching the API contract: the caller holds a
// valid token but is not authorized for this resource, and the surface reports
// that as an authentication-level rejection rather than 403.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrEmailTaken):
		Problem(w, http.StatusBadRequest, "Email In Use", err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusBadRequest, "Invalid Credentials", err.Error())
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
