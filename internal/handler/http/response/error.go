package response

import (
	"errors"
	"net/http"

	"github.com/jornada-app/jornada-backend-go/internal/domain/auth"
	"github.com/jornada-app/jornada-backend-go/internal/domain/timelog"
	"github.com/jornada-app/jornada-backend-go/internal/domain/user"
	"github.com/jornada-app/jornada-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Auth failures keep their
// distinct signals; only unexpected storage faults collapse into an opaque 500.
func HandleError(w http.ResponseWriter, err error) {
	// Malformed input
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Workflow violations: valid input, wrong state. 409 so clients can tell
	// them apart from validation errors.
	var illegal *timelog.IllegalTransitionError
	if errors.As(err, &illegal) {
		Conflict(w, illegal.Error(), map[string]string{
			"currentStatus":  string(illegal.Current),
			"requestedEvent": string(illegal.Requested),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrOAuthEmailUnknown):
		Unauthorized(w, "No account registered for this google email")

	// User domain errors
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrCannotDeleteSelf):
		Forbidden(w, "Cannot delete your own account")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "User with this email already exists", nil)
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Timelog domain errors
	case errors.Is(err, timelog.ErrTimeLogNotFound):
		NotFound(w, "Time log not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
