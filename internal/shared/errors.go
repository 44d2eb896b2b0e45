package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAuthenticationRequired indicates no session or bearer token was presented.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrInvalidToken indicates a bearer token that failed signature or expiry checks.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserNotFound indicates a token referencing a user that no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrInsufficientPermission indicates the policy rejected an authenticated action.
	ErrInsufficientPermission = errors.New("insufficient permissions")
	// ErrInvalidRole indicates a role string outside the known ladder.
	ErrInvalidRole = errors.New("invalid role")
	// ErrValidation indicates a malformed request payload.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate indicates a uniqueness conflict.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrExternalService indicates the upstream war API failed or timed out.
	ErrExternalService = errors.New("external service error")
)
