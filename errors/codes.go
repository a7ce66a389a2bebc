package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Request errors (caller bug, safe to expose detail)
const (
	// ErrCodeInvalidInput indicates a malformed request.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Authentication errors
const (
	// ErrCodeTooManyAttempts indicates the identity is rate limited.
	ErrCodeTooManyAttempts ErrorCode = "TOO_MANY_ATTEMPTS"
	// ErrCodeInvalidCredentials is the generic login failure. The same code and
	// wording are used whether the identity or the secret was wrong.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeTokenInvalid indicates a refresh token that does not validate.
	ErrCodeTokenInvalid ErrorCode = "TOKEN_INVALID"
	// ErrCodeTokenExpired indicates an expired access token.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
)

// Operational errors
const (
	// ErrCodeConfiguration indicates invalid or missing process configuration.
	// Fatal at startup, never produced per-request.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeDependencyUnavailable indicates a backing store or external
	// collaborator is unreachable.
	ErrCodeDependencyUnavailable ErrorCode = "DEPENDENCY_UNAVAILABLE"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTooManyAttempts:       true,
	ErrCodeDependencyUnavailable: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
