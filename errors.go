package blog

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Token failures carry their HTTP status and a stable text code so the
// transport layer never has to inspect messages.
var (
	// ErrTokenMissing is the error for an absent Authorization header or a
	// header that does not use the bearer scheme
	ErrTokenMissing = errors.New("authentication token required", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode("TOKEN_MISSING")

	// ErrTokenExpired is the error for tokens past their expiry
	ErrTokenExpired = errors.New("authentication token is expired", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode("TOKEN_EXPIRED")

	// ErrTokenMalformed is the error for tokens that fail parsing or
	// signature verification
	ErrTokenMalformed = errors.New("invalid or malformed authentication token", errors.CategoryAuth).
				WithCode(errors.CodeUnauthorized).
				WithTextCode("TOKEN_MALFORMED")

	// ErrTokenUndecodable is the error for any other decode anomaly
	ErrTokenUndecodable = errors.New("unable to decode authentication token", errors.CategoryAuth).
				WithCode(errors.CodeUnauthorized).
				WithTextCode("TOKEN_UNDECODABLE")

	// ErrBadCredentials is the error for unknown usernames and wrong
	// passwords alike; sign-in never says which one failed
	ErrBadCredentials = errors.New("invalid username or password", errors.CategoryAuth).
				WithCode(errors.CodeUnauthorized).
				WithTextCode("BAD_CREDENTIALS")

	// ErrNoEmptyString is returned when hashing an empty password
	ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
				WithCode(errors.CodeBadRequest)

	// ErrMismatchedHashAndPassword is the error for a failed hash comparison
	ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
					WithCode(errors.CodeUnauthorized)
)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if hasTextCode(err, ErrTokenExpired.TextCode) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if hasTextCode(err, ErrTokenMalformed.TextCode) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsNotFoundError will check for missing records
func IsNotFoundError(err error) bool {
	return hasCategory(err, errors.CategoryNotFound)
}

// IsForbiddenError will check for authorization denials
func IsForbiddenError(err error) bool {
	return hasCategory(err, errors.CategoryAuthz)
}

// IsConflictError will check for uniqueness violations
func IsConflictError(err error) bool {
	return hasCategory(err, errors.CategoryConflict)
}

func hasTextCode(err error, code string) bool {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.TextCode == code
	}
	return false
}

func hasCategory(err error, category errors.Category) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == category
	}
	return false
}
