package authkit

import (
	"errors"
	"fmt"
)

// Domain errors. These are expected, business-meaningful failures and always
// reach the caller unwrapped. Match them with errors.Is.
var (
	// ErrMissingAccessToken is returned when verification is attempted on an
	// empty access token.
	ErrMissingAccessToken = errors.New("missing access token")

	// ErrAccessTokenExpired is returned when an access token's signature is
	// valid but its expiry has passed.
	ErrAccessTokenExpired = errors.New("access token expired")

	// ErrRefreshTokenInvalid is returned when a refresh token is unknown,
	// expired, revoked, or belongs to a user that no longer exists. The
	// conditions are deliberately indistinguishable to the caller.
	ErrRefreshTokenInvalid = errors.New("refresh token invalid")

	// ErrNotFound is the repository-level sentinel for a missing record.
	ErrNotFound = errors.New("not found")

	// ErrNotConfigured is returned by container accessors when the
	// configuration is missing or incomplete.
	ErrNotConfigured = errors.New("authkit: not configured")
)

// Stable codes for unexpected (infrastructure) failures.
const (
	CodeTokenSignFailed        = "token_sign_failed"
	CodeRefreshTokenCreateFail = "refresh_token_create_failed"
	CodeRefreshTokenVerifyFail = "refresh_token_verify_failed"
	CodeRefreshTokenRevokeFail = "refresh_token_revoke_failed"
)

// OpError wraps an unexpected failure with a stable, inspectable code. Domain
// errors are never wrapped in an OpError; IsDomain guards against that.
type OpError struct {
	Code string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// NewOpError classifies err under code. If err is already a domain error it is
// returned as-is so callers never see a double-wrapped domain failure.
func NewOpError(code string, err error) error {
	if IsDomain(err) {
		return err
	}
	return &OpError{Code: code, Err: err}
}

// IsDomain reports whether err is one of the domain sentinels.
func IsDomain(err error) bool {
	return errors.Is(err, ErrMissingAccessToken) ||
		errors.Is(err, ErrAccessTokenExpired) ||
		errors.Is(err, ErrRefreshTokenInvalid)
}
