package service

import "errors"

// ErrUnauthorized indicates the session credential is missing or was
// rejected by the remote service. It is never retried: the caller must
// clear the session and send the user back to authentication.
var ErrUnauthorized = errors.New("unauthorized")

// IsUnauthorized reports whether err is, or wraps, ErrUnauthorized.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
