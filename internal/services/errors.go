package services

import "errors"

// ErrInvalidCredentials is returned by Login when the account exists but
// the supplied password does not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError is a locally detected precondition violation. It is
// surfaced before any backend call is made; the message includes the
// violated bound so the user can correct the input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
