// Package errs defines the two error kinds every core operation can fail
// with. An InputError means the request itself is malformed or names a
// target that does not exist; an AccessError means the request is well
// formed but the caller is not allowed to perform it.
//
// The transport layer maps InputError to a 400-class status and AccessError
// to a 403-class status; anything else is an internal fault. The core never
// emits transport codes itself.
package errs

import "errors"

// InputError reports a malformed argument or a non-existent target:
// a bad id, an oversized or empty body, an invalid enum value, a time
// in the past.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// AccessError reports a permission failure: an invalid or logged-out
// token, a caller who is not a member, not an owner, or not a global
// owner.
type AccessError struct {
	Msg string
}

func (e *AccessError) Error() string { return e.Msg }

// Input builds an InputError.
func Input(msg string) error { return &InputError{Msg: msg} }

// Access builds an AccessError.
func Access(msg string) error { return &AccessError{Msg: msg} }

// IsInput reports whether err is (or wraps) an InputError.
func IsInput(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// IsAccess reports whether err is (or wraps) an AccessError.
func IsAccess(err error) bool {
	var ae *AccessError
	return errors.As(err, &ae)
}
