// Package errdef defines the kinds of errors the API distinguishes. Handlers pass them on unchanged and the error
// middleware turns the kind into an HTTP status.
package errdef

import (
	"errors"
	"fmt"
)

type kind int

const (
	badRequest kind = iota
	unauthorized
	forbidden
	notFound
	duplicated
	conflict
	unsupportedMediaType
	invalidPassword
	invalidLink
)

type kindError struct {
	kind kind
	err  error
}

func (e *kindError) Error() string {
	return e.err.Error()
}

func (e *kindError) Unwrap() error {
	return e.err
}

func newError(k kind, format string, a ...any) error {
	return &kindError{kind: k, err: fmt.Errorf(format, a...)}
}

// is reports whether any error of kind k is in the chain of err.
func is(err error, k kind) bool {
	for err != nil {
		var e *kindError
		if !errors.As(err, &e) {
			return false
		}
		if e.kind == k {
			return true
		}
		err = e.err
	}
	return false
}

func NewBadRequest(format string, a ...any) error {
	return newError(badRequest, format, a...)
}

func IsBadRequest(err error) bool {
	return is(err, badRequest)
}

func NewUnauthorized(format string, a ...any) error {
	return newError(unauthorized, format, a...)
}

func IsUnauthorized(err error) bool {
	return is(err, unauthorized)
}

// NewForbidden is returned to authenticated users lacking the role, or whose account is disabled, locked or not
// yet approved.
func NewForbidden(format string, a ...any) error {
	return newError(forbidden, format, a...)
}

func IsForbidden(err error) bool {
	return is(err, forbidden)
}

func NewNotFound(format string, a ...any) error {
	return newError(notFound, format, a...)
}

func IsNotFound(err error) bool {
	return is(err, notFound)
}

func NewDuplicated(format string, a ...any) error {
	return newError(duplicated, format, a...)
}

func IsDuplicated(err error) bool {
	return is(err, duplicated)
}

// NewConflict is the catch-all for requests clashing with stored state, like an image name already taken or a
// file which couldn't be stored.
func NewConflict(format string, a ...any) error {
	return newError(conflict, format, a...)
}

func IsConflict(err error) bool {
	return is(err, conflict)
}

func NewUnsupportedMediaType(format string, a ...any) error {
	return newError(unsupportedMediaType, format, a...)
}

func IsUnsupportedMediaType(err error) bool {
	return is(err, unsupportedMediaType)
}

// NewInvalidPassword means a password didn't match the stored one or its confirmation.
func NewInvalidPassword(format string, a ...any) error {
	return newError(invalidPassword, format, a...)
}

func IsInvalidPassword(err error) bool {
	return is(err, invalidPassword)
}

// NewInvalidLink means an email confirmation or password reset token is unknown or expired.
func NewInvalidLink(format string, a ...any) error {
	return newError(invalidLink, format, a...)
}

func IsInvalidLink(err error) bool {
	return is(err, invalidLink)
}
