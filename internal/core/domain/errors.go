package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrTokenRevoked       = errors.New("token revoked")

	ErrNotFound           = errors.New("not found")
	ErrClientNotFound     = wrapNotFound("client not found")
	ErrStatusTypeNotFound = wrapNotFound("status type not found")
	ErrReportNotFound     = wrapNotFound("report not found")

	ErrValidation     = errors.New("validation failed")
	ErrNothingToApply = errors.New("no fields to update")
	ErrInvalidKey     = errors.New("invalid action status key")

	ErrConflict         = errors.New("conflict")
	ErrStatusTypeExists = wrapConflict("status type already exists")
	ErrReportExists     = wrapConflict("report for this date already exists")
)

// kindError is a sentinel that also matches its broader kind under errors.Is,
// so callers can test for ErrNotFound without enumerating every entity.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func wrapNotFound(msg string) error { return &kindError{msg: msg, kind: ErrNotFound} }
func wrapConflict(msg string) error { return &kindError{msg: msg, kind: ErrConflict} }
