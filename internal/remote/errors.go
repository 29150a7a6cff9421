package remote

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/crmdesk/crm-system/internal/core/domain"
)

// ErrNetwork matches every *Error of KindNetwork under errors.Is.
var ErrNetwork = errors.New("network unavailable")

// Kind classifies a failed call.
type Kind int

const (
	KindServer Kind = iota
	KindAuth
	KindValidation
	KindNotFound
	KindConflict
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindNetwork:
		return "network"
	default:
		return "server"
	}
}

// Error is returned by every Client method. Message is safe to show to the
// operator.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets callers test the kind with the domain sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case domain.ErrUnauthenticated:
		return e.Kind == KindAuth
	case domain.ErrValidation:
		return e.Kind == KindValidation
	case domain.ErrNotFound:
		return e.Kind == KindNotFound
	case domain.ErrConflict:
		return e.Kind == KindConflict
	case ErrNetwork:
		return e.Kind == KindNetwork
	}
	return false
}

// KindOf returns the kind of err, or KindServer for foreign errors.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindServer
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	default:
		return KindServer
	}
}
