package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/collabsphere/collabsphere/internal/store"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type Kind string

const (
	KindValidation           Kind = "validation"
	KindNotFound             Kind = "not_found"
	KindForbidden            Kind = "forbidden"
	KindUnauthorized         Kind = "unauthorized"
	KindInvalidState         Kind = "invalid_state"
	KindAlreadyProcessed     Kind = "already_processed"
	KindDuplicateApplication Kind = "duplicate_application"
	KindDeadlineExpired      Kind = "deadline_expired"
	KindStorage              Kind = "storage"
)

// Error carries a machine-readable kind and a message safe to show users.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind when the target has no message,
// so errors.Is(err, ErrNotFound) works for every not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrValidation           = &Error{Kind: KindValidation}
	ErrNotFound             = &Error{Kind: KindNotFound}
	ErrForbidden            = &Error{Kind: KindForbidden}
	ErrUnauthorized         = &Error{Kind: KindUnauthorized}
	ErrInvalidState         = &Error{Kind: KindInvalidState}
	ErrAlreadyProcessed     = &Error{Kind: KindAlreadyProcessed}
	ErrDuplicateApplication = &Error{Kind: KindDuplicateApplication}
	ErrDeadlineExpired      = &Error{Kind: KindDeadlineExpired}
	ErrStorage              = &Error{Kind: KindStorage}
)

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func storageError(op string, err error) *Error {
	return &Error{Kind: KindStorage, Message: op, Err: err}
}

// KindOf reports the kind of err; anything that is not an *Error counts as a
// storage failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// lookupError turns a store read failure into not-found or storage.
func lookupError(err error, notFound string) error {
	var e *Error
	switch {
	case errors.As(err, &e):
		return e
	case errors.Is(err, gorm.ErrRecordNotFound):
		return newError(KindNotFound, notFound)
	default:
		return storageError("query failed", err)
	}
}

func isDuplicate(err error) bool {
	return errors.Is(err, store.ErrDuplicate)
}

// ValidationFailed renders validator field errors as a single validation
// error. Other errors keep their text.
func ValidationFailed(err error) *Error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return newError(KindValidation, err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fmt.Sprintf("Field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s (value: %s)", msg, fe.Param())
		}
		msgs = append(msgs, msg)
	}
	return newError(KindValidation, strings.Join(msgs, "; "))
}
