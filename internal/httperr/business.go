package httperr

import "errors"

// Kind classifies an expected failure so adapters can map it to a status.
type Kind int

const (
	KindBusiness Kind = iota
	KindNotFound
	KindForbidden
	KindValidation
	KindConflict
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func newError(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func ErrBusiness(code, message string) error {
	return newError(KindBusiness, code, message)
}

func ErrNotFound(code, message string) error {
	return newError(KindNotFound, code, message)
}

func ErrForbidden(code, message string) error {
	return newError(KindForbidden, code, message)
}

func ErrValidation(code, message string) error {
	return newError(KindValidation, code, message)
}

func ErrConflict(code, message string) error {
	return newError(KindConflict, code, message)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// As reports whether err carries an expected failure.
func As(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
