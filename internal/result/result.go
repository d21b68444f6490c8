// Package result carries the tri-state outcome returned to callers of the
// booking, dispute and rating operations.
package result

import (
	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/httperr"
)

const (
	CodeUnexpected    = "unexpected_error"
	MessageUnexpected = "An unexpected error occurred"
)

type Result[T any] struct {
	Value        T      `json:"value"`
	Success      bool   `json:"success"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func OK[T any](v T) Result[T] {
	return Result[T]{Value: v, Success: true}
}

func Fail[T any](code, message string) Result[T] {
	return Result[T]{ErrorCode: code, ErrorMessage: message}
}

// From converts a (value, error) pair. Expected failures keep their code and
// message; anything else is logged and replaced by a generic message so
// storage details never reach the caller. The returned kind is only
// meaningful when Success is false; unexpected reports false.
func From[T any](v T, err error, log logrus.FieldLogger) (Result[T], httperr.Kind, bool) {
	if err == nil {
		return OK(v), 0, true
	}

	if be, ok := httperr.As(err); ok {
		return Fail[T](be.Code, be.Error()), be.Kind, true
	}

	if log != nil {
		log.WithError(err).Error("unexpected failure")
	}
	return Fail[T](CodeUnexpected, MessageUnexpected), 0, false
}
