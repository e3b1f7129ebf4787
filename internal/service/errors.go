package service

import (
	"errors"
	"fmt"
	"log/slog"
)

// Kind classifies a service failure.
type Kind int

const (
	// KindValidation means the caller violated a documented
	// precondition. The message is specific and safe to show verbatim.
	KindValidation Kind = iota + 1

	// KindInfrastructure means the storage layer failed. The message is
	// generic; the cause is preserved for logs via Unwrap.
	KindInfrastructure
)

// Error is the only error type the services return. The underlying
// store error never escapes except through Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var svcErr *Error
	return errors.As(err, &svcErr) && svcErr.Kind == KindValidation
}

// IsInfrastructure reports whether err is a storage-layer failure.
func IsInfrastructure(err error) bool {
	var svcErr *Error
	return errors.As(err, &svcErr) && svcErr.Kind == KindInfrastructure
}

func validationErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func infrastructureErr(message string, cause error) *Error {
	return &Error{Kind: KindInfrastructure, Message: message, Err: cause}
}

// classify maps an error escaping a transaction to the public taxonomy.
// Validation errors raised inside the transaction propagate unchanged
// at warn level; anything else is a storage failure reported with the
// generic message at error level, cause attached.
func classify(logger *slog.Logger, err error, op, generic string) error {
	if err == nil {
		return nil
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		if svcErr.Kind == KindValidation {
			logger.Warn("validation error", "op", op, "message", svcErr.Message)
		}
		return svcErr
	}
	logger.Error(generic, "op", op, "cause", err)
	return infrastructureErr(generic, err)
}
