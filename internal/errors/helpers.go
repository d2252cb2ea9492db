package errors

import (
	"errors"
)

// As is errors.As narrowed to *Error
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is is errors.Is, re-exported so callers need only this package
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of err. Nil is OK, foreign errors are Internal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// GetMeta returns the metadata of the outermost *Error in the chain
func GetMeta(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Meta
	}
	return nil
}

// GetMessage returns the message without code or cause
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsNotFound reports CodeNotFound
func IsNotFound(err error) bool { return GetCode(err) == CodeNotFound }

// IsInvalidArgument reports CodeInvalidArgument
func IsInvalidArgument(err error) bool { return GetCode(err) == CodeInvalidArgument }

// IsAlreadyExists reports CodeAlreadyExists
func IsAlreadyExists(err error) bool { return GetCode(err) == CodeAlreadyExists }

// IsFailedPrecondition reports CodeFailedPrecondition
func IsFailedPrecondition(err error) bool { return GetCode(err) == CodeFailedPrecondition }

// IsUnavailable reports CodeUnavailable
func IsUnavailable(err error) bool { return GetCode(err) == CodeUnavailable }

// IsInternal reports CodeInternal
func IsInternal(err error) bool { return GetCode(err) == CodeInternal }
