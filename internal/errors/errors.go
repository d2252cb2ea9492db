package errors

import (
	"errors"
	"fmt"
)

// Metadata keys attached by the battle layers
const (
	MetaBattleID    = "battle_id"
	MetaCombatantID = "combatant_id"
	MetaTurn        = "turn"
)

// Error is a coded error with an optional cause and metadata
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Error formats as "CODE: message" with ": cause" appended when wrapped
func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

// Unwrap returns the cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code
func (e *Error) Is(target error) bool {
	var t *Error
	return errors.As(target, &t) && t.Code == e.Code
}

// WithMeta sets one metadata key and returns the same error
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// WithBattle tags the error with the battle it happened in
func (e *Error) WithBattle(id string) *Error {
	return e.WithMeta(MetaBattleID, id)
}

// WithTurn tags the error with the battle turn
func (e *Error) WithTurn(turn int) *Error {
	return e.WithMeta(MetaTurn, turn)
}

// WithCombatant tags the error with the combatant involved
func (e *Error) WithCombatant(id string) *Error {
	return e.WithMeta(MetaCombatantID, id)
}

// New creates an error with the given code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err. A wrapped *Error keeps its code and a copy of
// its metadata; anything else becomes Internal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var inner *Error
	if !errors.As(err, &inner) {
		return &Error{Code: CodeInternal, Message: message, Cause: err}
	}
	return &Error{Code: inner.Code, Message: message, Cause: err, Meta: copyMeta(inner.Meta)}
}

// Wrapf wraps err with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err and replaces its code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: err, Meta: copyMeta(GetMeta(err))}
}

func copyMeta(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// NotFound reports a missing battle, character or content entry
func NotFound(message string) *Error { return New(CodeNotFound, message) }

// NotFoundf is NotFound with a formatted message
func NotFoundf(format string, args ...any) *Error { return Newf(CodeNotFound, format, args...) }

// InvalidArgument reports bad input
func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

// InvalidArgumentf is InvalidArgument with a formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExistsf reports a duplicate ID on create
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// FailedPrecondition reports a battle not in a state to accept the call
func FailedPrecondition(message string) *Error { return New(CodeFailedPrecondition, message) }

// FailedPreconditionf is FailedPrecondition with a formatted message
func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// Internal reports a bug or storage failure
func Internal(message string) *Error { return New(CodeInternal, message) }

// Internalf is Internal with a formatted message
func Internalf(format string, args ...any) *Error { return Newf(CodeInternal, format, args...) }
