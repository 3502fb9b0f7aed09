package errors

import (
	"errors"
	"fmt"
)

// Kind categorizes a failure so the CLI can decide exit behavior and
// which remediation hint to print.
type Kind int

const (
	// KindMissingCredential - required API token absent; fatal before any network call
	KindMissingCredential Kind = iota
	// KindAuthFailure - the incident backend rejected the token (401/403)
	KindAuthFailure
	// KindNotFound - incident id or service did not resolve
	KindNotFound
	// KindBackendUnavailable - network or transport failure reaching the backend
	KindBackendUnavailable
	// KindChangeHistoryUnavailable - version-control query failed; analysis degrades
	KindChangeHistoryUnavailable
	// KindInvalidInput - caller supplied invalid data (bad timestamp, bad flag value)
	KindInvalidInput
)

// Error is a structured error carrying a Kind, an optional cause, and a
// user-facing remediation hint.
type Error struct {
	Kind    Kind
	Message string
	Hint    string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by Kind so callers can use errors.Is with the
// exported sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Fatal reports whether this error should terminate the run. Change
// history failures are the only recoverable kind: the pipeline proceeds
// with an empty change set.
func (e *Error) Fatal() bool {
	return e.Kind != KindChangeHistoryUnavailable
}

// WithHint attaches a remediation hint shown to the user
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// Sentinels for errors.Is matching.
var (
	ErrMissingCredential        = &Error{Kind: KindMissingCredential}
	ErrAuthFailure              = &Error{Kind: KindAuthFailure}
	ErrNotFound                 = &Error{Kind: KindNotFound}
	ErrBackendUnavailable       = &Error{Kind: KindBackendUnavailable}
	ErrChangeHistoryUnavailable = &Error{Kind: KindChangeHistoryUnavailable}
	ErrInvalidInput             = &Error{Kind: KindInvalidInput}
)

// MissingCredential creates a missing-credential error
func MissingCredential(message string) *Error {
	return &Error{Kind: KindMissingCredential, Message: message}
}

// AuthFailure creates an auth-failure error for a 401/403 response
func AuthFailure(message string) *Error {
	return &Error{Kind: KindAuthFailure, Message: message}
}

// NotFoundf creates a not-found error for an incident id or service name
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// BackendUnavailable wraps a transport failure; endpoint names the failing call
func BackendUnavailable(endpoint string, cause error) *Error {
	return &Error{
		Kind:    KindBackendUnavailable,
		Message: fmt.Sprintf("request to %s failed", endpoint),
		Cause:   cause,
	}
}

// ChangeHistoryUnavailable wraps a version-control query failure
func ChangeHistoryUnavailable(message string, cause error) *Error {
	return &Error{Kind: KindChangeHistoryUnavailable, Message: message, Cause: cause}
}

// InvalidInputf creates an invalid-input error
func InvalidInputf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or ok=false if err is not a *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// HintOf returns the remediation hint attached to err, if any.
func HintOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Hint
	}
	return ""
}
