package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrorKind classifies failures returned by session operations and the API client.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindAuthentication ErrorKind = "authentication"
	KindNetwork        ErrorKind = "network"
	KindPrecondition   ErrorKind = "precondition"
)

// NonFieldKey is the key the backend uses for errors not tied to an input.
const NonFieldKey = "non_field_errors"

var (
	ErrUnauthenticated     = errors.New("session is not authenticated")
	ErrOperationInProgress = errors.New("another session operation is in progress")
	ErrInitializing        = errors.New("session is still initializing")
	ErrSessionExpired      = errors.New("session expired")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNotFound            = errors.New("resource not found")
	ErrForbidden           = errors.New("access forbidden")
	ErrMissingToken        = errors.New("backend returned no token")
)

// Fallback messages shown when the backend gives nothing more specific.
const (
	MsgLoginFailed    = "login failed"
	MsgUpdateFailed   = "profile update failed"
	MsgRegisterFailed = "registration failed"
	MsgPasswordFailed = "password change failed"
	MsgNetwork        = "the server could not be reached, try again later"
)

// Error is the single error type surfaced by session operations.
type Error struct {
	Kind    ErrorKind
	Message string
	// Fields holds per-input messages keyed by the backend field name.
	Fields map[string][]string
	// Status is the HTTP status of the backend response, 0 when none was received.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Field returns the first message recorded for field.
func (e *Error) Field(field string) string {
	if e == nil || len(e.Fields[field]) == 0 {
		return ""
	}
	return e.Fields[field][0]
}

// WithFallback returns a copy whose Message is replaced by the precedence rule
// using fallback as the generic message.
func (e *Error) WithFallback(fallback string) *Error {
	c := *e
	c.Message = Summarize(e.Fields, e.Message, fallback)
	return &c
}

func NewValidationError(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Fields: fields, Message: Summarize(fields, "", "invalid input")}
}

func NewPreconditionError(err error) *Error {
	return &Error{Kind: KindPrecondition, Message: err.Error(), Err: err}
}

func NewNetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: MsgNetwork, Err: err}
}

func NewAuthenticationError(status int, msg string, err error) *Error {
	return &Error{Kind: KindAuthentication, Status: status, Message: msg, Err: err}
}

// AsError extracts an *Error from err, wrapping anything else as a network error.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return NewNetworkError(err)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// Summarize picks the most specific message available: the first field
// error, then the first non-field error, then detail, then fallback.
// Field names are visited in sorted order so the choice is stable.
func Summarize(fields map[string][]string, detail, fallback string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k != NonFieldKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, msg := range fields[k] {
			if msg = strings.TrimSpace(msg); msg != "" {
				return msg
			}
		}
	}
	for _, msg := range fields[NonFieldKey] {
		if msg = strings.TrimSpace(msg); msg != "" {
			return msg
		}
	}
	if detail = strings.TrimSpace(detail); detail != "" {
		return detail
	}
	return fallback
}
