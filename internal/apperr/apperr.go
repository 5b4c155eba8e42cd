package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into the taxonomy handlers map to HTTP statuses.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindForbidden
	KindConflict
)

// Error is a tagged application error. Code is a stable machine-readable
// identifier, Message is safe to return to clients.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two tagged errors by code so the sentinels below work with
// errors.Is even after wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap attaches an underlying cause to a copy of a tagged error.
func Wrap(base *Error, err error) *Error {
	return &Error{Kind: base.Kind, Code: base.Code, Message: base.Message, Err: err}
}

// Internal wraps an unexpected failure, recording which step failed.
func Internal(step string, err error) *Error {
	return &Error{Kind: KindInternal, Code: "INTERNAL", Message: "internal error at " + step, Err: err}
}

// KindOf extracts the kind of an error, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf extracts the stable code of an error, or "INTERNAL".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "INTERNAL"
}

// MessageOf extracts the client-safe message of an error.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// Sentinels for the engagement and acceptance state machines.
var (
	ErrTargetNotFound  = New(KindNotFound, "TARGET_NOT_FOUND", "target not found")
	ErrAlreadyLiked    = New(KindConflict, "ALREADY_LIKED", "already liked")
	ErrAlreadyUnliked  = New(KindConflict, "ALREADY_UNLIKED", "already unliked")
	ErrNotLikedBefore  = New(KindConflict, "NOT_LIKED_BEFORE", "target was never liked by this user")
	ErrNoLikes         = New(KindConflict, "NO_LIKES", "target has no likes to remove")
	ErrAlreadyAccepted = New(KindConflict, "ALREADY_ACCEPTED", "answer is already accepted")
	ErrNotYetAccepted  = New(KindConflict, "NOT_YET_ACCEPTED", "question has no accepted answer")
	ErrNotAccepted     = New(KindConflict, "NOT_ACCEPTED", "answer is not the accepted one")
	ErrForbidden       = New(KindForbidden, "FORBIDDEN", "operation not allowed")
	ErrBadRequest      = New(KindBadRequest, "BAD_REQUEST", "invalid request")
	ErrUserNotFound    = New(KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrStaleCheckpoint = New(KindBadRequest, "STALE_CHECKPOINT", "checkpoint date must advance")
)
