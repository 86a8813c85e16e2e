// Package syncerr classifies sync failures so callers can react to the
// category, not the message.
package syncerr

import (
	"errors"
	"fmt"
)

// Kind is the failure category of a sync error.
type Kind int

const (
	// KindUnknown means the error carries no classification.
	KindUnknown Kind = iota

	// KindAuthExpired means the remote token is invalid or expired.
	// The user must re-authenticate; the sync aborts.
	KindAuthExpired

	// KindNetwork means a transient transport failure or timeout.
	// Safe to retry the whole invocation later; no state was mutated.
	KindNetwork

	// KindRemoteAPI means the remote service returned an unexpected
	// response or server error.
	KindRemoteAPI

	// KindLocalStore means a local file (note store or sync state) is
	// unreadable or corrupt.
	KindLocalStore

	// KindLockHeld means another sync invocation holds the state lock.
	KindLockHeld
)

// String returns the short name used in user-facing messages.
func (k Kind) String() string {
	switch k {
	case KindAuthExpired:
		return "auth expired"
	case KindNetwork:
		return "network failure"
	case KindRemoteAPI:
		return "remote API error"
	case KindLocalStore:
		return "local store error"
	case KindLockHeld:
		return "already syncing"
	default:
		return "unknown"
	}
}

// Error is a classified sync error. Op names the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with a kind and operation name.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf creates a classified error from a format string.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindUnknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err's chain contains an *Error of kind k.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
