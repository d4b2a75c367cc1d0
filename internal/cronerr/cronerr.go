// Package cronerr provides typed error handling for the crond daemon.
//
// Errors are classified per the daemon's five error kinds: configuration
// errors are fatal to the daemon, allocation and I/O errors are logged and
// recoverable, child-process errors never propagate out of the runner, and
// shutdown is not an error at all.
package cronerr

import (
	"errors"
	"fmt"
)

// Kind classifies a crond error.
type Kind int

const (
	// KindConfig indicates a missing home directory, bad argument, or
	// otherwise unusable startup configuration. Fatal to the daemon.
	KindConfig Kind = iota
	// KindAlloc indicates a size-overflow or allocator failure. The
	// current operation is skipped; the daemon continues.
	KindAlloc
	// KindIO indicates a stat/open/read/close failure against the
	// schedule file. The store is cleared; the daemon continues.
	KindIO
	// KindChild indicates a failure inside a monitor or command process.
	// Never observed by the daemon directly.
	KindChild
	// KindLock indicates the single-instance lock file could not be
	// acquired.
	KindLock
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "configuration error"
	case KindAlloc:
		return "allocation error"
	case KindIO:
		return "I/O error"
	case KindChild:
		return "child process error"
	case KindLock:
		return "lock error"
	default:
		return "unknown error"
	}
}

// Error wraps an underlying error with crond-specific classification.
type Error struct {
	// Op is the operation that failed (e.g. "stat", "reparse").
	Op string
	// Err is the underlying error, if any.
	Err error
	// Kind is the error classification.
	Kind Kind
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target matches this error's kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New creates a new Error of the given kind.
func New(kind Kind, op string) *Error {
	return &Error{Op: op, Kind: kind}
}

// Wrap wraps err with crond error context.
func Wrap(err error, kind Kind, op string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err, Kind: kind}
}

// IsKind reports whether err is a crond Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind == kind
	}
	return false
}

// Fatal reports whether an error of this kind should terminate the daemon
// outright rather than simply being logged and recovered from.
func Fatal(err error) bool {
	return IsKind(err, KindConfig) || IsKind(err, KindLock)
}

// Re-exported for convenience, matching the teacher's error package shape.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// ErrLockHeld is returned when another crond instance already holds the
// lock file.
var ErrLockHeld = &Error{Kind: KindLock, Op: "lock", Err: fmt.Errorf("already running")}

// ErrNoHome is returned when the user's home directory cannot be resolved.
var ErrNoHome = &Error{Kind: KindConfig, Op: "home", Err: fmt.Errorf("cannot determine home directory")}
