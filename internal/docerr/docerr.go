// Package docerr implements the error-kind design (§7): a closed set of
// error kinds with errors.Is-compatible sentinel wrapping, consumed
// identically by the CLI (mapped to exit codes) and by
// workerproto.RequestResponse.Err.
package docerr

import (
	"errors"
	"fmt"
)

// Kind is the closed set of error categories the Navigator and CLI
// distinguish (§7).
type Kind int

const (
	KindNotFound Kind = iota // permanent miss: filtered name, 404, or exhausted source chain
	KindTransient             // network/disk error; not memoised
	KindInvalidInput          // malformed path, version requirement, or CLI flag
	KindInternal              // a structural invariant was violated (should not occur in normal operation)
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindTransient:
		return "transient"
	case KindInvalidInput:
		return "invalid input"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Sentinel errors callers match via errors.Is.
var (
	ErrNotFound    = errors.New("docerr: not found")
	ErrTransient   = errors.New("docerr: transient failure")
	ErrInvalidInput = errors.New("docerr: invalid input")
	ErrInternal    = errors.New("docerr: internal error")
)

func sentinelFor(k Kind) error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindTransient:
		return ErrTransient
	case KindInvalidInput:
		return ErrInvalidInput
	default:
		return ErrInternal
	}
}

// Error wraps a Kind and message, unwrapping to the matching sentinel
// so callers can use errors.Is(err, docerr.ErrNotFound) without caring
// about the concrete wrapping type.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return sentinelFor(e.Kind)
}

// Is lets errors.Is(err, docerr.ErrNotFound) match any *Error of the
// corresponding Kind, even when cause is set (Unwrap alone would only
// expose cause in that case).
func (e *Error) Is(target error) bool {
	return target == sentinelFor(e.Kind)
}

// ExitCode maps a Kind to the CLI's process exit code (§7: "maps to
// exit codes 0/1/2").
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var de *Error
	if errors.As(err, &de) {
		switch de.Kind {
		case KindNotFound, KindInvalidInput:
			return 1
		default:
			return 2
		}
	}
	return 2
}
