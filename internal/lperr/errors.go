// Package lperr defines the stable error taxonomy the codec and editor
// raise, following the enum-plus-struct idiom the teacher uses for device
// validation issues (internal/interfaces.BlockDeviceIssueType in
// deploymenttheory/go-apfs): a small Kind enum callers can switch on,
// wrapped around whatever underlying cause produced it.
package lperr

import "fmt"

// Kind is a stable error category. Callers that need to branch on error
// type should compare against these constants via errors.As, not string
// matching.
type Kind int

const (
	// InvalidData covers magic mismatches, struct-size overflow against the
	// supplied buffer, and short reads.
	InvalidData Kind = iota
	// Checksum covers any SHA-256 comparison failure.
	Checksum
	// Capacity covers oversized serialized blobs, device/group resizes
	// below current usage, and allocator exhaustion.
	Capacity
	// NotFound covers references to a group or partition that does not
	// exist.
	NotFound
	// AlreadyExists covers duplicate partition/group names.
	AlreadyExists
	// Invariant covers structural rule violations: removing the default
	// group, removing an in-use group.
	Invariant
)

func (k Kind) String() string {
	switch k {
	case InvalidData:
		return "InvalidData"
	case Checksum:
		return "Checksum"
	case Capacity:
		return "Capacity"
	case NotFound:
		return "NotFound"
	case AlreadyExists:
		return "AlreadyExists"
	case Invariant:
		return "Invariant"
	default:
		return "Unknown"
	}
}

// Error is a taxonomy-tagged error. Use errors.As to recover the Kind and
// Unwrap to reach the underlying cause, if any.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error with no wrapped cause.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error around an existing cause.
func Wrap(kind Kind, err error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if le, ok := err.(*Error); ok {
			e = le
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
