package storage

import (
	"fmt"
)

// Kind is the closed taxonomy of error conditions this package raises.
type Kind int

const (
	KindOK Kind = iota
	KindFileNotFound
	KindFileHandleNotInit
	KindWriteFailed
	KindReadNonExistingPage
	KindBufferPoolNotFound
	KindPinnedPagesInBuffer
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "OK"
	case KindFileNotFound:
		return "FileNotFound"
	case KindFileHandleNotInit:
		return "FileHandleNotInit"
	case KindWriteFailed:
		return "WriteFailed"
	case KindReadNonExistingPage:
		return "ReadNonExistingPage"
	case KindBufferPoolNotFound:
		return "BufferPoolNotFound"
	case KindPinnedPagesInBuffer:
		return "PinnedPagesInBuffer"
	case KindGeneric:
		return "Generic"
	default:
		return "Unknown"
	}
}

// Error is the value-returned error type for every operation in this
// package. Callers compare kinds with errors.Is against the sentinel
// Err* values below, or inspect Kind directly.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target has the same Kind, ignoring Op and Err -
// this is what lets callers write errors.Is(err, storage.ErrFileNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// wrapIOErr classifies a raw OS-level failure into one of this package's
// Kinds, wrapping the cause with %w so errors.Is/As still reach it.
func wrapIOErr(kind Kind, op string, err error) *Error {
	return newError(kind, op, fmt.Errorf("%s: %w", op, err))
}

// Sentinel values for errors.Is comparisons; only Kind is examined.
var (
	ErrFileNotFound        = &Error{Kind: KindFileNotFound}
	ErrFileHandleNotInit   = &Error{Kind: KindFileHandleNotInit}
	ErrWriteFailed         = &Error{Kind: KindWriteFailed}
	ErrReadNonExistingPage = &Error{Kind: KindReadNonExistingPage}
	ErrBufferPoolNotFound  = &Error{Kind: KindBufferPoolNotFound}
	ErrPinnedPagesInBuffer = &Error{Kind: KindPinnedPagesInBuffer}
	ErrGeneric             = &Error{Kind: KindGeneric}
)
