// Package errors provides structured error handling for the Keel toolkit.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvariant indicates a violated programming invariant, such as a
	// corrupted node tree. These are raised by panicking.
	KindInvariant
	// KindBackend indicates a rasterizer or platform driver failure.
	KindBackend
	// KindClosed indicates an operation on a closed window or loop.
	KindClosed
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates a configuration file error.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvariant:
		return "invariant"
	case KindBackend:
		return "backend"
	case KindClosed:
		return "closed"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// KeelError represents a structured error in the Keel toolkit.
type KeelError struct {
	// Op is the operation that failed (e.g., "window.Present").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *KeelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s [%s]", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *KeelError) Unwrap() error {
	return e.Err
}

// New builds a KeelError from an operation, kind, and underlying error.
func New(op string, kind ErrorKind, err error) *KeelError {
	return &KeelError{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

// Newf builds a KeelError with a formatted message as the underlying error.
func Newf(op string, kind ErrorKind, format string, args ...any) *KeelError {
	return New(op, kind, fmt.Errorf(format, args...))
}

// Wrap attaches an operation to an underlying error without categorizing it.
func Wrap(op string, err error) *KeelError {
	return New(op, KindUnknown, err)
}

// Invariant panics with a KindInvariant error. It is called when the caller
// detects a corrupted structure that cannot be recovered locally, such as a
// node attached below itself.
func Invariant(op string, format string, args ...any) {
	panic(Newf(op, KindInvariant, format, args...))
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "inspect.snapshot").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Recovered wraps a recover() value as a PanicError.
func Recovered(op string, value any) *PanicError {
	return &PanicError{Op: op, Value: value, Timestamp: time.Now()}
}
