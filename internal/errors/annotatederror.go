// Package errors provides error annotation with slog attributes and source
// locations. It re-exports the standard library helpers so that callers only
// need a single errors import.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

// annotatedError carries a message, optional slog attributes, and the source
// location where it was created.
type annotatedError struct {
	msg    string
	source string
	attrs  []slog.Attr
	err    error
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// NewSentinel creates an error meant to be declared at package level and
// matched with [Is]. It carries no source location since the declaration site
// is not interesting.
func NewSentinel(msg string) error {
	return &annotatedError{msg: msg}
}

// Wrap annotates err with a message and optional slog attributes. The source
// location of the caller is recorded for logging with [SlogError].
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:    msg,
		source: sourceLocation(1),
		attrs:  attrs,
		err:    err,
	}
}

// DecoratePanic converts a recovered panic value into an error whose source
// location points at the panic site instead of the recovery site.
func DecoratePanic(recovered any) error {
	return &annotatedError{
		msg:    fmt.Sprintf("panic: %v", recovered),
		source: panicSource(),
	}
}

// SlogError renders err as a grouped slog attribute with the error message,
// the source location closest to the failure, and any annotations collected
// from the error chain.
func SlogError(err error) slog.Attr {
	msg := "<nil>"
	if err != nil {
		msg = err.Error()
	}
	group := []any{slog.String("message", msg)}
	if source := findSource(err); source != "" {
		group = append(group, slog.String("source", source))
	}
	if attrs := collectAttrs(err); len(attrs) > 0 {
		group = append(group, slog.Attr{Key: "annotations", Value: slog.GroupValue(attrs...)})
	}
	return slog.Group("error", group...)
}

// collectAttrs gathers annotations from the whole error chain, outermost
// first.
func collectAttrs(err error) []slog.Attr {
	if err == nil {
		return nil
	}
	var attrs []slog.Attr
	if ae, ok := err.(*annotatedError); ok {
		attrs = append(attrs, ae.attrs...)
	}
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		attrs = append(attrs, collectAttrs(x.Unwrap())...)
	case interface{ Unwrap() []error }:
		for _, e := range x.Unwrap() {
			attrs = append(attrs, collectAttrs(e)...)
		}
	}
	return attrs
}

// findSource returns the outermost recorded source location in the chain.
func findSource(err error) string {
	if err == nil {
		return ""
	}
	if ae, ok := err.(*annotatedError); ok && ae.source != "" {
		return ae.source
	}
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		return findSource(x.Unwrap())
	case interface{ Unwrap() []error }:
		for _, e := range x.Unwrap() {
			if source := findSource(e); source != "" {
				return source
			}
		}
	}
	return ""
}

// sourceLocation resolves the file:line of the caller skip levels above the
// caller of sourceLocation.
func sourceLocation(skip int) string {
	var pcs [1]uintptr
	if runtime.Callers(skip+2, pcs[:]) == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames(pcs[:1]).Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}

// panicSource walks the stack for the frame that panicked, which is the first
// non-runtime frame after runtime.gopanic.
func panicSource() string {
	var pcs [64]uintptr
	n := runtime.Callers(1, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	seenGopanic := false
	for {
		frame, more := frames.Next()
		if seenGopanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		}
		if frame.Function == "runtime.gopanic" {
			seenGopanic = true
		}
		if !more {
			return ""
		}
	}
}

// New returns an error with the given message. See [errors.New].
func New(msg string) error {
	return errors.New(msg)
}

// Join wraps the given errors into a single error. See [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Is reports whether any error in the chain matches target. See [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in the chain matching target. See [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling Unwrap on err. See [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
