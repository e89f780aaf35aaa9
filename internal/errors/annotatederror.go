// Package errors wraps the standard library errors with support for annotating
// errors with [slog.Attr] and the source location of the wrap site. The
// annotations surface in logs through [SlogError] without polluting the error
// message itself.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// annotatedError carries a message, the wrapped error, structured annotations,
// and the file:line of the Wrap call site.
type annotatedError struct {
	msg    string
	err    error
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %s", e.msg, e.err.Error())
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// NewSentinel creates a sentinel error meant to be declared as a package-level
// variable and matched with [Is].
func NewSentinel(msg string) error {
	return errors.New(msg)
}

// New is a re-export of [errors.New].
func New(msg string) error {
	return errors.New(msg)
}

// Wrap annotates err with a message and optional [slog.Attr]. The call site is
// recorded so that logs point to where the error was wrapped rather than where
// it was logged.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:    msg,
		err:    err,
		attrs:  attrs,
		source: caller(2),
	}
}

// caller resolves the file:line skip frames above this function.
func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// SlogError converts an error into a [slog.Attr] that includes the error
// message, the wrap-site source location, and any annotations collected along
// the wrap chain. A nil error produces an empty group.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error")
	}

	var (
		source string
		attrs  []slog.Attr
	)
	for unwrapped := err; unwrapped != nil; unwrapped = errors.Unwrap(unwrapped) {
		if annotated, ok := unwrapped.(*annotatedError); ok {
			if source == "" {
				source = annotated.source
			}
			attrs = append(attrs, annotated.attrs...)
		}
	}

	groupAttrs := []any{slog.String("message", err.Error())}
	if source != "" {
		groupAttrs = append(groupAttrs, slog.String("source", source))
	}
	if len(attrs) > 0 {
		annotationArgs := make([]any, 0, len(attrs))
		for _, attr := range attrs {
			annotationArgs = append(annotationArgs, attr)
		}
		groupAttrs = append(groupAttrs, slog.Group("annotations", annotationArgs...))
	}

	return slog.Group("error", groupAttrs...)
}

// Is is a re-export of [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a re-export of [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join is a re-export of [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap is a re-export of [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
