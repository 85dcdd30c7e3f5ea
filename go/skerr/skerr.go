// Package skerr adds file and line number information to errors.
//
// Errors built with this package print as "<message>. At <file:line> <file:line> ..."
// with one "file:line" entry per call frame that wrapped the error, innermost
// first. errors.Is and errors.As traverse through skerr-wrapped errors to the
// original cause via the standard Unwrap chain.
package skerr

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// StackTrace is a single call-frame entry: the file and line at which a
// skerr function was invoked.
type StackTrace struct {
	File string
	Line int
}

// String renders a StackTrace as "file.go:NN".
func (s StackTrace) String() string {
	return s.File + ":" + strconv.Itoa(s.Line)
}

// CallStack returns up to n call frames, skipping the innermost skip frames
// (not counting the call to CallStack itself). With skip 0, frame 0 is the
// immediate caller of CallStack.
func CallStack(n int, skip int) []StackTrace {
	ret := make([]StackTrace, 0, n)
	for i := 0; len(ret) < n; i++ {
		_, file, line, ok := runtime.Caller(skip + i + 1)
		if !ok {
			break
		}
		ret = append(ret, StackTrace{File: baseName(file), Line: line})
	}
	return ret
}

func baseName(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// causeError is the leaf skerr error: it owns the underlying cause and
// begins the "At ..." call-stack trailer.
type causeError struct {
	cause error
	frame StackTrace
}

func (e *causeError) Error() string {
	return e.cause.Error() + ". At " + e.frame.String()
}

func (e *causeError) Unwrap() error { return e.cause }

// contextError decorates an inner skerr error with an additional message
// prefix ("<context>: ...", omitted when the message is empty) and appends
// its own call frame to the trailer.
type contextError struct {
	inner   error
	message string
	frame   StackTrace
}

func (e *contextError) Error() string {
	prefix := ""
	if e.message != "" {
		prefix = e.message + ": "
	}
	inner := e.inner.Error()
	trailerIdx := strings.Index(inner, ". At ")
	if trailerIdx < 0 {
		return prefix + inner + " " + e.frame.String()
	}
	body, trailer := inner[:trailerIdx], inner[trailerIdx:]
	return prefix + body + trailer + " " + e.frame.String()
}

func (e *contextError) Unwrap() error { return e.inner }

func callerFrame(skip int) StackTrace {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return StackTrace{File: "unknown", Line: 0}
	}
	return StackTrace{File: baseName(file), Line: line}
}

// Wrap annotates err with the caller's file and line. Returns nil if err is
// nil. Repeated wrapping at successive call levels accumulates a full call
// stack in the error string.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	frame := callerFrame(1)
	if _, ok := err.(*causeError); ok {
		return &contextError{inner: err, message: "", frame: frame}
	}
	if _, ok := err.(*contextError); ok {
		return &contextError{inner: err, message: "", frame: frame}
	}
	return &causeError{cause: err, frame: frame}
}

// Wrapf is like Wrap but also prepends a formatted context message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	frame := callerFrame(1)
	msg := fmt.Sprintf(format, args...)
	wrapped := err
	if _, ok := err.(*causeError); !ok {
		if _, ok := err.(*contextError); !ok {
			wrapped = &causeError{cause: err, frame: frame}
			return &contextError{inner: wrapped, message: msg, frame: frame}
		}
	}
	return &contextError{inner: wrapped, message: msg, frame: frame}
}

// Fmt builds a brand-new error from a format string, stamped with the
// caller's location the same way Wrap stamps an existing error.
func Fmt(format string, args ...interface{}) error {
	return &causeError{cause: fmt.Errorf(format, args...), frame: callerFrame(1)}
}

// Unwrap returns the innermost, non-skerr cause of err, or err itself if it
// was never wrapped by this package.
func Unwrap(err error) error {
	for {
		switch e := err.(type) {
		case *causeError:
			err = e.cause
		case *contextError:
			err = e.inner
		default:
			return err
		}
	}
}
