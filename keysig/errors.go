package keysig

import (
	"errors"
	"fmt"
)

// ErrInvalidCount is returned for accidental or natural counts outside [-7,7].
var ErrInvalidCount = errors.New("key signature count out of range")

// ErrNoDocument is returned by operations which need an owning document.
var ErrNoDocument = errors.New("key signature is not part of a document")

// ErrorSeverity represents the severity level of a markup reading problem.
type ErrorSeverity int

const (
	// SeverityMajor indicates data that could not be read and has been dropped.
	SeverityMajor ErrorSeverity = iota
	// SeverityMinor indicates data that has been read with a fallback value.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// ReadError is a structural problem found while reading markup.
// Reading continues after a ReadError.
type ReadError struct {
	Tag      string        // element where the problem occurred
	Issue    string        // human-readable description
	Severity ErrorSeverity // severity level of the error
	Line     int           // line in the input (0 if unknown)
}

// Error implements the error interface.
func (e ReadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] <%s> at line %d: %s", e.Severity, e.Tag, e.Line, e.Issue)
	}
	return fmt.Sprintf("[%s] <%s>: %s", e.Severity, e.Tag, e.Issue)
}

// ErrorHook receives structural problems while reading markup.
type ErrorHook func(ReadError)

// errorCollector accumulates reading problems and forwards them to a hook.
type errorCollector struct {
	hook   ErrorHook
	errors []ReadError
}

func (ec *errorCollector) add(tag string, line int, severity ErrorSeverity, format string, args ...any) {
	e := ReadError{
		Tag:      tag,
		Issue:    fmt.Sprintf(format, args...),
		Severity: severity,
		Line:     line,
	}
	ec.errors = append(ec.errors, e)
	tracer().Errorf("reading key signature: %s", e.Error())
	if ec.hook != nil {
		ec.hook(e)
	}
}

func (ec *errorCollector) hasErrors() bool {
	return len(ec.errors) > 0
}
