// Package geoerr provides the structured error type used by the assembly
// pipeline. Every fatal condition carries a Kind for classification plus the
// offending builder and parameter, so the CLI can print one terminating line
// and choose an exit code.
package geoerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an assembly error.
type Kind string

const (
	KindConfig              Kind = "config"
	KindUnknownParameter    Kind = "unknown-parameter"
	KindInvalidGeometry     Kind = "invalid-geometry"
	KindUnresolvedReference Kind = "unresolved-reference"
	KindLifecycle           Kind = "lifecycle"
	KindExport              Kind = "export"
	KindVerification        Kind = "verification"
)

// Error is a structured assembly error.
type Error struct {
	Kind    Kind
	Builder string
	Param   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	if e.Builder != "" {
		fmt.Fprintf(&sb, " in builder %q", e.Builder)
	}
	if e.Param != "" {
		fmt.Fprintf(&sb, " (parameter %q)", e.Param)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind. This lets callers
// write errors.Is(err, geoerr.ErrInvalidGeometry).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Builder == "" && t.Message == ""
}

// Sentinels for errors.Is comparisons by kind.
var (
	ErrConfig              = &Error{Kind: KindConfig}
	ErrUnknownParameter    = &Error{Kind: KindUnknownParameter}
	ErrInvalidGeometry     = &Error{Kind: KindInvalidGeometry}
	ErrUnresolvedReference = &Error{Kind: KindUnresolvedReference}
	ErrLifecycle           = &Error{Kind: KindLifecycle}
	ErrExport              = &Error{Kind: KindExport}
	ErrVerification        = &Error{Kind: KindVerification}
)

// WithBuilder returns a copy of e attributed to the named builder, unless it
// is already attributed.
func (e *Error) WithBuilder(name string) *Error {
	if e.Builder != "" {
		return e
	}
	c := *e
	c.Builder = name
	return &c
}

// KindOf extracts the kind from err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}

// Attribute makes sure err names the builder. Plain errors are wrapped as
// the given kind.
func Attribute(err error, kind Kind, builder string) error {
	if err == nil {
		return nil
	}
	var ge *Error
	if errors.As(err, &ge) {
		if ge.Builder != "" {
			return err
		}
		return ge.WithBuilder(builder)
	}
	return &Error{Kind: kind, Builder: builder, Message: "construction failed", Cause: err}
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindConfig, KindUnknownParameter:
		return 2
	case KindUnresolvedReference:
		return 3
	case KindInvalidGeometry, KindLifecycle:
		return 4
	case KindExport:
		return 5
	case KindVerification:
		return 6
	default:
		return 1
	}
}
