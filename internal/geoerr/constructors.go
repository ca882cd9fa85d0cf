package geoerr

import "fmt"

// UnknownParameter reports an option name the builder kind does not declare.
func UnknownParameter(builder, param string, known []string) *Error {
	return &Error{
		Kind:    KindUnknownParameter,
		Builder: builder,
		Param:   param,
		Message: fmt.Sprintf("unknown option, known options are %v", known),
	}
}

// Config reports a malformed or ill-typed configuration value.
func Config(builder, param string, cause error) *Error {
	return &Error{Kind: KindConfig, Builder: builder, Param: param, Message: "invalid configuration", Cause: cause}
}

// InvalidGeometry reports a derived dimension or offset that cannot produce a
// valid solid.
func InvalidGeometry(builder, param, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidGeometry, Builder: builder, Param: param, Message: fmt.Sprintf(format, args...)}
}

// WrapInvalidGeometry wraps a placement-algebra failure.
func WrapInvalidGeometry(builder, param string, cause error) *Error {
	return &Error{Kind: KindInvalidGeometry, Builder: builder, Param: param, Message: "invalid geometry", Cause: cause}
}

// Unresolved reports a lookup of a builder, slot, volume, shape or material
// that does not exist.
func Unresolved(builder, what, name string) *Error {
	return &Error{Kind: KindUnresolvedReference, Builder: builder, Message: fmt.Sprintf("%s %q not found", what, name)}
}

// Lifecycle reports a builder used out of order.
func Lifecycle(builder, format string, args ...any) *Error {
	return &Error{Kind: KindLifecycle, Builder: builder, Message: fmt.Sprintf(format, args...)}
}

// Export reports a document that cannot be produced or resolved.
func Export(format string, args ...any) *Error {
	return &Error{Kind: KindExport, Message: fmt.Sprintf(format, args...)}
}

// Verification reports overlaps or extrusions in an assembled tree.
func Verification(format string, args ...any) *Error {
	return &Error{Kind: KindVerification, Message: fmt.Sprintf(format, args...)}
}
