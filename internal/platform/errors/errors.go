package errors

import (
	stderrors "errors"
	"sort"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs/telemetry)
	Metadata map[string]string // Additional context, e.g. field -> catalog key
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil && e.Message == "" {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata creates a domain error carrying metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or
// CodeUnknown.
func CodeOf(err error) Code {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}

// MetadataKeys returns the sorted metadata keys of the first *Error in err's
// chain.
func MetadataKeys(err error) []string {
	var domainErr *Error
	if !stderrors.As(err, &domainErr) {
		return nil
	}
	keys := make([]string, 0, len(domainErr.Metadata))
	for key := range domainErr.Metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// MetadataOf returns a copy of the metadata of the first *Error in err's
// chain.
func MetadataOf(err error) map[string]string {
	var domainErr *Error
	if !stderrors.As(err, &domainErr) || len(domainErr.Metadata) == 0 {
		return nil
	}
	out := make(map[string]string, len(domainErr.Metadata))
	for key, value := range domainErr.Metadata {
		out[key] = value
	}
	return out
}
