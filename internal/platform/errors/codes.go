// Package errors provides coded errors whose user-facing text comes from the
// translation catalogs.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified failure.
	CodeUnknown Code = "UNKNOWN"

	// CodeValidationFailed marks form input rejected before any API call.
	CodeValidationFailed Code = "VALIDATION_FAILED"
	// CodeNotFound marks a record or route that does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// Content API errors
	CodeUpstreamStatus      Code = "UPSTREAM_STATUS"
	CodeUpstreamUnavailable Code = "UPSTREAM_UNAVAILABLE"

	// CodeRequestInProgress marks a mutation rejected by the pending gate.
	CodeRequestInProgress Code = "REQUEST_IN_PROGRESS"
	// CodeUnauthenticated marks a missing or expired session.
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	// CodeForbidden marks an unsafe request without same-origin proof.
	CodeForbidden Code = "FORBIDDEN"
	// CodeRateLimited marks a throttled login attempt.
	CodeRateLimited Code = "RATE_LIMITED"
)

// HTTPStatus maps codes to the status the admin pages respond with.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUpstreamStatus, CodeUpstreamUnavailable:
		return http.StatusBadGateway
	case CodeRequestInProgress:
		return http.StatusConflict
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// MessageKey returns the catalog key holding the localized text for c.
func (c Code) MessageKey() string {
	if c == "" {
		c = CodeUnknown
	}
	return "error." + string(c)
}
