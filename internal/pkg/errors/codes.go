package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Radius must be greater than 0 and at most 500 miles",
		http.StatusBadRequest,
	)

	ErrInvalidQuery = New(
		"INVALID_QUERY",
		"Invalid search query",
		http.StatusBadRequest,
	)

	ErrStreamError = New(
		"STREAM_ERROR",
		"Failed to publish event",
		http.StatusServiceUnavailable,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
