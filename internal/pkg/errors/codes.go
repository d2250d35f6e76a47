package errors

import "net/http"

var (
	ErrListingNotFound = New(
		"LISTING_NOT_FOUND",
		"Listing not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidSessionID = New(
		"INVALID_SESSION_ID",
		"Session ID must be a valid UUID",
		http.StatusBadRequest,
	)

	ErrInvalidZoom = New(
		"INVALID_ZOOM",
		"Invalid zoom level",
		http.StatusBadRequest,
	)

	ErrGeocodeNoResult = New(
		"GEOCODE_NO_RESULT",
		"Address could not be resolved",
		http.StatusNotFound,
	)

	ErrGeocodeFailed = New(
		"GEOCODE_FAILED",
		"Geocoding lookup failed",
		http.StatusBadGateway,
	)

	ErrGeocodeSuperseded = New(
		"GEOCODE_SUPERSEDED",
		"Geocode result superseded by a newer request",
		http.StatusConflict,
	)

	ErrPositionNotFound = New(
		"POSITION_NOT_FOUND",
		"No live position for this session",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
